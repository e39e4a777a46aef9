package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frostlabs-io/avaxboard/internal/entity"
	leaderboard "github.com/frostlabs-io/avaxboard/internal/modules/leaderboard/service"
	"github.com/frostlabs-io/avaxboard/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteWindow is the rolling rate-limit window: one decision per project per
// wallet inside it. The lower bound is exclusive (created_at > now-24h), so a
// vote aged exactly 24h has left the window and a fresh row is allowed.
const VoteWindow = 24 * time.Hour

const (
	OutcomeRecorded = "recorded"
	OutcomeUpdated  = "updated"
)

// LedgerResult is the post-commit state of a successful cast.
type LedgerResult struct {
	Outcome string
	Vote    entity.Vote
	Project entity.Project
	User    entity.User
}

type VoteRepository interface {
	// CastVote applies one vote decision as a single transaction: window
	// lookup, vote insert or in-place flip, XP/level/streak update and the
	// project counter adjustments all commit or roll back together.
	CastVote(ctx context.Context, userID, projectID uuid.UUID, voteType string, now time.Time) (*LedgerResult, error)
	HasVotedInWindow(ctx context.Context, userID, projectID uuid.UUID, now time.Time) (bool, error)
	VotesByUser(ctx context.Context, userID uuid.UUID) ([]entity.Vote, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) CastVote(ctx context.Context, userID, projectID uuid.UUID, voteType string, now time.Time) (*LedgerResult, error) {
	var result LedgerResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the voter's row. Two concurrent casts by the same wallet
		// serialize here, so both can never observe an empty window.
		var user entity.User
		if err := lockForUpdate(tx).First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		var project entity.Project
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(404, "project not found", apperror.ErrNotFound)
			}
			return err
		}

		windowStart := now.Add(-VoteWindow)
		var inWindow []entity.Vote
		if err := tx.Where("user_id = ? AND project_id = ? AND created_at > ?", userID, projectID, windowStart).
			Order("created_at DESC").
			Limit(1).
			Find(&inWindow).Error; err != nil {
			return err
		}

		if len(inWindow) > 0 {
			existing := inWindow[0]
			if existing.Type == voteType {
				return apperror.New(400,
					fmt.Sprintf("already %sd this project in the last 24 hours", voteType),
					apperror.ErrDuplicateVote)
			}

			// Opposite type inside the window: flip the row in place. No XP,
			// no new history entry, voter count untouched.
			oldType := existing.Type
			existing.Type = voteType
			if err := tx.Model(&entity.Vote{}).
				Where("id = ?", existing.ID).
				Update("type", voteType).Error; err != nil {
				return err
			}
			if err := adjustCounters(tx, projectID, voteType, oldType, false); err != nil {
				return err
			}
			if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
				return err
			}

			result = LedgerResult{Outcome: OutcomeUpdated, Vote: existing, Project: project, User: user}
			return nil
		}

		// Outside the window. An explicit second lookup decides whether this
		// wallet is a brand-new voter on the project.
		var everCount int64
		if err := tx.Model(&entity.Vote{}).
			Where("user_id = ? AND project_id = ?", userID, projectID).
			Count(&everCount).Error; err != nil {
			return err
		}
		firstEver := everCount == 0

		vote := entity.Vote{
			UserID:    userID,
			ProjectID: projectID,
			Type:      voteType,
			DayBucket: entity.DayBucketFor(now),
			CreatedAt: now,
		}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}

		if err := adjustCounters(tx, projectID, voteType, "", firstEver); err != nil {
			return err
		}
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			return err
		}

		// XP is granted only for brand-new vote rows, never on flips.
		newXP := user.XP + 1
		current, longest := r.streaksInTx(tx, userID, now)
		if user.LongestStreak > longest {
			// Stored longest only ever ratchets upward.
			longest = user.LongestStreak
		}

		updates := map[string]interface{}{
			"xp":             newXP,
			"level":          leaderboard.Level(newXP),
			"current_streak": current,
			"longest_streak": longest,
			"last_vote_date": now,
		}
		if err := tx.Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return err
		}

		user.XP = newXP
		user.Level = leaderboard.Level(newXP)
		user.CurrentStreak = current
		user.LongestStreak = longest
		user.LastVoteDate = &now

		result = LedgerResult{Outcome: OutcomeRecorded, Vote: vote, Project: project, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// lockForUpdate adds a row lock on dialects that support it. SQLite has no
// SELECT FOR UPDATE; its writers serialize on the database lock instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// streaksInTx recomputes the streak pair from the full vote history of one
// user, inside the cast transaction so the freshly inserted row is visible.
func (r *voteRepository) streaksInTx(tx *gorm.DB, userID uuid.UUID, now time.Time) (int, int) {
	var timestamps []time.Time
	if err := tx.Model(&entity.Vote{}).
		Where("user_id = ?", userID).
		Pluck("created_at", &timestamps).Error; err != nil {
		return 0, 0
	}
	return leaderboard.ComputeStreaks(now, timestamps)
}

// adjustCounters applies the incremental aggregate update. oldType is empty
// for a fresh vote; addVoter marks the wallet's first-ever vote on the
// project. Increments are SQL expressions so concurrent casts on a popular
// project never lose updates.
func adjustCounters(tx *gorm.DB, projectID uuid.UUID, newType, oldType string, addVoter bool) error {
	updates := map[string]interface{}{}

	switch newType {
	case entity.VoteTypeLike:
		updates["likes"] = gorm.Expr("likes + 1")
	case entity.VoteTypeDislike:
		updates["dislikes"] = gorm.Expr("dislikes + 1")
	}

	switch oldType {
	case entity.VoteTypeLike:
		updates["likes"] = gorm.Expr("likes - 1")
	case entity.VoteTypeDislike:
		updates["dislikes"] = gorm.Expr("dislikes - 1")
	}

	if addVoter {
		updates["voters"] = gorm.Expr("voters + 1")
	}

	return tx.Model(&entity.Project{}).Where("id = ?", projectID).Updates(updates).Error
}

func (r *voteRepository) HasVotedInWindow(ctx context.Context, userID, projectID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Vote{}).
		Where("user_id = ? AND project_id = ? AND created_at > ?", userID, projectID, now.Add(-VoteWindow)).
		Count(&count).Error
	return count > 0, err
}

func (r *voteRepository) VotesByUser(ctx context.Context, userID uuid.UUID) ([]entity.Vote, error) {
	var votes []entity.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&votes).Error
	return votes, err
}

func (r *voteRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Vote{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
