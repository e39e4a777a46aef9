package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/frostlabs-io/avaxboard/internal/entity"
	leaderboard "github.com/frostlabs-io/avaxboard/internal/modules/leaderboard/service"
	userRepo "github.com/frostlabs-io/avaxboard/internal/modules/user/repository"
	voteDto "github.com/frostlabs-io/avaxboard/internal/modules/vote/dto"
	voteRepo "github.com/frostlabs-io/avaxboard/internal/modules/vote/repository"
	"github.com/frostlabs-io/avaxboard/pkg/apperror"
	"github.com/frostlabs-io/avaxboard/pkg/validator"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// LiveChannel is the redis pub/sub channel carrying committed vote events to
// the websocket feed.
const LiveChannel = "votes:events"

type VoteService interface {
	CastVote(ctx context.Context, address string, projectID uuid.UUID, voteType string) (*voteDto.CastVoteResponse, error)
	GetStatus(ctx context.Context, address string, projectID uuid.UUID) (*voteDto.VoteStatusResponse, error)
	GetHistory(ctx context.Context, address string) (*voteDto.VoteHistoryResponse, error)
	GetStreak(ctx context.Context, address string) (*voteDto.StreakResponse, error)
}

type voteService struct {
	repo         voteRepo.VoteRepository
	users        userRepo.UserRepository
	redisClient  *redis.Client
	voteCooldown time.Duration
}

func NewVoteService(repo voteRepo.VoteRepository, users userRepo.UserRepository, redisClient *redis.Client, voteCooldown time.Duration) VoteService {
	return &voteService{
		repo:         repo,
		users:        users,
		redisClient:  redisClient,
		voteCooldown: voteCooldown,
	}
}

func (s *voteService) CastVote(ctx context.Context, address string, projectID uuid.UUID, voteType string) (*voteDto.CastVoteResponse, error) {
	if !validator.IsWalletAddress(address) {
		return nil, apperror.New(400, "invalid wallet address", apperror.ErrInvalidInput)
	}
	if voteType != entity.VoteTypeLike && voteType != entity.VoteTypeDislike {
		return nil, apperror.New(400, "type must be 'like' or 'dislike'", apperror.ErrInvalidInput)
	}

	user, err := s.users.FindOrCreateByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	// Voting requires a linked Discord identity (business rule).
	if !user.Linked() {
		return nil, apperror.New(400, "link your Discord account before voting", apperror.ErrDiscordNotLinked)
	}

	// Cheap spam guard in front of the ledger, SetNX with a short TTL.
	if ok, err := s.checkCooldown(ctx, user.ID); err != nil {
		log.Printf("vote cooldown check failed, continuing: %v", err)
	} else if !ok {
		return nil, apperror.New(429, "slow down, try again in a moment", apperror.ErrRateLimited)
	}

	now := time.Now()

	result, err := s.repo.CastVote(ctx, user.ID, projectID, voteType, now)
	if err != nil && retryable(err) {
		// A concurrent cast slipped past the window check and hit the
		// day-bucket unique index; one retry resolves it into the
		// duplicate/flip path.
		result, err = s.repo.CastVote(ctx, user.ID, projectID, voteType, now)
	}
	if err != nil {
		if retryable(err) {
			return nil, apperror.New(500, "", apperror.ErrInternal)
		}
		return nil, err
	}

	s.afterCommit(result)

	message := fmt.Sprintf("vote %s", result.Outcome)
	return &voteDto.CastVoteResponse{
		Status:  result.Outcome,
		Message: message,
		Metadata: voteDto.VoteMetadata{
			Likes:    result.Project.Likes,
			Dislikes: result.Project.Dislikes,
			Voters:   result.Project.Voters,
		},
		XP:    result.User.XP,
		Level: result.User.Level,
	}, nil
}

// afterCommit mirrors the committed counters into redis and publishes the
// vote event for the live feed. Both are best effort, the database already
// holds the truth.
func (s *voteService) afterCommit(result *voteRepo.LedgerResult) {
	if s.redisClient == nil {
		return
	}
	ctx := context.Background()

	key := fmt.Sprintf("counts:project:%s", result.Project.ID.String())
	pipe := s.redisClient.Pipeline()
	pipe.HSet(ctx, key,
		"likes", result.Project.Likes,
		"dislikes", result.Project.Dislikes,
		"voters", result.Project.Voters,
	)
	pipe.Expire(ctx, key, 7*24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("redis count mirror update failed: %v", err)
	}

	event := voteDto.VoteEvent{
		ProjectID: result.Project.ID,
		Type:      result.Vote.Type,
		Outcome:   result.Outcome,
		Likes:     result.Project.Likes,
		Dislikes:  result.Project.Dislikes,
	}
	payload, err := json.Marshal(event)
	if err == nil {
		s.redisClient.Publish(ctx, LiveChannel, payload)
	}
}

func (s *voteService) checkCooldown(ctx context.Context, userID uuid.UUID) (bool, error) {
	if s.redisClient == nil || s.voteCooldown <= 0 {
		return true, nil
	}
	key := fmt.Sprintf("rate_limit:user:%s:vote", userID.String())
	return s.redisClient.SetNX(ctx, key, "locked", s.voteCooldown).Result()
}

// retryable reports whether the ledger error is a transient conflict worth
// one internal retry (unique index hit or serialization failure).
func retryable(err error) bool {
	if err == nil {
		return false
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (s *voteService) GetStatus(ctx context.Context, address string, projectID uuid.UUID) (*voteDto.VoteStatusResponse, error) {
	if !validator.IsWalletAddress(address) {
		return nil, apperror.New(400, "invalid wallet address", apperror.ErrInvalidInput)
	}

	user, err := s.users.FindByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &voteDto.VoteStatusResponse{HasVoted: false}, nil
		}
		return nil, err
	}

	hasVoted, err := s.repo.HasVotedInWindow(ctx, user.ID, projectID, time.Now())
	if err != nil {
		return nil, err
	}
	return &voteDto.VoteStatusResponse{HasVoted: hasVoted}, nil
}

func (s *voteService) GetHistory(ctx context.Context, address string) (*voteDto.VoteHistoryResponse, error) {
	user, votes, err := s.resolveHistory(ctx, address)
	if err != nil {
		return nil, err
	}

	records := make([]voteDto.VoteRecord, 0, len(votes))
	timestamps := make([]time.Time, 0, len(votes))
	for _, v := range votes {
		records = append(records, voteDto.VoteRecord{
			ProjectID: v.ProjectID,
			Type:      v.Type,
			CreatedAt: v.CreatedAt,
		})
		timestamps = append(timestamps, v.CreatedAt)
	}

	current, longest := leaderboard.ComputeStreaks(time.Now(), timestamps)
	if user != nil && user.LongestStreak > longest {
		longest = user.LongestStreak
	}

	return &voteDto.VoteHistoryResponse{
		Votes:         records,
		CurrentStreak: current,
		LongestStreak: longest,
	}, nil
}

func (s *voteService) GetStreak(ctx context.Context, address string) (*voteDto.StreakResponse, error) {
	user, votes, err := s.resolveHistory(ctx, address)
	if err != nil {
		return nil, err
	}

	timestamps := make([]time.Time, 0, len(votes))
	for _, v := range votes {
		timestamps = append(timestamps, v.CreatedAt)
	}

	current, longest := leaderboard.ComputeStreaks(time.Now(), timestamps)
	resp := &voteDto.StreakResponse{CurrentStreak: current, LongestStreak: longest}
	if user != nil {
		if user.LongestStreak > resp.LongestStreak {
			resp.LongestStreak = user.LongestStreak
		}
		resp.LastVoteDate = user.LastVoteDate
	}
	return resp, nil
}

func (s *voteService) resolveHistory(ctx context.Context, address string) (*entity.User, []entity.Vote, error) {
	if !validator.IsWalletAddress(address) {
		return nil, nil, apperror.New(400, "invalid wallet address", apperror.ErrInvalidInput)
	}

	user, err := s.users.FindByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	votes, err := s.repo.VotesByUser(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, votes, nil
}
