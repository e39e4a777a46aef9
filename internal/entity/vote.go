package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VoteTypeLike    = "like"
	VoteTypeDislike = "dislike"
)

// Vote is one user's decision on one project. Within a rolling 24h window at
// most one row exists per (user, project): a repeat of the same type is
// rejected, the opposite type flips this row in place. Across windows rows
// accumulate and form the streak history.
//
// The unique index on (user_id, project_id, day_bucket) is a backstop for the
// read-check-then-write sequence: two same-day inserts can never both land,
// whatever the transaction interleaving. Same-calendar-day votes are always
// inside the rolling window, so the bucket is strictly coarser than the
// window check it guards.
type Vote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_votes_unique_day,unique,priority:1;index:idx_votes_user,priority:1" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_votes_unique_day,unique,priority:2;index:idx_votes_project,priority:1" json:"project_id"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"size:10;not null" json:"type"`
	DayBucket string    `gorm:"size:10;not null;index:idx_votes_unique_day,unique,priority:3" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (v *Vote) TableName() string {
	return "votes"
}

func (v *Vote) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID, err = uuid.NewV7()
	}
	if v.DayBucket == "" {
		v.DayBucket = DayBucketFor(time.Now())
	}
	return
}

// DayBucketFor formats t as a UTC calendar day, the granularity used for the
// uniqueness backstop and the streak calculation.
func DayBucketFor(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
