package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is keyed by wallet address (stored lowercased). XP, level and streak
// fields are mutated only by the vote ledger.
type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	WalletAddress string     `gorm:"size:42;uniqueIndex;not null" json:"wallet_address"`
	DiscordID     *string    `gorm:"size:32;uniqueIndex" json:"discord_id,omitempty"`
	DiscordName   *string    `gorm:"size:100" json:"discord_name,omitempty"`
	XP            int        `gorm:"not null;default:0" json:"xp"`
	Level         int        `gorm:"not null;default:1" json:"level"`
	CurrentStreak int        `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak int        `gorm:"not null;default:0" json:"longest_streak"`
	LastVoteDate  *time.Time `json:"last_vote_date,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}

// Linked reports whether the user has completed the Discord identity link.
func (u *User) Linked() bool {
	return u.DiscordID != nil && *u.DiscordID != ""
}
