package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is an Avalanche ecosystem project on the leaderboard.
// Likes/Dislikes/Voters form the aggregate metadata block, maintained
// incrementally by the vote ledger inside the vote transaction. Soft-deleted
// projects keep their vote history but disappear from default listings.
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	AvatarURL   *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	Website     *string   `gorm:"type:text" json:"website,omitempty"`
	Twitter     *string   `gorm:"type:text" json:"twitter,omitempty"`
	Discord     *string   `gorm:"type:text" json:"discord,omitempty"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`

	Likes    int `gorm:"not null;default:0" json:"likes"`
	Dislikes int `gorm:"not null;default:0" json:"dislikes"`
	Voters   int `gorm:"not null;default:0" json:"voters"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

// TotalVotes is the ranking key for project listings.
func (p *Project) TotalVotes() int {
	return p.Likes + p.Dislikes
}
