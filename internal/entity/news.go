package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewsItem is one ecosystem news entry ingested from a configured RSS feed,
// de-duplicated by link.
type NewsItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:300;not null" json:"title"`
	Link        string     `gorm:"size:500;uniqueIndex;not null" json:"link"`
	Source      string     `gorm:"size:100" json:"source"`
	Description string     `gorm:"type:text" json:"description"`
	PublishedAt *time.Time `gorm:"index" json:"published_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (n *NewsItem) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
