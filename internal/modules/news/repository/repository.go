package repository

import (
	"context"

	"github.com/frostlabs-io/avaxboard/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewsRepository interface {
	// UpsertMany stores fetched items, silently skipping links already seen.
	UpsertMany(ctx context.Context, items []entity.NewsItem) (int64, error)
	Latest(ctx context.Context, limit int) ([]entity.NewsItem, error)
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) UpsertMany(ctx context.Context, items []entity.NewsItem) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "link"}},
			DoNothing: true,
		}).
		Create(&items)
	return res.RowsAffected, res.Error
}

func (r *newsRepository) Latest(ctx context.Context, limit int) ([]entity.NewsItem, error) {
	var items []entity.NewsItem
	err := r.db.WithContext(ctx).
		Order("published_at DESC NULLS LAST, created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
