package service

import (
	"context"

	"github.com/frostlabs-io/avaxboard/internal/entity"
	newsRepo "github.com/frostlabs-io/avaxboard/internal/modules/news/repository"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type NewsService interface {
	Latest(ctx context.Context, limit int) ([]entity.NewsItem, error)
}

type newsService struct {
	repo newsRepo.NewsRepository
}

func NewNewsService(repo newsRepo.NewsRepository) NewsService {
	return &newsService{repo: repo}
}

func (s *newsService) Latest(ctx context.Context, limit int) ([]entity.NewsItem, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return s.repo.Latest(ctx, limit)
}
