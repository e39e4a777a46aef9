package service

import (
	"context"

	leaderboardDto "github.com/frostlabs-io/avaxboard/internal/modules/leaderboard/dto"
	userRepo "github.com/frostlabs-io/avaxboard/internal/modules/user/repository"
)

const (
	DefaultLimit = 25
	MaxLimit     = 100
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) (*leaderboardDto.LeaderboardResponse, error)
}

type leaderboardService struct {
	userRepo userRepo.UserRepository
}

func NewLeaderboardService(userRepo userRepo.UserRepository) LeaderboardService {
	return &leaderboardService{userRepo: userRepo}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int) (*leaderboardDto.LeaderboardResponse, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	users, err := s.userRepo.TopByXP(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]leaderboardDto.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, leaderboardDto.LeaderboardEntry{
			Position:       i + 1, // 1-based position
			WalletAddress:  u.WalletAddress,
			DiscordName:    u.DiscordName,
			XP:             u.XP,
			Level:          Level(u.XP),
			XPForNextLevel: XPForNextLevel(u.XP),
			CurrentStreak:  u.CurrentStreak,
			LongestStreak:  u.LongestStreak,
		})
	}

	return &leaderboardDto.LeaderboardResponse{Entries: entries}, nil
}
