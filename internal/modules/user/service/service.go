package service

import (
	"context"
	"errors"

	leaderboard "github.com/frostlabs-io/avaxboard/internal/modules/leaderboard/service"
	userDto "github.com/frostlabs-io/avaxboard/internal/modules/user/dto"
	userRepo "github.com/frostlabs-io/avaxboard/internal/modules/user/repository"
	"github.com/frostlabs-io/avaxboard/pkg/apperror"
	"github.com/frostlabs-io/avaxboard/pkg/validator"
	"gorm.io/gorm"
)

type UserService interface {
	// GetStats resolves (or creates, on first profile view) the user behind a
	// wallet address and returns their XP standing.
	GetStats(ctx context.Context, address string) (*userDto.StatsResponse, error)
	GetDiscordStatus(ctx context.Context, address string) (*userDto.DiscordStatusResponse, error)
}

type userService struct {
	repo userRepo.UserRepository
}

func NewUserService(repo userRepo.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetStats(ctx context.Context, address string) (*userDto.StatsResponse, error) {
	if !validator.IsWalletAddress(address) {
		return nil, apperror.New(400, "invalid wallet address", apperror.ErrInvalidInput)
	}

	user, err := s.repo.FindOrCreateByAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	return &userDto.StatsResponse{
		WalletAddress:  user.WalletAddress,
		XP:             user.XP,
		Level:          leaderboard.Level(user.XP),
		XPForNextLevel: leaderboard.XPForNextLevel(user.XP),
	}, nil
}

func (s *userService) GetDiscordStatus(ctx context.Context, address string) (*userDto.DiscordStatusResponse, error) {
	if !validator.IsWalletAddress(address) {
		return nil, apperror.New(400, "invalid wallet address", apperror.ErrInvalidInput)
	}

	user, err := s.repo.FindByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &userDto.DiscordStatusResponse{Linked: false}, nil
		}
		return nil, err
	}

	resp := &userDto.DiscordStatusResponse{Linked: user.Linked()}
	if user.Linked() {
		resp.DiscordID = user.DiscordID
		resp.DiscordName = user.DiscordName
	}
	return resp, nil
}
