package service

import (
	"context"
	"errors"

	"github.com/frostlabs-io/avaxboard/internal/config"
	mintDto "github.com/frostlabs-io/avaxboard/internal/modules/mint/dto"
	userRepo "github.com/frostlabs-io/avaxboard/internal/modules/user/repository"
	voteRepo "github.com/frostlabs-io/avaxboard/internal/modules/vote/repository"
	"github.com/frostlabs-io/avaxboard/pkg/apperror"
	"github.com/frostlabs-io/avaxboard/pkg/validator"
	"gorm.io/gorm"
)

// MintService backs the NFT mint page: static contract config plus a
// per-wallet eligibility check. The contract call itself happens client-side.
type MintService interface {
	GetConfig() *mintDto.ConfigResponse
	GetEligibility(ctx context.Context, address string) (*mintDto.EligibilityResponse, error)
}

type mintService struct {
	cfg   *config.Config
	users userRepo.UserRepository
	votes voteRepo.VoteRepository
}

func NewMintService(cfg *config.Config, users userRepo.UserRepository, votes voteRepo.VoteRepository) MintService {
	return &mintService{cfg: cfg, users: users, votes: votes}
}

func (s *mintService) GetConfig() *mintDto.ConfigResponse {
	return &mintDto.ConfigResponse{
		ContractAddress: s.cfg.MintContractAddress,
		ChainID:         s.cfg.MintChainID,
		PriceNavax:      s.cfg.MintPriceNavax,
		MaxSupply:       s.cfg.MintMaxSupply,
	}
}

func (s *mintService) GetEligibility(ctx context.Context, address string) (*mintDto.EligibilityResponse, error) {
	if !validator.IsWalletAddress(address) {
		return nil, apperror.New(400, "invalid wallet address", apperror.ErrInvalidInput)
	}

	user, err := s.users.FindByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &mintDto.EligibilityResponse{Eligible: false, Reason: "wallet has no activity yet"}, nil
		}
		return nil, err
	}

	if !user.Linked() {
		return &mintDto.EligibilityResponse{Eligible: false, Reason: "discord account not linked"}, nil
	}

	count, err := s.votes.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return &mintDto.EligibilityResponse{Eligible: false, Reason: "cast at least one vote to qualify"}, nil
	}

	return &mintDto.EligibilityResponse{Eligible: true}, nil
}
