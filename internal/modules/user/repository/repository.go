package repository

import (
	"context"
	"strings"

	"github.com/frostlabs-io/avaxboard/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	FindByAddress(ctx context.Context, address string) (*entity.User, error)
	FindByDiscordID(ctx context.Context, discordID string) (*entity.User, error)
	// FindOrCreateByAddress resolves a user by wallet address, creating a
	// fresh one (XP 0, level 1, streak 0) when the wallet is first seen.
	FindOrCreateByAddress(ctx context.Context, address string) (*entity.User, error)
	LinkDiscord(ctx context.Context, userID uuid.UUID, discordID, discordName string) error
	TopByXP(ctx context.Context, limit int) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByAddress(ctx context.Context, address string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("wallet_address = ?", strings.ToLower(address)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByDiscordID(ctx context.Context, discordID string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("discord_id = ?", discordID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindOrCreateByAddress(ctx context.Context, address string) (*entity.User, error) {
	address = strings.ToLower(address)

	user := entity.User{WalletAddress: address, Level: 1}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "wallet_address"}},
			DoNothing: true,
		}).
		Create(&user).Error
	if err != nil {
		return nil, err
	}

	// Re-read: on conflict the insert is a no-op and the struct holds no row.
	return r.FindByAddress(ctx, address)
}

func (r *userRepository) LinkDiscord(ctx context.Context, userID uuid.UUID, discordID, discordName string) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"discord_id":   discordID,
			"discord_name": discordName,
		}).Error
}

func (r *userRepository) TopByXP(ctx context.Context, limit int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).
		Order("xp DESC, created_at ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error
	return count, err
}
