package repository

import (
	"context"
	"testing"

	"github.com/frostlabs-io/avaxboard/internal/entity"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}))
	return db
}

func TestFindOrCreateByAddress(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.FindOrCreateByAddress(ctx, "0xAbCd111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "0xabcd111111111111111111111111111111111111", user.WalletAddress, "addresses are stored lowercased")
	assert.Equal(t, 0, user.XP)
	assert.Equal(t, 1, user.Level)
	assert.False(t, user.Linked())

	// Same wallet, different casing: same row.
	again, err := repo.FindOrCreateByAddress(ctx, "0xABCD111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestLinkDiscord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.FindOrCreateByAddress(ctx, "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)

	require.NoError(t, repo.LinkDiscord(ctx, user.ID, "123456789012345678", "avalanche_fan"))

	linked, err := repo.FindByDiscordID(ctx, "123456789012345678")
	require.NoError(t, err)
	assert.Equal(t, user.ID, linked.ID)
	assert.True(t, linked.Linked())
	require.NotNil(t, linked.DiscordName)
	assert.Equal(t, "avalanche_fan", *linked.DiscordName)
}

func TestTopByXP(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	wallets := []struct {
		address string
		xp      int
	}{
		{"0x1111111111111111111111111111111111111111", 5},
		{"0x2222222222222222222222222222222222222222", 50},
		{"0x3333333333333333333333333333333333333333", 12},
	}
	for _, w := range wallets {
		user, err := repo.FindOrCreateByAddress(ctx, w.address)
		require.NoError(t, err)
		require.NoError(t, db.Model(&entity.User{}).Where("id = ?", user.ID).Update("xp", w.xp).Error)
	}

	top, err := repo.TopByXP(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, 50, top[0].XP)
	assert.Equal(t, 12, top[1].XP)
}
