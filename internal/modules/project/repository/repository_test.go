package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/frostlabs-io/avaxboard/internal/entity"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Project{}))
	return db
}

func seed(t *testing.T, db *gorm.DB, name string, likes, dislikes int) entity.Project {
	t.Helper()
	project := entity.Project{Name: name, Likes: likes, Dislikes: dislikes}
	require.NoError(t, db.Create(&project).Error)
	return project
}

func TestListRankedOrdersByTotalVotes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seed(t, db, "Benqi", 3, 1)    // total 4
	seed(t, db, "GMX", 10, 2)     // total 12
	seed(t, db, "Pangolin", 0, 0) // total 0

	projects, err := repo.ListRanked(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)

	assert.Equal(t, "GMX", projects[0].Name)
	assert.Equal(t, "Benqi", projects[1].Name)
	assert.Equal(t, "Pangolin", projects[2].Name)
}

func TestListRankedTiesBreakByAge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)

	older := seed(t, db, "Older", 2, 2)
	seed(t, db, "Newer", 3, 1)

	projects, err := repo.ListRanked(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, older.ID, projects[0].ID, "older project wins the tie")
}

func TestSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project := seed(t, db, "Colony", 1, 0)

	require.NoError(t, repo.SoftDelete(ctx, project.ID))

	// Gone from default listings.
	projects, err := repo.ListRanked(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	_, err = repo.FindByID(ctx, project.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// Still visible to the admin listing.
	all, err := repo.ListAll(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// Deleting twice reports the miss.
	err = repo.SoftDelete(ctx, project.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSoftDeleteUnknownID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)

	err := repo.SoftDelete(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
