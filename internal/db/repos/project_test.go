package repos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/db/models"
)

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project := &models.Project{OwnerID: 1, Name: "Thesis"}
	require.NoError(t, repo.Create(ctx, project))
	require.NotZero(t, project.ID)

	got, err := repo.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thesis", got.Name)
	assert.Equal(t, uint(1), got.OwnerID)
}

func TestProjectRepository_GetOwned(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project := &models.Project{OwnerID: 1, Name: "Thesis"}
	require.NoError(t, repo.Create(ctx, project))

	got, err := repo.GetOwned(ctx, 1, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)

	_, err = repo.GetOwned(ctx, 2, project.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetOwned(ctx, 0, project.ID)
	assert.Error(t, err)
}

func TestProjectRepository_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project := &models.Project{OwnerID: 1, Name: "Thesis"}
	require.NoError(t, repo.Create(ctx, project))
	require.NoError(t, repo.Delete(ctx, 1, project.ID))

	// Default queries stop returning the row
	_, err := repo.Get(ctx, project.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	projects, err := repo.List(ctx, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, projects)

	// The row itself survives with a deletion timestamp
	withDeleted, err := repo.List(ctx, 1, &models.ListOptions{Limit: 10, IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, withDeleted, 1)
	assert.True(t, withDeleted[0].DeletedAt.Valid)
}

func TestProjectRepository_DeleteEnforcesOwnership(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project := &models.Project{OwnerID: 1, Name: "Thesis"}
	require.NoError(t, repo.Create(ctx, project))

	require.NoError(t, repo.Delete(ctx, 2, project.ID))

	// Wrong owner deletes nothing
	got, err := repo.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)
}

func TestProjectRepository_ListScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Project{OwnerID: 1, Name: "Mine"}))
	require.NoError(t, repo.Create(ctx, &models.Project{OwnerID: 2, Name: "Theirs"}))

	projects, err := repo.List(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Mine", projects[0].Name)
}

func TestProjectRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project := &models.Project{OwnerID: 1, Name: "Thesis"}
	require.NoError(t, repo.Create(ctx, project))

	project.Name = "Thesis v2"
	project.Progress = 40
	require.NoError(t, repo.Update(ctx, 1, project))

	got, err := repo.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thesis v2", got.Name)
	assert.Equal(t, 40, got.Progress)
}
