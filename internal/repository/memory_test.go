package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopline/catalog-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestMemoryProducts_FindIsCaseInsensitiveSubstring(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Products()

	require.NoError(t, repo.Create(ctx, &domain.Product{ID: "1", Title: "Pen", Price: 1.5}))
	require.NoError(t, repo.Create(ctx, &domain.Product{ID: "2", Title: "Mug", Price: 4}))

	found, err := repo.Find(ctx, "EN")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Pen", found[0].Title)

	all, err := repo.Find(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryProducts_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Products()
	require.NoError(t, repo.Create(ctx, &domain.Product{ID: "1", Title: "Pen", Price: 1.5}))

	updated, err := repo.Update(ctx, "1", domain.ProductPatch{Title: strPtr("Pencil")})
	require.NoError(t, err)
	assert.Equal(t, domain.Product{ID: "1", Title: "Pencil", Price: 1.5}, *updated)

	_, err = repo.Update(ctx, "missing", domain.ProductPatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := repo.Delete(ctx, "1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "1")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.GetByID(ctx, "1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProducts_DuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Products()
	require.NoError(t, repo.Create(ctx, &domain.Product{ID: "1", Title: "Pen", Price: 1}))

	err := repo.Create(ctx, &domain.Product{ID: "1", Title: "Mug", Price: 2})
	assert.True(t, errors.Is(err, ErrDuplicateKey))
}

func TestMemoryUsers_EmailUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Users()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "a", Email: "a@b.com", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repo.Create(ctx, &domain.User{ID: "b", Email: "b@b.com", CreatedAt: now, UpdatedAt: now}))

	err := repo.Create(ctx, &domain.User{ID: "c", Email: "a@b.com", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = repo.Update(ctx, "b", domain.UserChanges{Email: strPtr("a@b.com"), UpdatedAt: now})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	// re-using one's own email is fine, and frees nothing
	_, err = repo.Update(ctx, "a", domain.UserChanges{Email: strPtr("a@b.com"), UpdatedAt: now})
	require.NoError(t, err)

	_, err = repo.Update(ctx, "a", domain.UserChanges{Email: strPtr("new@b.com"), UpdatedAt: now})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, &domain.User{ID: "c", Email: "a@b.com", CreatedAt: now, UpdatedAt: now}))
}

func TestMemoryUsers_UpdatedAtNeverMovesBackwards(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Users()
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &domain.User{ID: "a", Email: "a@b.com", CreatedAt: created, UpdatedAt: created}))

	u, err := repo.Update(ctx, "a", domain.UserChanges{FirstName: strPtr("Ann"), UpdatedAt: created.Add(-time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, created, u.UpdatedAt)
	assert.Equal(t, "Ann", *u.FirstName)

	later := created.Add(time.Minute)
	u, err = repo.Update(ctx, "a", domain.UserChanges{UpdatedAt: later})
	require.NoError(t, err)
	assert.Equal(t, later, u.UpdatedAt)
	assert.Equal(t, created, u.CreatedAt)
}

func TestMemoryUsers_DeleteReleasesEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Users()
	now := time.Now()
	require.NoError(t, repo.Create(ctx, &domain.User{ID: "a", Email: "a@b.com", CreatedAt: now, UpdatedAt: now}))

	deleted, err := repo.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, deleted)

	users, err := repo.Find(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "b", Email: "a@b.com", CreatedAt: now, UpdatedAt: now}))
}
