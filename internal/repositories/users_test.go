package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rohits-web03/codebox/internal/models"
	"github.com/stretchr/testify/require"
)

func testUserStore(t *testing.T, store UserStore) {
	ctx := context.Background()

	u := &models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, store.Create(ctx, u))
	require.NotEqual(t, uuid.Nil, u.ID)

	got, err := store.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "alice@example.com", got.Email)

	got, err = store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	_, err = store.GetByUsername(ctx, "bob")
	require.ErrorIs(t, err, ErrNotFound)

	err = store.Create(ctx, &models.User{Username: "alice", Email: "other@example.com"})
	require.ErrorIs(t, err, ErrUserExists)
	err = store.Create(ctx, &models.User{Username: "other", Email: "alice@example.com"})
	require.ErrorIs(t, err, ErrUserExists)
}

func TestMemoryUserStore(t *testing.T) {
	testUserStore(t, NewMemoryUserStore())
}

func TestGormUserStore(t *testing.T) {
	db := setupTestDB(t)
	testUserStore(t, NewGormUserStore(db))
}
