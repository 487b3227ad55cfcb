package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/foriam/console/internal/console/store"
	"github.com/foriam/console/internal/console/store/drivers/sqlite"
)

func newStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestStore_Items(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t, filepath.Join(t.TempDir(), "console.db"))

	require.NoError(t, s.Ping(ctx))

	_, ok, err := s.GetItem(ctx, "token")
	require.NoError(t, err)
	require.False(t, ok)

	before := time.Now().Add(-time.Second)
	require.NoError(t, s.SetItem(ctx, "token", "first"))
	require.NoError(t, s.SetItem(ctx, "token", "second"))

	v, ok, err := s.GetItem(ctx, "token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", v)

	updated, err := s.UpdatedAt(ctx, "token")
	require.NoError(t, err)
	require.True(t, updated.After(before))

	require.NoError(t, s.RemoveItem(ctx, "token"))
	require.NoError(t, s.RemoveItem(ctx, "token"))

	_, ok, err = s.GetItem(ctx, "token")
	require.NoError(t, err)
	require.False(t, ok)

	updated, err = s.UpdatedAt(ctx, "token")
	require.NoError(t, err)
	require.True(t, updated.IsZero())

	require.ErrorIs(t, s.SetItem(ctx, "", "x"), store.ErrInvalidKey)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "console.db")

	first, err := sqlite.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, first.ApplyMigrations())
	require.NoError(t, store.NewSessionSlot(first).SetToken(ctx, "jwt"))
	require.NoError(t, first.Close())

	second := newStore(t, path)
	token, err := store.NewSessionSlot(second).Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "jwt", token)
}

func TestStore_MigrationsAreIdempotent(t *testing.T) {
	t.Parallel()
	s := newStore(t, filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, s.ApplyMigrations())
}
