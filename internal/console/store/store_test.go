package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foriam/console/internal/console/store"
	"github.com/foriam/console/pkg/iamsdk"
)

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := store.NewMemory()

	_, ok, err := m.GetItem(ctx, "token")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.SetItem(ctx, "token", "a"))
	require.NoError(t, m.SetItem(ctx, "token", "b"))

	v, ok, err := m.GetItem(ctx, "token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "b", v)

	require.NoError(t, m.RemoveItem(ctx, "token"))
	require.NoError(t, m.RemoveItem(ctx, "token"))

	_, ok, err = m.GetItem(ctx, "token")
	require.NoError(t, err)
	require.False(t, ok)

	require.ErrorIs(t, m.SetItem(ctx, "", "x"), store.ErrInvalidKey)
}

func TestMemory_Concurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := store.NewMemory()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.SetItem(ctx, "token", fmt.Sprintf("t-%d", i))
			_, _, _ = m.GetItem(ctx, "token")
		}()
	}
	wg.Wait()

	v, ok, err := m.GetItem(ctx, "token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, v, "t-")
}

func TestSessionSlot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := store.NewMemory()
	slot := store.NewSessionSlot(mem)

	present, err := iamsdk.HasToken(ctx, slot)
	require.NoError(t, err)
	require.False(t, present)

	require.NoError(t, slot.SetToken(ctx, "jwt"))
	v, ok, err := mem.GetItem(ctx, store.DefaultTokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "jwt", v)

	token, err := slot.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "jwt", token)

	require.NoError(t, slot.ClearToken(ctx))
	require.NoError(t, slot.ClearToken(ctx))
	token, err = slot.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)

	require.NoError(t, slot.SetToken(ctx, "again"))
	require.NoError(t, slot.SetToken(ctx, ""))
	_, ok, err = mem.GetItem(ctx, store.DefaultTokenKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSessionSlot_CustomKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := store.NewMemory()
	slot := &store.SessionSlot{Storage: mem, Key: "cli.token"}

	require.NoError(t, slot.SetToken(ctx, "jwt"))
	_, ok, err := mem.GetItem(ctx, store.DefaultTokenKey)
	require.NoError(t, err)
	require.False(t, ok)

	v, _, err := mem.GetItem(ctx, "cli.token")
	require.NoError(t, err)
	require.Equal(t, "jwt", v)
}
