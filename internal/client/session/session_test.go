package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aligntogether/taskhub/internal/adapters/transport/http/dto"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()

	store, err := OpenStore(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(store)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestBeginHydrateClear(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	user := dto.UserResponse{ID: "u1", Email: "a@x.com"}
	require.NoError(t, m.Begin(ctx, "tok-123", user))
	require.True(t, m.LoggedIn())

	// A fresh manager over the same store sees the persisted session.
	m2 := NewManager(m.store)
	require.NoError(t, m2.Hydrate(ctx))
	require.Equal(t, "tok-123", m2.Token())
	got, ok := m2.User()
	require.True(t, ok)
	require.Equal(t, "a@x.com", got.Email)

	// Clear removes every key durably.
	require.NoError(t, m2.Clear(ctx))
	m3 := NewManager(m.store)
	require.NoError(t, m3.Hydrate(ctx))
	require.False(t, m3.LoggedIn())
	_, ok = m3.User()
	require.False(t, ok)
}

func TestHydrate_EmptyStore(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Hydrate(context.Background()))
	require.False(t, m.LoggedIn())
}

func TestExpired_InactivityWindow(t *testing.T) {
	m, now := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Begin(ctx, "tok", dto.UserResponse{ID: "u1", Email: "a@x.com"}))
	require.False(t, m.Expired())

	// Just inside the window.
	*now = now.Add(InactivityTimeout - time.Second)
	require.False(t, m.Expired())

	// Activity resets the clock.
	require.NoError(t, m.Touch(ctx))
	*now = now.Add(InactivityTimeout - time.Second)
	require.False(t, m.Expired())

	// Past the window without activity.
	*now = now.Add(2 * time.Second)
	require.True(t, m.Expired())
}

func TestExpired_NoSession(t *testing.T) {
	m, _ := newTestManager(t)
	require.False(t, m.Expired())
}

func TestSetTokenKeepsUser(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Begin(ctx, "old", dto.UserResponse{ID: "u1", Email: "a@x.com"}))
	require.NoError(t, m.SetToken(ctx, "new"))

	require.Equal(t, "new", m.Token())
	user, ok := m.User()
	require.True(t, ok)
	require.Equal(t, "a@x.com", user.Email)
}

func TestTouch_WithoutSessionIsNoop(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Touch(context.Background()))
	require.False(t, m.LoggedIn())
}
