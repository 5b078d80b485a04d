package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewManager(NewRedisClient(mr.Addr(), "", ""), "testsecret")
}

func TestCreateAndResolve(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	token, _, err := m.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, sid, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
	assert.NotEmpty(t, sid)
}

func TestResolve_GarbageToken(t *testing.T) {
	m := newTestManager(t)

	_, _, err := m.Resolve(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestResolve_WrongSecret(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", "")
	ctx := context.Background()

	token, _, err := NewManager(rdb, "secret-a").Create(ctx, 7)
	require.NoError(t, err)

	_, _, err = NewManager(rdb, "secret-b").Resolve(ctx, token)
	assert.Error(t, err)
}

func TestDestroyRevokesToken(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	token, _, err := m.Create(ctx, 1)
	require.NoError(t, err)

	_, sid, err := m.Resolve(ctx, token)
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, sid))

	// the signed token is still well-formed, but the session is gone
	_, _, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFlashShowsOnce(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	token, _, err := m.Create(ctx, 5)
	require.NoError(t, err)
	_, sid, err := m.Resolve(ctx, token)
	require.NoError(t, err)

	m.SetFlash(ctx, sid, "Listing created successfully!")
	assert.Equal(t, "Listing created successfully!", m.PopFlash(ctx, sid))
	assert.Empty(t, m.PopFlash(ctx, sid))
}
