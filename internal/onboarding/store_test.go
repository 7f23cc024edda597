package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameya-wealth/wealth-api/internal/model"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	s := NewSession("desktop", "https://example.in")
	s.Answers = model.Upsert(s.Answers, model.SingleAnswer("age", "26-35"))
	s.Index = 1
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, 1, got.Index)
	assert.Equal(t, "desktop", got.DeviceType)
	require.Len(t, got.Answers, 1)
	assert.Equal(t, "26-35", got.Answers[0].Value.Single)
}

func TestRedisStoreMissingSession(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	s := NewSession("", "")
	require.NoError(t, store.Put(ctx, s))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	s := NewSession("", "")
	require.NoError(t, store.Put(ctx, s))
	require.NoError(t, store.Delete(ctx, s.ID))

	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	s := NewSession("mobile", "")
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	// Stored copy is isolated from later mutations.
	s.Index = 5
	got2, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Zero(t, got2.Index)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Nanosecond)
	ctx := context.Background()

	s := NewSession("", "")
	require.NoError(t, store.Put(ctx, s))
	time.Sleep(time.Millisecond)

	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	s := NewSession("", "")
	require.NoError(t, store.Put(ctx, s))
	require.NoError(t, store.Delete(ctx, s.ID))

	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// Resuming a stored session continues the flow where it left off.
func TestSessionResume(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	m := NewMachine(nil)

	s := NewSession("", "")
	require.NoError(t, m.Select(s, model.SingleAnswer("age", "36-45")))
	require.NoError(t, m.Advance(s))
	require.NoError(t, store.Put(ctx, s))

	resumed, err := store.Get(ctx, s.ID)
	require.NoError(t, err)

	q, ok := resumed.Current()
	require.True(t, ok)
	assert.Equal(t, "income", q.ID)

	require.NoError(t, m.Select(resumed, model.SingleAnswer("income", "10l-25l")))
	require.NoError(t, m.Advance(resumed))
	assert.Equal(t, 2, resumed.Index)
}
