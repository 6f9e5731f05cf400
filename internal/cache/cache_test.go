package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/cache"
)

func newTestStore(t *testing.T, opts ...cache.Option) (*cache.Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := cache.NewFromClient(client, opts...)
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestStore_MissThenHit(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "5491122334455")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Put(ctx, "5491122334455", true))

	exists, found, err := store.Get(ctx, "5491122334455")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, exists)
}

func TestStore_NegativeAnswerCached(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "5491100000000", false))

	exists, found, err := store.Get(ctx, "5491100000000")
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, exists)
}

func TestStore_TTLExpires(t *testing.T) {
	store, mr := newTestStore(t, cache.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "5491122334455", true))
	mr.FastForward(2 * time.Minute)

	_, found, err := store.Get(ctx, "5491122334455")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_CorruptEntryIsMiss(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	mr.Set("vw:number:5491122334455", "garbage")

	_, found, err := store.Get(ctx, "5491122334455")
	require.NoError(t, err)
	assert.False(t, found)
}
