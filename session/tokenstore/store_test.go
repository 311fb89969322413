package tokenstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/campushub/admission-portal/session/tokenstore"
)

const sid = "0f8fad5b-d9cb-469f-a165-70867728950e"

func redisStore(t *testing.T) tokenstore.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return tokenstore.NewRedisStore(client, time.Hour)
}

// Both implementations must satisfy the same contract
func stores(t *testing.T) map[string]tokenstore.Store {
	return map[string]tokenstore.Store{
		"memory": tokenstore.NewInMemoryStore(),
		"redis":  redisStore(t),
	}
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("unknown session yields an empty pair", func(t *testing.T) {
				pair, err := store.Pair(ctx, "never-written")
				require.NoError(t, err)
				require.Empty(t, pair.Access)
				require.Empty(t, pair.Refresh)
			})

			t.Run("set then read round-trips", func(t *testing.T) {
				require.NoError(t, store.SetPair(ctx, sid, tokenstore.Pair{Access: "a1", Refresh: "r1"}))
				pair, err := store.Pair(ctx, sid)
				require.NoError(t, err)
				require.Equal(t, "a1", pair.Access)
				require.Equal(t, "r1", pair.Refresh)
			})

			t.Run("SetAccess keeps the refresh token", func(t *testing.T) {
				require.NoError(t, store.SetPair(ctx, sid, tokenstore.Pair{Access: "a1", Refresh: "r1"}))
				require.NoError(t, store.SetAccess(ctx, sid, "a2"))

				pair, err := store.Pair(ctx, sid)
				require.NoError(t, err)
				require.Equal(t, "a2", pair.Access)
				require.Equal(t, "r1", pair.Refresh)
			})

			t.Run("Clear removes both tokens and is idempotent", func(t *testing.T) {
				require.NoError(t, store.SetPair(ctx, sid, tokenstore.Pair{Access: "a1", Refresh: "r1"}))
				require.NoError(t, store.Clear(ctx, sid))
				require.NoError(t, store.Clear(ctx, sid))

				pair, err := store.Pair(ctx, sid)
				require.NoError(t, err)
				require.Empty(t, pair.Access)
				require.Empty(t, pair.Refresh)
			})

			t.Run("empty session ID is rejected", func(t *testing.T) {
				_, err := store.Pair(ctx, "")
				require.Error(t, err)
				require.Error(t, store.SetPair(ctx, "", tokenstore.Pair{}))
				require.Error(t, store.SetAccess(ctx, "", "a"))
				require.Error(t, store.Clear(ctx, ""))
			})
		})
	}
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := tokenstore.NewRedisStore(client, time.Hour)

	require.NoError(t, store.SetPair(ctx, sid, tokenstore.Pair{Access: "a1", Refresh: "r1"}))
	require.Equal(t, time.Hour, mr.TTL("session:"+sid+":access_token"))
	require.Equal(t, time.Hour, mr.TTL("session:"+sid+":refresh_token"))

	// Expiry cleans up the whole session
	mr.FastForward(2 * time.Hour)
	pair, err := store.Pair(ctx, sid)
	require.NoError(t, err)
	require.Empty(t, pair.Access)
	require.Empty(t, pair.Refresh)
}

func TestRedisStore_SetAccessRenewsRefreshTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := tokenstore.NewRedisStore(client, time.Hour)

	require.NoError(t, store.SetPair(ctx, sid, tokenstore.Pair{Access: "a1", Refresh: "r1"}))
	mr.FastForward(30 * time.Minute)
	require.NoError(t, store.SetAccess(ctx, sid, "a2"))

	require.Equal(t, time.Hour, mr.TTL("session:"+sid+":refresh_token"))
}
