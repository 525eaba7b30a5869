package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type line struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func setupRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStorage(client, "tab-1"), mr
}

func setupSQL(t *testing.T, namespace string, db *gorm.DB) *SQLStorage {
	if db == nil {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		require.NoError(t, err)
	}
	s, err := NewSQLStorage(db, namespace)
	require.NoError(t, err)
	return s
}

func backends(t *testing.T) map[string]Storage {
	redisStorage, _ := setupRedis(t)
	return map[string]Storage{
		"memory": NewMemoryStorage(),
		"redis":  redisStorage,
		"sql":    setupSQL(t, "tab-1", nil),
	}
}

func TestBackendsRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, KeyAuthToken)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, KeyAuthToken, "token-1"))
			require.NoError(t, s.Set(ctx, KeyAuthToken, "token-2"))

			got, err := s.Get(ctx, KeyAuthToken)
			require.NoError(t, err)
			assert.Equal(t, "token-2", got)

			require.NoError(t, s.Delete(ctx, KeyAuthToken))
			_, err = s.Get(ctx, KeyAuthToken)
			assert.ErrorIs(t, err, ErrNotFound)

			// deleting an absent key is not an error
			assert.NoError(t, s.Delete(ctx, KeyAuthToken))
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			cart := []line{{ProductID: 1, Quantity: 2}, {ProductID: 7, Quantity: 1}}
			require.NoError(t, SetJSON(ctx, s, KeyCart, cart))

			var got []line
			require.NoError(t, GetJSON(ctx, s, KeyCart, &got))
			assert.Equal(t, cart, got)

			var missing []line
			assert.ErrorIs(t, GetJSON(ctx, s, KeyWishlist, &missing), ErrNotFound)
		})
	}
}

func TestGetJSONCorruptValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()
	require.NoError(t, s.Set(ctx, KeyCart, "{not json"))

	var got []line
	err := GetJSON(ctx, s, KeyCart, &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStorageNamespacesKeys(t *testing.T) {
	s, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyCart, "[]"))

	assert.True(t, mr.Exists("tab-1:cart"))
	assert.False(t, mr.Exists("cart"))
}

func TestSQLStorageNamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	first := setupSQL(t, "first", db)
	second := setupSQL(t, "second", db)

	require.NoError(t, first.Set(ctx, KeyAuthToken, "abc"))

	_, err = second.Get(ctx, KeyAuthToken)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := first.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = ConnectRedis(context.Background(), mr.Addr(), "", 0)
	assert.Error(t, err)
}
