package storage

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-gateway/config"
)

// Requires a running Redis; set REDIS_TEST_ADDR (host:port) to enable.
func setupRedisStorage(t *testing.T) *RedisStorage {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set, skipping Redis storage tests")
	}

	host, port, ok := strings.Cut(addr, ":")
	if !ok {
		t.Fatalf("invalid REDIS_TEST_ADDR %q", addr)
	}

	store, err := NewRedisStorage(&config.RedisConfig{
		Host:      host,
		Port:      port,
		DB:        1,
		KeyPrefix: "storefront-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Delete("cart-storage")
		store.Delete("auth-storage")
		store.Close()
	})
	return store
}

func TestRedisStorage_SaveAndLoad(t *testing.T) {
	store := setupRedisStorage(t)

	saved := testRecord{Items: []string{"a", "b"}, IsOpen: true}
	require.NoError(t, store.Save("cart-storage", saved))

	var loaded testRecord
	require.NoError(t, store.Load("cart-storage", &loaded))
	assert.Equal(t, saved, loaded)
}

func TestRedisStorage_LoadMissing(t *testing.T) {
	store := setupRedisStorage(t)

	var loaded testRecord
	assert.ErrorIs(t, store.Load("auth-storage", &loaded), ErrNotFound)
}

func TestRedisStorage_Delete(t *testing.T) {
	store := setupRedisStorage(t)

	require.NoError(t, store.Save("auth-storage", testRecord{IsOpen: true}))
	require.NoError(t, store.Delete("auth-storage"))

	var loaded testRecord
	assert.ErrorIs(t, store.Load("auth-storage", &loaded), ErrNotFound)
}
