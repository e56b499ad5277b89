package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Items  []string `json:"items"`
	IsOpen bool     `json:"isOpen"`
}

func TestFileStorage_SaveAndLoad(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	saved := testRecord{Items: []string{"a", "b"}, IsOpen: true}
	require.NoError(t, store.Save("cart-storage", saved))

	var loaded testRecord
	require.NoError(t, store.Load("cart-storage", &loaded))
	assert.Equal(t, saved, loaded)
}

func TestFileStorage_LoadMissing(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	var loaded testRecord
	err = store.Load("auth-storage", &loaded)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorage_Overwrite(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("cart-storage", testRecord{Items: []string{"a"}}))
	require.NoError(t, store.Save("cart-storage", testRecord{Items: []string{"b", "c"}}))

	var loaded testRecord
	require.NoError(t, store.Load("cart-storage", &loaded))
	assert.Equal(t, []string{"b", "c"}, loaded.Items)
}

func TestFileStorage_Delete(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("auth-storage", testRecord{IsOpen: true}))
	require.NoError(t, store.Delete("auth-storage"))

	var loaded testRecord
	assert.ErrorIs(t, store.Load("auth-storage", &loaded), ErrNotFound)

	// Deleting again is a no-op
	assert.NoError(t, store.Delete("auth-storage"))
}

func TestFileStorage_IndependentRecords(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("cart-storage", testRecord{Items: []string{"a"}}))
	require.NoError(t, store.Save("auth-storage", testRecord{IsOpen: true}))
	require.NoError(t, store.Delete("cart-storage"))

	var loaded testRecord
	require.NoError(t, store.Load("auth-storage", &loaded))
	assert.True(t, loaded.IsOpen)
}
