package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "s/blob", []byte("payload"), "audio/webm"))

	exists, err := store.Exists(ctx, "s/blob")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := store.Get(ctx, "s/blob")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	require.NoError(t, store.Delete(ctx, "s/blob"))
	require.NoError(t, store.Delete(ctx, "s/blob"))

	exists, err = store.Exists(ctx, "s/blob")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStoreIsolatesData(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	original := []byte("payload")
	require.NoError(t, store.Put(ctx, "s/blob", original, "audio/webm"))
	original[0] = 'X'

	got, err := store.Get(ctx, "s/blob")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestMemoryStoreListAndTouch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "a/one", []byte("1"), "text/plain"))
	require.NoError(t, store.Put(ctx, "b/two", []byte("22"), "text/plain"))

	old := time.Now().Add(-time.Hour)
	store.Touch("a/one", old)

	objects, err := store.List(ctx, "a/")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "a/one", objects[0].Path)
	assert.Equal(t, int64(1), objects[0].Size)
	assert.True(t, objects[0].Updated.Equal(old))
}
