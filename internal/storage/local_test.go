package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	path := "session-1/audio.webm"
	data := []byte("webm bytes")

	exists, err := store.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Get(ctx, path)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, path, data, "audio/webm"))

	exists, err = store.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := store.Get(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, path))

	exists, err = store.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStoreDeleteAbsent(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "never/stored"))
}

func TestLocalStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "s/blob", []byte("first"), "text/plain"))
	require.NoError(t, store.Put(ctx, "s/blob", []byte("second"), "text/plain"))

	got, err := store.Get(ctx, "s/blob")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
	}{
		{name: "parent escape", path: "../outside"},
		{name: "nested escape", path: "session/../../outside"},
		{name: "absolute path", path: "/etc/passwd"},
		{name: "empty path", path: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.Put(ctx, tt.path, []byte("x"), "text/plain"))

			_, err := store.Get(ctx, tt.path)
			assert.Error(t, err)
		})
	}
}

func TestLocalStoreList(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "a/mapping", []byte("{}"), "application/json"))
	require.NoError(t, store.Put(ctx, "a/clip.webm", []byte("audio"), "audio/webm"))
	require.NoError(t, store.Put(ctx, "b/clip.webm", []byte("audio"), "audio/webm"))

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := store.List(ctx, "a/")
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	for _, obj := range scoped {
		assert.Contains(t, []string{"a/mapping", "a/clip.webm"}, obj.Path)
		assert.NotZero(t, obj.Updated)
	}
}
