package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "charts"))
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "Artist_Song/song.json", []byte(`{"SongName":"Song"}`)))
	require.NoError(t, store.Save(ctx, "Artist_Song/parts/Lead.json", []byte(`{}`)))
	require.NoError(t, store.Save(ctx, "Other_Tune/song.json", []byte(`{}`)))

	data, err := store.Load(ctx, "Artist_Song/song.json")
	require.NoError(t, err)
	assert.Equal(t, `{"SongName":"Song"}`, string(data))

	require.NoError(t, store.Save(ctx, "Artist_Song/song.json", []byte(`{"SongName":"Renamed"}`)))
	data, err = store.Load(ctx, "Artist_Song/song.json")
	require.NoError(t, err)
	assert.Equal(t, `{"SongName":"Renamed"}`, string(data))

	paths, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Artist_Song/parts/Lead.json", "Artist_Song/song.json", "Other_Tune/song.json"}, paths)

	paths, err = store.List(ctx, "Artist_Song/")
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	require.NoError(t, store.Delete(ctx, "Artist_Song/song.json"))
	require.NoError(t, store.Delete(ctx, "Artist_Song/song.json"))
	_, err = store.Load(ctx, "Artist_Song/song.json")
	assert.True(t, IsNotExist(err))
}

func TestLocalStoreRejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"", "/etc/passwd", "../outside.json", "a/../../b.json", ".."} {
		assert.ErrorIs(t, store.Save(ctx, p, []byte("x")), ErrInvalidPath, "path %q", p)
		_, err := store.Load(ctx, p)
		assert.ErrorIs(t, err, ErrInvalidPath, "path %q", p)
	}

	require.NoError(t, store.Save(ctx, `win\style\song.json`, []byte("x")))
	_, err = os.Stat(filepath.Join(store.Root(), "win", "style", "song.json"))
	assert.NoError(t, err)
}

func TestLocalStoreListSkipsTempFiles(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(store.Root(), ".tmp-123"), []byte("x"), 0o644))

	paths, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestLocalStoreRel(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	rel, ok := store.Rel(filepath.Join(store.Root(), "a", "song.json"))
	assert.True(t, ok)
	assert.Equal(t, "a/song.json", rel)

	_, ok = store.Rel(store.Root())
	assert.False(t, ok)
	_, ok = store.Rel(filepath.Dir(store.Root()))
	assert.False(t, ok)
}

func TestCopy(t *testing.T) {
	ctx := context.Background()
	src, err := NewLocalStore(filepath.Join(t.TempDir(), "src"))
	require.NoError(t, err)
	dst, err := NewLocalStore(filepath.Join(t.TempDir(), "dst"))
	require.NoError(t, err)

	require.NoError(t, src.Save(ctx, "A_B/song.json", []byte("1")))
	require.NoError(t, src.Save(ctx, "C_D/song.json", []byte("2")))

	n, err := Copy(ctx, dst, src, "A_")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	paths, err := dst.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"A_B/song.json"}, paths)
}
