package blob

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helios/config"
	"helios/internal/errors"
)

func TestNew_SelectsDriver(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store, err := New(ctx, &config.BlobConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, store.Driver())

	store, err = New(ctx, &config.BlobConfig{Driver: "fs", FSRoot: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, DriverFilesystem, store.Driver())

	_, err = New(ctx, &config.BlobConfig{Driver: "gopher"})
	assert.Error(t, err)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemory("https://cdn.example.com")

	info, err := store.Put(ctx, "profile_pictures/user-1", strings.NewReader("jpeg-bytes"), PutOptions{ContentType: "image/jpeg"})
	require.NoError(t, err)
	assert.Equal(t, int64(len("jpeg-bytes")), info.Size)
	assert.Equal(t, "image/jpeg", info.ContentType)
	assert.Equal(t, "https://cdn.example.com/profile_pictures/user-1", info.URL)

	got, body, err := store.Get(ctx, "profile_pictures/user-1")
	require.NoError(t, err)
	defer body.Close()
	content, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(content))
	assert.Equal(t, info.Size, got.Size)
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemory("")

	_, err := store.Put(ctx, "k", strings.NewReader("first"), PutOptions{})
	require.NoError(t, err)
	_, err = store.Put(ctx, "k", strings.NewReader("second"), PutOptions{})
	require.NoError(t, err)

	_, body, err := store.Get(ctx, "k")
	require.NoError(t, err)
	defer body.Close()
	content, _ := io.ReadAll(body)
	assert.Equal(t, "second", string(content))
}

func TestMemoryStore_GetMissing(t *testing.T) {
	t.Parallel()

	store := NewMemory("")
	_, _, err := store.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemory("")

	_, err := store.Put(ctx, "k", strings.NewReader("v"), PutOptions{})
	require.NoError(t, err)

	existed, err := store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestFSStore_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := NewFilesystem(t.TempDir(), "https://cdn.example.com")
	require.NoError(t, err)

	info, err := store.Put(ctx, "profile_pictures/user-1", strings.NewReader("png-bytes"), PutOptions{ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, "https://cdn.example.com/profile_pictures/user-1", info.URL)

	got, body, err := store.Get(ctx, "profile_pictures/user-1")
	require.NoError(t, err)
	defer body.Close()
	content, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
	assert.Equal(t, "image/png", got.ContentType)
}

func TestFSStore_OverwriteAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := NewFilesystem(t.TempDir(), "")
	require.NoError(t, err)

	_, err = store.Put(ctx, "a/b", strings.NewReader("one"), PutOptions{})
	require.NoError(t, err)
	_, err = store.Put(ctx, "a/b", strings.NewReader("two"), PutOptions{})
	require.NoError(t, err)

	_, body, err := store.Get(ctx, "a/b")
	require.NoError(t, err)
	content, _ := io.ReadAll(body)
	body.Close()
	assert.Equal(t, "two", string(content))

	existed, err := store.Delete(ctx, "a/b")
	require.NoError(t, err)
	assert.True(t, existed)

	_, _, err = store.Get(ctx, "a/b")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFSStore_RejectsTraversalKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := NewFilesystem(t.TempDir(), "")
	require.NoError(t, err)

	for _, key := range []string{"", "/abs/path", "../escape", "a/../../b"} {
		_, err := store.Put(ctx, key, strings.NewReader("x"), PutOptions{})
		assert.Error(t, err, "key %q", key)
	}
}
