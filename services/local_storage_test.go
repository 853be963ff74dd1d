package services

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStore(t *testing.T) *LocalImageStore {
	t.Helper()
	store, err := NewLocalImageStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	return store
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store := newTestLocalStore(t)

	data := []byte("fake jpeg bytes")
	imageURL, err := store.Store(context.Background(), data, "image/jpeg", "camry.jpg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(imageURL, "http://localhost:8080/uploads/"), "URL should point at the uploads route")
	assert.True(t, strings.HasSuffix(imageURL, ".jpg"))

	parsed, err := url.Parse(imageURL)
	require.NoError(t, err)
	onDisk := filepath.Join(store.Dir(), filepath.Base(parsed.Path))
	content, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, data, content)

	require.NoError(t, store.Delete(context.Background(), imageURL))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err), "file should be removed after Delete")
}

func TestLocalStoreRejectsBeforeWrite(t *testing.T) {
	store := newTestLocalStore(t)

	_, err := store.Store(context.Background(), []byte("%PDF-1.4"), "application/pdf", "doc.pdf")
	assert.Error(t, err)

	entries, readErr := os.ReadDir(store.Dir())
	require.NoError(t, readErr)
	assert.Empty(t, entries, "nothing should be written for a rejected payload")
}

func TestLocalStoreUniqueNames(t *testing.T) {
	store := newTestLocalStore(t)

	first, err := store.Store(context.Background(), []byte("a"), "image/png", "same.png")
	require.NoError(t, err)
	second, err := store.Store(context.Background(), []byte("b"), "image/png", "same.png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same original name must not collide")
}

func TestLocalStoreDeleteIsBestEffort(t *testing.T) {
	store := newTestLocalStore(t)

	// Already gone: not an error.
	assert.NoError(t, store.Delete(context.Background(), "http://localhost:8080/uploads/missing.jpg"))

	// Foreign or malformed URLs are ignored.
	assert.NoError(t, store.Delete(context.Background(), "https://elsewhere.example/img.jpg"))
	assert.NoError(t, store.Delete(context.Background(), "http://localhost:8080/uploads/../../etc/passwd"))
}
