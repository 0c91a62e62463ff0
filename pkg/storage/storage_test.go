package storage_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velora-shop/velora/config"
	"github.com/velora-shop/velora/pkg/storage"
)

func tempLocalDisk(t *testing.T) {
	t.Helper()

	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	storage.Connect()
	storage.SetDefault("local")
}

func TestLocalDiskRoundTrip(t *testing.T) {
	tempLocalDisk(t)

	require.NoError(t, storage.Put("products/coat.png", []byte("png-bytes")))
	assert.True(t, storage.Exists("products/coat.png"))

	data, err := storage.Get("products/coat.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	require.NoError(t, storage.Delete("products/coat.png"))
	assert.False(t, storage.Exists("products/coat.png"))
}

func TestLocalDiskPutStream(t *testing.T) {
	tempLocalDisk(t)

	require.NoError(t, storage.PutStream("gallery/banner.jpg", strings.NewReader("jpeg")))
	data, err := storage.Get("gallery/banner.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestDeleteMissingIsNoop(t *testing.T) {
	tempLocalDisk(t)
	assert.NoError(t, storage.Delete("never/was.txt"))
}

func TestURLUsesPublicPrefix(t *testing.T) {
	tempLocalDisk(t)

	url := storage.URL("categories/coats.png")
	assert.True(t, strings.HasSuffix(url, "/categories/coats.png"), url)
}

func TestUseUnknownDiskPanics(t *testing.T) {
	tempLocalDisk(t)
	assert.Panics(t, func() { storage.Use("tape-drive") })
}
