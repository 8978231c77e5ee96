package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent png
var tinyPNG, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

func TestPrepareImage_PNG(t *testing.T) {
	img, err := PrepareImage(bytes.NewReader(tinyPNG))
	require.NoError(t, err)

	assert.Equal(t, "image/png", img.ContentType)
	assert.True(t, strings.HasSuffix(img.Key, ".png"))
	assert.Equal(t, tinyPNG, img.Data)
}

func TestPrepareImage_RejectsText(t *testing.T) {
	_, err := PrepareImage(strings.NewReader("#!/bin/sh\necho hi\n"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestPrepareImage_RandomKeys(t *testing.T) {
	a, err := PrepareImage(bytes.NewReader(tinyPNG))
	require.NoError(t, err)
	b, err := PrepareImage(bytes.NewReader(tinyPNG))
	require.NoError(t, err)
	assert.NotEqual(t, a.Key, b.Key)
}

func TestLocalStore_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080/")
	require.NoError(t, err)

	img, err := PrepareImage(bytes.NewReader(tinyPNG))
	require.NoError(t, err)

	url, err := SaveImage(context.Background(), store, img)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/images/"+img.Key, url)

	onDisk, err := os.ReadFile(filepath.Join(dir, img.Key))
	require.NoError(t, err)
	assert.Equal(t, tinyPNG, onDisk)

	require.NoError(t, store.Delete(context.Background(), url))
	_, err = os.Stat(filepath.Join(dir, img.Key))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, store.Delete(context.Background(), url))
}

func TestLocalStore_KeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "images"), "http://localhost")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "../escape.png", "image/png", bytes.NewReader(tinyPNG))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "escape.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "images", "escape.png"))
	assert.NoError(t, err)
}

func TestLocalStore_CancelledContext(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Save(ctx, "a.png", "image/png", bytes.NewReader(tinyPNG))
	assert.ErrorIs(t, err, context.Canceled)
}
