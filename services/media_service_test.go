package services

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func fileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestSaveUpload(t *testing.T) {
	svc := NewMediaService(t.TempDir())

	rel, err := svc.SaveUpload(fileHeader(t, "room.JPEG", pngBytes(t)), "rooms")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "rooms/"))
	assert.Equal(t, ".png", filepath.Ext(rel), "extension follows the content")
	_, err = os.Stat(filepath.Join(svc.Root, filepath.FromSlash(rel)))
	require.NoError(t, err)

	_, err = svc.SaveUpload(fileHeader(t, "notes.txt", pngBytes(t)), "rooms")
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = svc.SaveUpload(fileHeader(t, "photo.jpg", []byte("<html><body>not an image</body></html>")), "rooms")
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	entries, err := os.ReadDir(filepath.Join(svc.Root, "rooms"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveBase64ImageAndRemove(t *testing.T) {
	svc := NewMediaService(t.TempDir())
	data := pngBytes(t)

	rel, err := svc.SaveBase64Image("data:image/png;base64,"+base64.StdEncoding.EncodeToString(data), "hostels")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "hostels/"))
	assert.Equal(t, ".png", filepath.Ext(rel))

	stored, err := os.ReadFile(filepath.Join(svc.Root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	require.NoError(t, svc.Remove(rel))
	_, err = os.Stat(filepath.Join(svc.Root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, svc.Remove(rel), "removing twice is fine")

	_, err = svc.SaveBase64Image(base64.StdEncoding.EncodeToString([]byte("plain text")), "hostels")
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	_, err = svc.SaveBase64Image("!!!notbase64", "hostels")
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}
