package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmarket/internal/errors"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func uploadedFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["image"][0]
}

func TestImageStore_SavesImage(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir)

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	path, err := store.Save(uploadedFile(t, "photo.png", content))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "uploads/"))
	assert.True(t, strings.HasSuffix(path, "-photo.png"))

	written, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(path, "uploads/")))
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestImageStore_RejectsNonImage(t *testing.T) {
	store := NewImageStore(t.TempDir())

	path, err := store.Save(uploadedFile(t, "notes.txt", []byte("just some plain text, definitely not pixels")))

	assert.Empty(t, path)
	assert.ErrorIs(t, err, errors.ErrNotAnImage)
}

func TestImageStore_RejectsOversizedImage(t *testing.T) {
	store := &ImageStore{Dir: t.TempDir(), MaxSize: 32}

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	path, err := store.Save(uploadedFile(t, "big.png", content))

	assert.Empty(t, path)
	assert.ErrorIs(t, err, errors.ErrImageTooLarge)
}
