package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"taskmarket/internal/errors"
)

// MaxImageSize is the upload limit for task images.
const MaxImageSize = 5 << 20 // 5MB

// ImageStore persists uploaded task images on disk under a directory
// that the router serves statically.
type ImageStore struct {
	Dir     string
	MaxSize int64
}

// NewImageStore creates an image store rooted at dir.
func NewImageStore(dir string) *ImageStore {
	return &ImageStore{Dir: dir, MaxSize: MaxImageSize}
}

// Save writes an uploaded image to disk and returns the path it will be
// served under. The content type is sniffed from the file bytes rather
// than trusted from the part header.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > s.MaxSize {
		return "", errors.ErrImageTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return "", errors.ErrNotAnImage
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + "-" + filepath.Base(file.Filename)
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return "uploads/" + name, nil
}
