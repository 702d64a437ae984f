package services

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var imageContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// MediaService stores uploaded images below Root. Stored paths are relative
// to Root and use forward slashes, e.g. "rooms/<uuid>.png".
type MediaService struct {
	Root string
}

func NewMediaService(root string) *MediaService {
	return &MediaService{Root: root}
}

// SaveUpload copies a multipart image into subdir. Both the file name and the
// sniffed content must be an image; the stored extension follows the content.
func (s *MediaService) SaveUpload(fh *multipart.FileHeader, subdir string) (string, error) {
	if !imageExtensions[strings.ToLower(filepath.Ext(fh.Filename))] {
		return "", ErrUnsupportedImage
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	ext, ok := imageContentTypes[http.DetectContentType(head[:n])]
	if !ok {
		return "", ErrUnsupportedImage
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	rel, full, err := s.newPath(subdir, ext)
	if err != nil {
		return "", err
	}
	dst, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(full)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}
	return rel, nil
}

// SaveBase64Image stores a base64 (optionally data-URL) encoded image.
func (s *MediaService) SaveBase64Image(b64 string, subdir string) (string, error) {
	if idx := strings.Index(b64, "base64,"); idx >= 0 {
		b64 = b64[idx+7:]
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	ext, ok := imageContentTypes[http.DetectContentType(data)]
	if !ok {
		return "", ErrUnsupportedImage
	}

	rel, full, err := s.newPath(subdir, ext)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return rel, nil
}

// Remove deletes a stored file; missing files are not an error.
func (s *MediaService) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	full := filepath.Join(s.Root, filepath.FromSlash(rel))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *MediaService) newPath(subdir, ext string) (rel, full string, err error) {
	dir := filepath.Join(s.Root, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("mkdir media dir: %w", err)
	}
	filename := uuid.NewString() + ext
	return filepath.ToSlash(filepath.Join(subdir, filename)), filepath.Join(dir, filename), nil
}
