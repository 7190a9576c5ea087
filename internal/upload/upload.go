package upload

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	apperrors "blogapi/internal/errors"
)

// URLPrefix is the logical prefix stored in the database and served over HTTP.
// It is independent of where the directory physically lives.
const URLPrefix = "uploads"

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Store writes uploaded images into a directory on disk.
type Store struct {
	dir string
}

// NewStore creates the upload directory if absent and returns a store over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the physical directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save validates that file is an accepted image type and writes it under a
// collision-resistant name. It returns the logical forward-slash path
// ("uploads/<name>") for persistence.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		head := make([]byte, 512)
		n, _ := io.ReadFull(src, head)
		mimeType = http.DetectContentType(head[:n])
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("rewind upload: %w", err)
		}
	}
	if !allowedMIMETypes[mimeType] {
		return "", apperrors.ErrNotImage
	}

	name := fmt.Sprintf("image-%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return path.Join(URLPrefix, name), nil
}

// Remove deletes the file behind a logical path. Best effort: a missing file
// is fine and other failures are only logged.
func (s *Store) Remove(logicalPath string) {
	if logicalPath == "" {
		return
	}
	physical := filepath.Join(s.dir, filepath.Base(logicalPath))
	if err := os.Remove(physical); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to delete file %s: %v", physical, err)
	}
}
