package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/utils/images"
)

// allowedMIME maps permitted upload extensions to their MIME type.
var allowedMIME = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// Logo formats are limited to what the thumbnail pipeline can decode.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Storage keeps uploaded files on local disk under a single root directory.
// Documents live at <root>/<orgID>/documents/<athleteID>/, logos at
// <root>/<orgID>/logo/.
type Storage struct {
	root    string
	maxSize int64
}

type Config struct {
	Root    string
	MaxSize int64
}

func New(cfg Config) (*Storage, error) {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 10 << 20
	}
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload root: %w", err)
	}
	return &Storage{
		root:    cfg.Root,
		maxSize: cfg.MaxSize,
	}, nil
}

// SaveDocument stores an uploaded document and returns its relative path,
// size and MIME type. Files over the size limit or with an extension outside
// the whitelist are rejected.
func (s *Storage) SaveDocument(organizationID, athleteID, fileName string, file io.Reader) (string, int64, string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	mimeType, ok := allowedMIME[ext]
	if !ok {
		return "", 0, "", errorz.BadRequest("UNSUPPORTED_FILE_TYPE", "file type is not allowed")
	}

	relPath := filepath.Join(organizationID, "documents", athleteID, uuid.New().String()+ext)
	size, err := s.write(relPath, file)
	if err != nil {
		return "", 0, "", err
	}
	return relPath, size, mimeType, nil
}

// SaveLogo stores an organization logo, generates its thumbnail and returns
// the logo's relative path.
func (s *Storage) SaveLogo(organizationID, fileName string, file io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !imageExtensions[ext] {
		return "", errorz.BadRequest("UNSUPPORTED_FILE_TYPE", "logo must be an image")
	}

	relPath := filepath.Join(organizationID, "logo", "logo"+ext)
	if _, err := s.write(relPath, file); err != nil {
		return "", err
	}

	thumbPath := filepath.Join(organizationID, "logo", "logo_thumb.png")
	if err := images.Thumbnail(s.abs(relPath), s.abs(thumbPath), 128); err != nil {
		return "", fmt.Errorf("failed to generate logo thumbnail: %w", err)
	}
	return relPath, nil
}

// Open opens a stored file for reading.
func (s *Storage) Open(path string) (io.ReadCloser, error) {
	return os.Open(s.abs(path))
}

// Remove deletes a stored file. A missing file is not an error.
func (s *Storage) Remove(path string) error {
	err := os.Remove(s.abs(path))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Storage) abs(relPath string) string {
	return filepath.Join(s.root, relPath)
}

func (s *Storage) write(relPath string, file io.Reader) (int64, error) {
	absPath := s.abs(relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return 0, err
	}

	out, err := os.Create(absPath)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	size, err := io.Copy(out, io.LimitReader(file, s.maxSize+1))
	if err != nil {
		_ = os.Remove(absPath)
		return 0, err
	}
	if size > s.maxSize {
		_ = os.Remove(absPath)
		return 0, errorz.BadRequest("FILE_TOO_LARGE", "file exceeds the upload size limit")
	}
	return size, nil
}
