package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cvwizard-backend/internal/shared/util"
)

// Store keeps generated documents on the local filesystem, namespaced per
// session so concurrent sessions cannot collide on file names.
type Store struct {
	baseDir string
}

// New creates a generated-file store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Save writes data under the session's namespace and returns the storage key.
func (s *Store) Save(ctx context.Context, sessionID, fileName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sanitizedName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}

	dirPath := filepath.Join(s.baseDir, util.HashSessionKey(sessionID))
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	fullPath := filepath.Join(dirPath, sanitizedName)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return filepath.Join(util.HashSessionKey(sessionID), sanitizedName), nil
}

// Open opens a stored file for reading.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath, err := s.Path(storageKey)
	if err != nil {
		return nil, err
	}
	return os.Open(fullPath)
}

// Path resolves a storage key to an absolute filesystem path. Converters need
// real paths because they run as external processes.
func (s *Store) Path(storageKey string) (string, error) {
	clean := filepath.Clean(storageKey)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key")
	}
	return filepath.Join(s.baseDir, clean), nil
}

// SessionKey returns the storage key for fileName under sessionID without
// touching the filesystem.
func (s *Store) SessionKey(sessionID, fileName string) string {
	return filepath.Join(util.HashSessionKey(sessionID), fileName)
}

// Exists reports whether a storage key resolves to an existing file.
func (s *Store) Exists(storageKey string) bool {
	fullPath, err := s.Path(storageKey)
	if err != nil {
		return false
	}
	info, err := os.Stat(fullPath)
	return err == nil && !info.IsDir()
}
