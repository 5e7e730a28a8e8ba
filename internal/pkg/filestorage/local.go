package filestorage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yigit/coursecatalog/internal/pkg/logger"
)

// LocalStorage keeps documents as plain files under a base directory.
type LocalStorage struct {
	basePath string // The root directory holding the documents
}

// NewLocalStorage creates a new LocalStorage instance. The base directory is
// created lazily on the first write.
func NewLocalStorage(basePath string) *LocalStorage {
	if basePath == "" {
		basePath = "."
	}
	return &LocalStorage{basePath: basePath}
}

// ReadDocument reads the whole document
func (ls *LocalStorage) ReadDocument(name string) ([]byte, error) {
	data, err := os.ReadFile(ls.GetFullPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}
	return data, nil
}

// WriteDocument truncates and rewrites the whole document. The write is not
// atomic; a concurrent writer may overwrite it.
func (ls *LocalStorage) WriteDocument(name string, data []byte) error {
	if err := os.MkdirAll(ls.basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", ls.basePath).Msg("Failed to create storage directory")
		return fmt.Errorf("failed to create storage directory %s: %w", ls.basePath, err)
	}

	fullPath := ls.GetFullPath(name)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", fullPath).Msg("Failed to write document")
		return fmt.Errorf("failed to write document %s: %w", name, err)
	}

	logger.Debug().Str("path", fullPath).Int("bytes", len(data)).Msg("Document written")
	return nil
}

// GetFullPath returns the full filesystem path for a document name
func (ls *LocalStorage) GetFullPath(name string) string {
	return filepath.Join(ls.basePath, filepath.Base(name))
}
