// Package storage writes generated exports to the local filesystem.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/application/port"
)

// LocalFileStorage implements port.FileStorage for local filesystem
type LocalFileStorage struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalFileStorage creates a new LocalFileStorage rooted at baseDir
func NewLocalFileStorage(baseDir string, logger *zap.Logger) *LocalFileStorage {
	return &LocalFileStorage{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Save writes content to the relative path and returns the full path written
func (s *LocalFileStorage) Save(ctx context.Context, relativePath string, content []byte) (string, error) {
	fullPath := s.GetFullPath(relativePath)
	if err := s.ValidatePath(fullPath); err != nil {
		return "", err
	}

	parentDir := filepath.Dir(fullPath)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		s.logger.Error("Failed to create parent directories",
			zap.String("path", parentDir),
			zap.Error(err))
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write file",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Info("Export saved",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))

	return fullPath, nil
}

// Read reads content from the relative path
func (s *LocalFileStorage) Read(ctx context.Context, relativePath string) ([]byte, error) {
	fullPath := s.GetFullPath(relativePath)
	if err := s.ValidatePath(fullPath); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}

// Exists reports whether a regular file exists at the relative path
func (s *LocalFileStorage) Exists(ctx context.Context, relativePath string) bool {
	fullPath := s.GetFullPath(relativePath)
	if s.ValidatePath(fullPath) != nil {
		return false
	}
	info, err := os.Stat(fullPath)
	return err == nil && !info.IsDir()
}

// GetFullPath converts a relative path to full path
func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

// ValidatePath checks that the path stays inside baseDir
func (s *LocalFileStorage) ValidatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path escapes base directory: %s", fullPath)
	}
	return nil
}

var _ port.FileStorage = (*LocalFileStorage)(nil)
