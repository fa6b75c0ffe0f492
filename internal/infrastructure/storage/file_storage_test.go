package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalFileStorage_Save(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewLocalFileStorage(tempDir, zap.NewNop())
	ctx := context.Background()

	t.Run("saves file and returns full path", func(t *testing.T) {
		path, err := fs.Save(ctx, "statement_966558828009_20240501.xlsx", []byte("xlsx"))

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tempDir, "statement_966558828009_20240501.xlsx"), path)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("xlsx"), content)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		path, err := fs.Save(ctx, filepath.Join("2024", "05", "statement.pdf"), []byte("pdf"))

		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		_, err := fs.Save(ctx, "overwrite.txt", []byte("original"))
		require.NoError(t, err)
		_, err = fs.Save(ctx, "overwrite.txt", []byte("updated"))
		require.NoError(t, err)

		content, err := fs.Read(ctx, "overwrite.txt")
		require.NoError(t, err)
		assert.Equal(t, []byte("updated"), content)
	})

	t.Run("rejects traversal", func(t *testing.T) {
		_, err := fs.Save(ctx, filepath.Join("..", "escape.txt"), []byte("x"))

		assert.ErrorContains(t, err, "escapes base directory")
		assert.NoFileExists(t, filepath.Join(filepath.Dir(tempDir), "escape.txt"))
	})
}

func TestLocalFileStorage_ValidatePath(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewLocalFileStorage(tempDir, zap.NewNop())

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"inside base", filepath.Join(tempDir, "exports", "file.pdf"), false},
		{"absolute outside", "/etc/passwd", true},
		{"traversal", filepath.Join(tempDir, "..", "..", "etc", "passwd"), true},
		{"base itself", tempDir, true},
		{"sibling with shared prefix", tempDir + "-other/file", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fs.ValidatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocalFileStorage_ReadAndExists(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewLocalFileStorage(tempDir, zap.NewNop())
	ctx := context.Background()

	assert.False(t, fs.Exists(ctx, "missing.xlsx"))
	_, err := fs.Read(ctx, "missing.xlsx")
	assert.Error(t, err)

	_, err = fs.Save(ctx, "present.xlsx", []byte("data"))
	require.NoError(t, err)
	assert.True(t, fs.Exists(ctx, "present.xlsx"))
	assert.False(t, fs.Exists(ctx, "."))
	assert.False(t, fs.Exists(ctx, "../present.xlsx"))
}
