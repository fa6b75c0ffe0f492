package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_FileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ledger.log")

	logger, err := NewLogger(LoggerConfig{Level: "info", OutputPath: path, Format: "json", Service: "vip-ledger"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("Payment recorded")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"Payment recorded"`)
	assert.Contains(t, string(content), `"service":"vip-ledger"`)
	assert.NotContains(t, string(content), "hidden")
}

func TestNewLogger_BadLevelFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(LoggerConfig{Level: "loud", OutputPath: "stderr"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(0))
	assert.False(t, logger.Core().Enabled(-1))
}
