package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syntrixbase/notes/internal/config"
)

func testConfig(t *testing.T) config.LoggingConfig {
	cfg := config.DefaultLoggingConfig()
	cfg.Dir = t.TempDir()
	cfg.Console.Enabled = false
	cfg.ApplyDefaults()
	return cfg
}

func readLog(t *testing.T, dir, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(content)
}

func TestNewLogger_ErrorLogSeparation(t *testing.T) {
	cfg := testConfig(t)

	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	logger.Info("info message")
	logger.Warn("warning message")
	logger.Error("error message")
	require.NoError(t, Shutdown())

	main := readLog(t, cfg.Dir, "notes.log")
	assert.Contains(t, main, "info message")
	assert.Contains(t, main, "warning message")
	assert.Contains(t, main, "error message")

	errs := readLog(t, cfg.Dir, "errors.log")
	assert.NotContains(t, errs, "info message")
	assert.Contains(t, errs, "warning message")
	assert.Contains(t, errs, "error message")
}

func TestNewLogger_JSONFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.File.Format = "json"

	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	logger.Info("test json", "key", "value")
	require.NoError(t, Shutdown())

	content := readLog(t, cfg.Dir, "notes.log")
	assert.Contains(t, content, `"msg":"test json"`)
	assert.Contains(t, content, `"key":"value"`)
}

func TestNewLogger_FileLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.File.Level = "debug"

	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	logger.Debug("dropped change", "component", "feed")
	require.NoError(t, Shutdown())

	assert.Contains(t, readLog(t, cfg.Dir, "notes.log"), "dropped change")
}

func TestNewLogger_AllSinksDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.File.Enabled = false

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	logger.Info("nowhere")

	assert.NoFileExists(t, filepath.Join(cfg.Dir, "notes.log"))
}

func TestInitialize_SetsGlobalLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	cfg := testConfig(t)
	require.NoError(t, Initialize(cfg))

	slog.Info("global test message")
	require.NoError(t, Shutdown())

	content := readLog(t, cfg.Dir, "notes.log")
	assert.Contains(t, content, "Logging initialized")
	assert.Contains(t, content, "global test message")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"WARN", slog.LevelWarn},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.level))
		})
	}
}
