package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLogger_Discard проверяет что output=discard возвращает NopLogger.
func TestNewLogger_Discard(t *testing.T) {
	logger, closer := NewLogger(Config{Output: OutputDiscard})
	assert.Nil(t, closer)
	_, ok := logger.(*NopLogger)
	assert.True(t, ok)
}

// TestNewLogger_Stderr проверяет что по умолчанию используется SlogAdapter без closer.
func TestNewLogger_Stderr(t *testing.T) {
	logger, closer := NewLogger(Config{})
	assert.Nil(t, closer)
	_, ok := logger.(*SlogAdapter)
	assert.True(t, ok)
}

// TestNewLoggerWithWriter_DefaultLevelIsWarn проверяет что по умолчанию info отфильтрован.
func TestNewLoggerWithWriter_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{}, &buf)

	logger.Info("скрытое сообщение")
	logger.Warn("видимое сообщение")

	out := buf.String()
	assert.NotContains(t, out, "скрытое сообщение")
	assert.Contains(t, out, "видимое сообщение")
	assert.Contains(t, out, "component=logroute")
}

func TestNewLoggerWithWriter_AllLevels(t *testing.T) {
	tests := []struct {
		name         string
		configLevel  string
		logLevel     string
		shouldAppear bool
	}{
		{"debug_at_debug", LevelDebug, "debug", true},
		{"info_at_debug", LevelDebug, "info", true},
		{"debug_at_info", LevelInfo, "debug", false},
		{"warn_at_info", LevelInfo, "warn", true},
		{"info_at_warn", LevelWarn, "info", false},
		{"error_at_warn", LevelWarn, "error", true},
		{"warn_at_error", LevelError, "warn", false},
		{"error_at_error", LevelError, "error", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter(Config{Format: FormatText, Level: tt.configLevel}, &buf)

			msg := "test_" + tt.name
			switch tt.logLevel {
			case "debug":
				logger.Debug(msg)
			case "info":
				logger.Info(msg)
			case "warn":
				logger.Warn(msg)
			case "error":
				logger.Error(msg)
			}

			if tt.shouldAppear {
				assert.Contains(t, buf.String(), msg)
			} else {
				assert.NotContains(t, buf.String(), msg)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{"", slog.LevelWarn},
		{"unknown", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNewLoggerWithWriter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{Format: FormatJSON}, &buf)
	logger.Error("sink failed", "appender", "file")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "sink failed", entry["msg"])
	assert.Equal(t, "file", entry["appender"])
	assert.Equal(t, "logroute", entry["component"])
}

// TestNewLogger_FileOutput проверяет запись диагностики в файл с созданием директорий.
func TestNewLogger_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "diag.log")

	logger, closer := NewLogger(Config{
		Level:      LevelInfo,
		Format:     FormatText,
		Output:     OutputFile,
		FilePath:   logFile,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	})
	require.NotNil(t, closer)
	defer func() { _ = closer.Close() }()

	logger.Info("diagnostics to file", "key", "value")

	content, err := os.ReadFile(logFile) //nolint:gosec // тестовый файл в TempDir
	require.NoError(t, err)
	assert.Contains(t, string(content), "diagnostics to file")
}

// TestNewLogger_FileOutput_EmptyPath проверяет fallback на stderr при пустом пути.
func TestNewLogger_FileOutput_EmptyPath(t *testing.T) {
	logger, closer := NewLogger(Config{Output: OutputFile})
	assert.NotNil(t, logger)
	assert.Nil(t, closer)
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	assert.NotPanics(t, func() {
		logger.Debug("d")
		logger.Info("i")
		logger.Warn("w")
		logger.Error("e")
		assert.Same(t, logger, logger.With("k", "v"))
	})
}

func TestSlogAdapter_NilLogger(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	require.NotNil(t, adapter)
	assert.NotPanics(t, func() { adapter.Debug("x") })
}
