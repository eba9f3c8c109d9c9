package di

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/logroute/internal/config"
	"github.com/Kargones/logroute/internal/pkg/logging"
	"github.com/Kargones/logroute/internal/pkg/logging/loggingtest"
	"github.com/Kargones/logroute/internal/pkg/output"
	"github.com/Kargones/logroute/internal/pkg/tracing"
)

func TestProvideLogger(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		assert.IsType(t, &logging.NopLogger{}, ProvideLogger(nil))
	})
	t.Run("config без логгера", func(t *testing.T) {
		assert.IsType(t, &logging.NopLogger{}, ProvideLogger(&config.Config{}))
	})
	t.Run("логгер из MustLoad", func(t *testing.T) {
		l := logging.NewNopLogger()
		assert.Same(t, l, ProvideLogger(&config.Config{Logger: l}))
	})
}

func TestProvideOutputWriter(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *config.Config
		expect output.Writer
	}{
		{name: "nil config", cfg: nil, expect: output.NewWriter(output.FormatText)},
		{name: "пустой формат", cfg: &config.Config{}, expect: output.NewWriter(output.FormatText)},
		{name: "json", cfg: &config.Config{OutputFormat: "json"}, expect: output.NewWriter(output.FormatJSON)},
		{name: "text", cfg: &config.Config{OutputFormat: "text"}, expect: output.NewWriter(output.FormatText)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ProvideOutputWriter(tt.cfg)
			require.NotNil(t, w)
			assert.IsType(t, tt.expect, w)
		})
	}
}

func TestProvideTraceID(t *testing.T) {
	hexPattern := regexp.MustCompile(`^[0-9a-f]{32}$`)

	const iterations = 100
	seen := make(map[string]bool, iterations)
	for range iterations {
		id := ProvideTraceID()
		assert.Regexp(t, hexPattern, id)
		seen[id] = true
	}
	assert.Len(t, seen, iterations, "trace_id должны быть уникальными")
}

func TestProvideTracerProvider_Disabled(t *testing.T) {
	shutdown := ProvideTracerProvider(&config.Config{}, logging.NewNopLogger())
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	shutdown = ProvideTracerProvider(nil, logging.NewNopLogger())
	assert.NoError(t, shutdown(context.Background()))
}

func TestProvideTracerProvider_InvalidConfigFallsBackToNop(t *testing.T) {
	rec := loggingtest.NewRecorder()
	cfg := &config.Config{Tracing: tracing.Config{Enabled: true}}

	shutdown := ProvideTracerProvider(cfg, rec)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	require.Equal(t, 1, rec.Count("error"))
	assert.Equal(t, "ошибка инициализации tracing, используется nop provider", rec.Entries()[0].Msg)
}

func TestInitializeApp(t *testing.T) {
	cfg := &config.Config{
		Command:      "check",
		OutputFormat: output.FormatJSON,
		Logger:       logging.NewNopLogger(),
	}

	app, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.Same(t, cfg, app.Config)
	assert.NotNil(t, app.Logger)
	assert.Len(t, app.TraceID, 32)
	require.NotNil(t, app.TracerShutdown)
	assert.NoError(t, app.TracerShutdown(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, app.OutputWriter.Write(&buf, &output.Result{Status: output.StatusSuccess, Command: "check"}))
	assert.Contains(t, buf.String(), `"status": "success"`)
}

func TestInitializeApp_DistinctTraceIDs(t *testing.T) {
	a, err := InitializeApp(&config.Config{})
	require.NoError(t, err)
	b, err := InitializeApp(&config.Config{})
	require.NoError(t, err)
	assert.NotEqual(t, a.TraceID, b.TraceID)
}
