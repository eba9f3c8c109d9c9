package tracing

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/logroute/internal/pkg/logging"
)

func TestGenerateTraceID_Format(t *testing.T) {
	id := GenerateTraceID()
	assert.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, GenerateTraceID())
}

func TestFallbackTraceID_Format(t *testing.T) {
	id := fallbackTraceID()
	assert.Len(t, id, 32)
	assert.NotEqual(t, id, fallbackTraceID())
}

func TestTraceIDContext(t *testing.T) {
	ctx := WithTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", TraceIDFromContext(ctx))
	assert.Equal(t, "", TraceIDFromContext(context.Background()))
	assert.Equal(t, "", TraceIDFromContext(nil)) //nolint:staticcheck // проверка nil context
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Enabled:      true,
		Endpoint:     "http://jaeger:4318",
		ServiceName:  "logroute",
		Timeout:      time.Second,
		SamplingRate: 0.5,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"valid", func(_ *Config) {}, nil},
		{"disabled ignores fields", func(c *Config) { *c = Config{} }, nil},
		{"no endpoint", func(c *Config) { c.Endpoint = "" }, ErrTracingEndpointRequired},
		{"bad endpoint", func(c *Config) { c.Endpoint = "jaeger" }, ErrTracingEndpointInvalidFormat},
		{"no service", func(c *Config) { c.ServiceName = "" }, ErrTracingServiceNameRequired},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrTracingTimeoutInvalid},
		{"bad rate", func(c *Config) { c.SamplingRate = 1.5 }, ErrTracingSamplingRateInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "logroute", cfg.ServiceName)
	assert.NoError(t, cfg.Validate())
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	shutdown, err := NewTracerProvider(Config{}, logging.NewNopLogger())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewTracerProvider_InvalidConfig(t *testing.T) {
	_, err := NewTracerProvider(Config{Enabled: true}, logging.NewNopLogger())
	assert.ErrorIs(t, err, ErrTracingEndpointRequired)
}

func TestContextWithOTelTraceID(t *testing.T) {
	id := GenerateTraceID()
	ctx := ContextWithOTelTraceID(context.Background(), id)

	sc := trace.SpanContextFromContext(ctx)
	require.True(t, sc.HasTraceID())
	assert.Equal(t, id, sc.TraceID().String())
	assert.True(t, sc.IsRemote())
	assert.True(t, sc.IsSampled())
}

func TestContextWithOTelTraceID_InvalidHex(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, ContextWithOTelTraceID(ctx, "not-hex"))
}
