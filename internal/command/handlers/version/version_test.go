package version

import (
	"bytes"
	"context"
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/logroute/internal/command/handlers/shared"
	"github.com/Kargones/logroute/internal/config"
	"github.com/Kargones/logroute/internal/constants"
	"github.com/Kargones/logroute/internal/pkg/output"
	"github.com/Kargones/logroute/internal/pkg/tracing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := shared.Stdout
	shared.Stdout = &buf
	t.Cleanup(func() { shared.Stdout = prev })
	return &buf
}

func TestVersionHandler_Name(t *testing.T) {
	h := &VersionHandler{}
	assert.Equal(t, "version", h.Name())
	assert.Equal(t, constants.ActVersion, h.Name())
	assert.NotEmpty(t, h.Description())
}

func TestVersionHandler_Execute_NilConfig(t *testing.T) {
	out := capture(t)
	require.NoError(t, (&VersionHandler{}).Execute(context.Background(), nil))
	assert.NotEmpty(t, out.String())
}

func TestVersionHandler_Execute_JSONOutput(t *testing.T) {
	out := capture(t)
	cfg := &config.Config{OutputFormat: output.FormatJSON}

	require.NoError(t, (&VersionHandler{}).Execute(context.Background(), cfg))

	var result output.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result), "stdout должен содержать валидный JSON")
	assert.Equal(t, output.StatusSuccess, result.Status)
	assert.Equal(t, constants.ActVersion, result.Command)

	dataMap, ok := result.Data.(map[string]any)
	require.True(t, ok, "Data должен быть map")
	assert.NotEmpty(t, dataMap["version"])
	assert.Equal(t, runtime.Version(), dataMap["go_version"])
	assert.NotEmpty(t, dataMap["commit"])
}

func TestVersionHandler_Execute_TextOutput(t *testing.T) {
	out := capture(t)
	cfg := &config.Config{OutputFormat: output.FormatText}

	require.NoError(t, (&VersionHandler{}).Execute(context.Background(), cfg))

	assert.Contains(t, out.String(), "logroute version")
	assert.Contains(t, out.String(), "Go:")
	assert.Contains(t, out.String(), runtime.Version())
	assert.Contains(t, out.String(), "Commit:")
	assert.NotContains(t, out.String(), "trace_id")
}

func TestVersionHandler_Execute_Metadata(t *testing.T) {
	out := capture(t)
	traceID := tracing.GenerateTraceID()
	ctx := tracing.WithTraceID(context.Background(), traceID)

	require.NoError(t, (&VersionHandler{}).Execute(ctx, &config.Config{OutputFormat: output.FormatJSON}))

	var result output.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.NotNil(t, result.Metadata)
	assert.Equal(t, traceID, result.Metadata.TraceID, "trace_id должен совпадать с переданным в context")
	assert.GreaterOrEqual(t, result.Metadata.DurationMs, int64(0))
	assert.Equal(t, constants.APIVersion, result.Metadata.APIVersion)
}

func TestVersionHandler_Execute_MetadataGeneratesTraceID(t *testing.T) {
	out := capture(t)

	require.NoError(t, (&VersionHandler{}).Execute(context.Background(), &config.Config{OutputFormat: output.FormatJSON}))

	var result output.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.NotNil(t, result.Metadata)
	assert.Len(t, result.Metadata.TraceID, 32, "trace_id должен быть 32-символьным hex")
}

func TestBuildVersionData_Fallback(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		commit      string
		wantVersion string
		wantCommit  string
	}{
		{name: "оба пустые — fallback", wantVersion: "dev", wantCommit: "unknown"},
		{name: "version пустой", commit: "abc1234", wantVersion: "dev", wantCommit: "abc1234"},
		{name: "commit пустой", version: "1.0.0", wantVersion: "1.0.0", wantCommit: "unknown"},
		{name: "оба заданы", version: "1.0.0", commit: "abc1234", wantVersion: "1.0.0", wantCommit: "abc1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildVersionData(tt.version, tt.commit)
			assert.Equal(t, tt.wantVersion, data.Version)
			assert.Equal(t, tt.wantCommit, data.Commit)
			assert.Equal(t, runtime.Version(), data.GoVersion)
		})
	}
}

func TestVersionData_WriteText(t *testing.T) {
	data := &VersionData{Version: "1.2.3", GoVersion: "go1.25.1", Commit: "abc1234"}

	var buf strings.Builder
	require.NoError(t, data.writeText(&buf))

	assert.Equal(t, "logroute version 1.2.3\n  Go:     go1.25.1\n  Commit: abc1234\n", buf.String())
}
