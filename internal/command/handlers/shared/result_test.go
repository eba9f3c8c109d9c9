package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/logroute/internal/config"
	"github.com/Kargones/logroute/internal/pkg/apperrors"
	"github.com/Kargones/logroute/internal/pkg/output"
	"github.com/Kargones/logroute/internal/pkg/tracing"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Stdout
	Stdout = &buf
	t.Cleanup(func() { Stdout = prev })
	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) output.Result {
	t.Helper()
	var r output.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
	return r
}

func TestFormat(t *testing.T) {
	assert.Equal(t, output.FormatText, Format(nil))
	assert.Equal(t, output.FormatText, Format(&config.Config{}))
	assert.Equal(t, "json", Format(&config.Config{OutputFormat: "json"}))
}

func TestTraceID(t *testing.T) {
	ctx := tracing.WithTraceID(context.Background(), "0123456789abcdef0123456789abcdef")
	assert.Equal(t, "0123456789abcdef0123456789abcdef", TraceID(ctx))
	assert.Len(t, TraceID(context.Background()), 32)
}

func TestWriteResult_JSON(t *testing.T) {
	buf := captureStdout(t)
	cfg := &config.Config{OutputFormat: "json"}

	summary := output.NewSummaryInfo()
	summary.AddWarning("w")
	require.NoError(t, WriteResult(context.Background(), cfg, "check", time.Now(), map[string]int{"n": 1}, summary))

	r := decode(t, buf)
	assert.Equal(t, output.StatusSuccess, r.Status)
	assert.Equal(t, "check", r.Command)
	require.NotNil(t, r.Metadata)
	assert.Equal(t, "v1", r.Metadata.APIVersion)
	require.NotNil(t, r.Metadata.Summary)
	assert.Equal(t, 1, r.Metadata.Summary.WarningsCount)
}

func TestWriteError_CodeAndMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
	}{
		{
			name:     "AppError",
			err:      apperrors.Newf(apperrors.ErrUnknownKind, "аппендер x: неизвестный вид syslog"),
			wantCode: apperrors.ErrUnknownKind,
			wantMsg:  "аппендер x: неизвестный вид syslog",
		},
		{
			name:     "AppError с причиной",
			err:      apperrors.NewAppError(apperrors.ErrConfigLoad, "не удалось прочитать a.yaml", errors.New("no such file")),
			wantCode: apperrors.ErrConfigLoad,
			wantMsg:  "не удалось прочитать a.yaml: no such file",
		},
		{
			name:     "обёрнутая AppError",
			err:      fmt.Errorf("логгер app: %w", apperrors.Newf(apperrors.ErrUndefinedAppender, "аппендер nope не определён")),
			wantCode: apperrors.ErrUndefinedAppender,
			wantMsg:  "логгер app: APPENDER.UNDEFINED: аппендер nope не определён",
		},
		{
			name:     "обычная ошибка",
			err:      errors.New("boom"),
			wantCode: apperrors.ErrCommandExec,
			wantMsg:  "boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStdout(t)
			err := WriteError(context.Background(), &config.Config{OutputFormat: "json"}, "check", time.Now(), tt.err)
			assert.Equal(t, tt.err, err, "исходная ошибка возвращается вызывающему")

			r := decode(t, buf)
			assert.Equal(t, output.StatusError, r.Status)
			require.NotNil(t, r.Error)
			assert.Equal(t, tt.wantCode, r.Error.Code)
			assert.Equal(t, tt.wantMsg, r.Error.Message)
		})
	}
}

func TestWriteError_Text(t *testing.T) {
	buf := captureStdout(t)
	err := WriteError(context.Background(), nil, "emit", time.Now(), errors.New("boom"))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "emit: error")
	assert.Contains(t, buf.String(), "Error [COMMAND.EXEC_FAILED]: boom")
}
