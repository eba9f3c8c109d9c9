package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/logroute/internal/level"
	"github.com/Kargones/logroute/internal/pkg/apperrors"
	"github.com/Kargones/logroute/internal/pkg/logging"
	"github.com/Kargones/logroute/internal/pkg/logging/loggingtest"
)

const sampleDoc = `
refresh_rate: 30s
appenders:
  stdout:
    kind: console
  file:
    kind: file
    path: log/file.log
    encoder:
      pattern: "[{d(%Y-%m-%dT%H:%M:%S%.6f)} {l} {t}] {m}{n}"
  debug:
    kind: rolling_file
    path: log/debug.log
    max_size: 10
    max_backups: 2
    compress: true
    charset: windows-1251
    encoder:
      kind: json
    filters:
      - kind: threshold
        level: debug
root:
  level: info
  appenders:
    - stdout
    - file
loggers:
  debug:
    level: debug
    appenders:
      - debug
    additive: false
  app.db:
    appenders: [file]
diagnostics:
  output: discard
metrics:
  enabled: true
  timeout: 3s
`

func TestParse_FullDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, doc.RefreshRate)
	require.Len(t, doc.Appenders, 3)
	assert.Equal(t, "console", doc.Appenders["stdout"].Kind)
	assert.Equal(t, "log/file.log", doc.Appenders["file"].Path)
	assert.Equal(t, "[{d(%Y-%m-%dT%H:%M:%S%.6f)} {l} {t}] {m}{n}", doc.Appenders["file"].Encoder.Pattern)

	dbg := doc.Appenders["debug"]
	assert.Equal(t, "json", dbg.Encoder.Kind)
	assert.Equal(t, 10, dbg.MaxSize)
	assert.True(t, dbg.Compress)
	require.NotNil(t, dbg.Threshold())
	assert.Equal(t, level.Debug, *dbg.Threshold())

	require.NotNil(t, doc.Root.Level)
	assert.Equal(t, level.Info, *doc.Root.Level)
	assert.Equal(t, []string{"stdout", "file"}, doc.Root.Appenders)

	lg := doc.Loggers["debug"]
	require.NotNil(t, lg.Additive)
	assert.False(t, *lg.Additive)
	assert.Equal(t, level.Debug, *lg.Level)
	assert.Nil(t, doc.Loggers["app.db"].Level)
	assert.Nil(t, doc.Loggers["app.db"].Additive)

	assert.Equal(t, logging.OutputDiscard, doc.Diagnostics.Output)
	assert.Equal(t, logging.DefaultLevel, doc.Diagnostics.Level)
	assert.True(t, doc.Metrics.Enabled)
	assert.Equal(t, 3*time.Second, doc.Metrics.Timeout)
	assert.Equal(t, "logroute", doc.Metrics.JobName)
}

func TestParse_Defaults(t *testing.T) {
	for _, data := range []string{"", "root: {}", "appenders: {}\n"} {
		doc, err := Parse([]byte(data))
		require.NoError(t, err, data)
		require.NotNil(t, doc.Root.Level)
		assert.Equal(t, DefaultRootLevel, *doc.Root.Level, "отсутствующий root.level заменяется на info")
		assert.Zero(t, doc.RefreshRate)
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed yaml", "root: [unclosed"},
		{"unknown top-level key", "rooot:\n  level: info\n"},
		{"unknown appender key", "appenders:\n  a:\n    kind: console\n    colour: red\n"},
		{"missing kind", "appenders:\n  a:\n    path: x.log\n"},
		{"bad level", "root:\n  level: loud\n"},
		{"appenders not a list", "root:\n  appenders: stdout\n"},
		{"additive not bool", "loggers:\n  a:\n    additive: maybe\n"},
		{"bad logger name", "loggers:\n  a..b:\n    level: info\n"},
		{"bad encoder kind", "appenders:\n  a:\n    kind: console\n    encoder:\n      kind: xml\n"},
		{"bad filter", "appenders:\n  a:\n    kind: console\n    filters:\n      - kind: regex\n        level: info\n"},
		{"bad refresh rate", "refresh_rate: soon\n"},
		{"document is a list", "- a\n- b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ConfigSyntax)
		})
	}
}

func TestParse_UnknownKindIsNotSyntaxError(t *testing.T) {
	doc, err := Parse([]byte("appenders:\n  s:\n    kind: syslog\n"))
	require.NoError(t, err, "вид аппендера проверяет реестр, а не схема")
	assert.Equal(t, "syslog", doc.Appenders["s"].Kind)
}

func TestParse_LevelsCaseInsensitive(t *testing.T) {
	doc, err := Parse([]byte("root:\n  level: WARNING\n"))
	require.NoError(t, err)
	assert.Equal(t, level.Warn, *doc.Root.Level)
}

func TestAppenderConfig_ThresholdStrictest(t *testing.T) {
	a := AppenderConfig{Filters: []FilterConfig{
		{Kind: FilterThreshold, Level: level.Info},
		{Kind: FilterThreshold, Level: level.Error},
		{Kind: FilterThreshold, Level: level.Warn},
	}}
	require.NotNil(t, a.Threshold())
	assert.Equal(t, level.Error, *a.Threshold())
	assert.Nil(t, AppenderConfig{}.Threshold())
}

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "logroute.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), sampleDoc)
	t.Setenv("LOGROUTE_ROOT_LEVEL", "error")
	t.Setenv("LOGROUTE_REFRESH_RATE", "0")
	t.Setenv("LOGROUTE_DIAG_LEVEL", "debug")
	t.Setenv("LOGROUTE_METRICS_JOB_NAME", "svc")

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, level.Error, *doc.Root.Level)
	assert.Zero(t, doc.RefreshRate)
	assert.Equal(t, "debug", doc.Diagnostics.Level)
	assert.Equal(t, logging.OutputDiscard, doc.Diagnostics.Output, "значение из YAML сохраняется")
	assert.Equal(t, "svc", doc.Metrics.JobName)
}

func TestLoad_InvalidEnv(t *testing.T) {
	path := writeFile(t, t.TempDir(), sampleDoc)

	t.Setenv("LOGROUTE_ROOT_LEVEL", "chatty")
	_, err := Load(path)
	assert.ErrorIs(t, err, apperrors.ConfigValidation)

	t.Setenv("LOGROUTE_ROOT_LEVEL", "")
	t.Setenv("LOGROUTE_REFRESH_RATE", "-1s")
	_, err = Load(path)
	assert.ErrorIs(t, err, apperrors.ConfigValidation)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConfigLoad, apperrors.CodeOf(err))
}

func TestWatcher_Check(t *testing.T) {
	dir := t.TempDir()
	initial := "root:\n  level: info\n"
	path := writeFile(t, dir, initial)

	var applied []*Document
	rec := loggingtest.NewRecorder()
	w := NewWatcher(path, time.Second, []byte(initial), func(doc *Document) error {
		applied = append(applied, doc)
		return nil
	}, rec)

	assert.False(t, w.Check(), "содержимое не изменилось")
	assert.Empty(t, applied)

	writeFile(t, dir, "refresh_rate: 5s\nroot:\n  level: debug\n")
	assert.True(t, w.Check())
	require.Len(t, applied, 1)
	assert.Equal(t, level.Debug, *applied[0].Root.Level)
	assert.Equal(t, 5*time.Second, w.Interval())

	writeFile(t, dir, "root:\n  level: [broken\n")
	assert.False(t, w.Check())
	assert.Equal(t, 1, rec.Count("error"))

	assert.False(t, w.Check(), "повторная ошибка на том же содержимом не логируется")
	assert.Equal(t, 1, rec.Count("error"))
}

func TestWatcher_StopsWithoutRefreshRate(t *testing.T) {
	dir := t.TempDir()
	initial := "refresh_rate: 100ms\nroot:\n  level: info\n"
	path := writeFile(t, dir, initial)

	var applied int
	w := NewWatcher(path, 100*time.Millisecond, []byte(initial), func(*Document) error {
		applied++
		return nil
	}, loggingtest.NewRecorder())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()

	writeFile(t, dir, "root:\n  level: debug\n")
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run не завершился после документа без refresh_rate")
	}
	assert.True(t, w.Stopped())
	assert.Equal(t, 1, applied)
}

func TestWatcher_ApplyErrorKeepsRunning(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "root:\n  level: info\n")

	rec := loggingtest.NewRecorder()
	w := NewWatcher(path, time.Millisecond, nil, func(*Document) error {
		return apperrors.Newf(apperrors.ErrUndefinedAppender, "аппендер %q не определён", "x")
	}, rec)
	assert.Equal(t, MinRefreshRate, w.Interval())

	assert.False(t, w.Check())
	assert.Equal(t, 1, rec.Count("error"))
	assert.Contains(t, rec.String(), "APPENDER.UNDEFINED")
}

func TestWatcher_MissingFile(t *testing.T) {
	rec := loggingtest.NewRecorder()
	w := NewWatcher(filepath.Join(t.TempDir(), "gone.yaml"), time.Second, nil, func(*Document) error { return nil }, rec)
	assert.False(t, w.Check())
	assert.Equal(t, 1, rec.Count("warn"))
}

func TestSchema_Embedded(t *testing.T) {
	assert.Contains(t, string(Schema()), `"$schema"`)
	_, err := loadSchema()
	require.NoError(t, err)
}
