package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/logroute/internal/appender"
	"github.com/Kargones/logroute/internal/level"
	"github.com/Kargones/logroute/internal/pkg/apperrors"
	"github.com/Kargones/logroute/internal/sink"
	"github.com/Kargones/logroute/internal/sink/sinktest"
)

func lvl(l level.Level) *level.Level { return &l }

func boolPtr(b bool) *bool { return &b }

func newRegistry(t *testing.T, names ...string) *appender.Registry {
	t.Helper()
	r := appender.NewRegistry(appender.WithSinkFactory(func(string, appender.Kind, appender.Params) (sink.Sink, error) {
		return sinktest.NewSpy(), nil
	}))
	for _, name := range names {
		_, err := r.Register(name, appender.KindConsole, appender.Params{}, "")
		require.NoError(t, err)
	}
	return r
}

func dispatchNames(n *Node) []string {
	names := make([]string, 0, len(n.Dispatch()))
	for _, a := range n.Dispatch() {
		names = append(names, a.Name())
	}
	return names
}

func TestBuild_MissingRootLevel(t *testing.T) {
	_, err := Build(RootSpec{Appenders: []string{"stdout"}}, nil, newRegistry(t, "stdout"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.MissingRootLevel)
}

func TestBuild_UndefinedAppenderRejectsWholeTree(t *testing.T) {
	reg := newRegistry(t, "stdout")

	tests := []struct {
		name    string
		root    RootSpec
		loggers []LoggerSpec
	}{
		{
			name: "root reference",
			root: RootSpec{Level: lvl(level.Info), Appenders: []string{"stdout", "file"}},
		},
		{
			name: "named logger reference",
			root: RootSpec{Level: lvl(level.Info), Appenders: []string{"stdout"}},
			loggers: []LoggerSpec{
				{Name: "a", Appenders: []string{"stdout"}},
				{Name: "a.b", Appenders: []string{"missing"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Build(tt.root, tt.loggers, reg)
			require.Error(t, err)
			assert.Nil(t, tr)
			assert.ErrorIs(t, err, apperrors.UndefinedAppender)
		})
	}
}

func TestBuild_InvalidLoggerNames(t *testing.T) {
	reg := newRegistry(t)
	root := RootSpec{Level: lvl(level.Info)}

	for _, name := range []string{"", ".a", "a.", "a..b"} {
		_, err := Build(root, []LoggerSpec{{Name: name}}, reg)
		assert.ErrorIs(t, err, apperrors.ConfigValidation, name)
	}

	_, err := Build(root, []LoggerSpec{{Name: "a"}, {Name: "a"}}, reg)
	assert.ErrorIs(t, err, apperrors.ConfigValidation)
}

func TestResolve_LongestPrefix(t *testing.T) {
	reg := newRegistry(t, "root", "a", "ab")
	tr, err := Build(
		RootSpec{Level: lvl(level.Info), Appenders: []string{"root"}},
		[]LoggerSpec{
			{Name: "a", Appenders: []string{"a"}},
			{Name: "a.b", Appenders: []string{"ab"}},
		},
		reg,
	)
	require.NoError(t, err)

	tests := []struct {
		logger string
		want   string
	}{
		{"a.b.c", "a.b"},
		{"a.b.c.d", "a.b"},
		{"a.b", "a.b"},
		{"a.x", "a"},
		{"a", "a"},
		{"a.bc", "a"},
		{"ab", ""},
		{"other", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.logger, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Resolve(tt.logger).Name())
		})
	}
}

func TestBuild_ParentIsNearestConfiguredAncestor(t *testing.T) {
	tr, err := Build(
		RootSpec{Level: lvl(level.Warn)},
		[]LoggerSpec{{Name: "a.b.c"}, {Name: "a"}},
		newRegistry(t),
	)
	require.NoError(t, err)

	abc := tr.Resolve("a.b.c")
	require.NotNil(t, abc.Parent())
	assert.Equal(t, "a", abc.Parent().Name())
	assert.True(t, abc.Parent().Parent().IsRoot())
	assert.Nil(t, tr.Root().Parent())
}

func TestBuild_LevelInheritance(t *testing.T) {
	tr, err := Build(
		RootSpec{Level: lvl(level.Warn)},
		[]LoggerSpec{
			{Name: "svc", Level: lvl(level.Debug)},
			{Name: "svc.db"},
			{Name: "other"},
		},
		newRegistry(t),
	)
	require.NoError(t, err)

	assert.Equal(t, level.Debug, tr.Resolve("svc.db").Level(), "уровень наследуется от svc")
	assert.False(t, tr.Resolve("svc.db").LevelExplicit())
	assert.True(t, tr.Resolve("svc").LevelExplicit())
	assert.Equal(t, level.Warn, tr.Resolve("other").Level(), "уровень наследуется от корня")
	assert.Equal(t, level.Warn, tr.Resolve("unconfigured.name").Level())
}

func TestBuild_DispatchSets(t *testing.T) {
	reg := newRegistry(t, "stdout", "file", "debug", "audit")
	tr, err := Build(
		RootSpec{Level: lvl(level.Info), Appenders: []string{"stdout", "file"}},
		[]LoggerSpec{
			{Name: "debug", Level: lvl(level.Debug), Appenders: []string{"debug"}, Additive: boolPtr(false)},
			{Name: "app", Appenders: []string{"audit"}},
			{Name: "app.quiet", Additive: boolPtr(false)},
			{Name: "app.quiet.loud", Appenders: []string{"stdout"}},
			{Name: "dup", Appenders: []string{"file", "stdout", "file"}},
		},
		reg,
	)
	require.NoError(t, err)

	tests := []struct {
		logger string
		want   []string
	}{
		{"", []string{"stdout", "file"}},
		{"other", []string{"stdout", "file"}},
		{"debug", []string{"debug"}},
		{"debug.child", []string{"debug"}},
		{"app", []string{"audit", "stdout", "file"}},
		{"app.quiet", []string{}},
		{"app.quiet.loud", []string{"stdout"}},
		{"dup", []string{"file", "stdout"}},
	}
	for _, tt := range tests {
		t.Run(tt.logger, func(t *testing.T) {
			assert.Equal(t, tt.want, dispatchNames(tr.Resolve(tt.logger)))
		})
	}
}

func TestNode_Enabled(t *testing.T) {
	tr, err := Build(
		RootSpec{Level: lvl(level.Info)},
		[]LoggerSpec{{Name: "muted", Level: lvl(level.Off)}},
		newRegistry(t),
	)
	require.NoError(t, err)

	assert.False(t, tr.Root().Enabled(level.Debug))
	assert.True(t, tr.Root().Enabled(level.Info))
	assert.False(t, tr.Resolve("muted").Enabled(level.Fatal))
}

func TestTree_Loggers(t *testing.T) {
	tr, err := Build(
		RootSpec{Level: lvl(level.Info)},
		[]LoggerSpec{{Name: "z"}, {Name: "a.b"}, {Name: "a"}},
		newRegistry(t),
	)
	require.NoError(t, err)

	var names []string
	for _, n := range tr.Loggers() {
		names = append(names, n.Name())
	}
	assert.Equal(t, []string{"a", "a.b", "z"}, names)
}
