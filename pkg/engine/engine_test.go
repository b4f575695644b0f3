package engine_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/checks"
	"github.com/Sumatoshi-tech/stylewalk/pkg/engine"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
	"github.com/Sumatoshi-tech/stylewalk/pkg/observability"
	"github.com/Sumatoshi-tech/stylewalk/pkg/suppress"
	"github.com/Sumatoshi-tech/stylewalk/pkg/walker"
)

const tabbed = "package p\n\nfunc f() {\n\treturn\n}\n"

func newPlan(t *testing.T, registry *check.Registry, entries ...walker.PlanEntry) *walker.Plan {
	t.Helper()

	plan, err := walker.NewPlan(registry, entries)
	require.NoError(t, err)

	return plan
}

func suppressions(t *testing.T, doc string) *suppress.Set {
	t.Helper()

	set, err := suppress.Parse([]byte(doc))
	require.NoError(t, err)

	return set
}

func TestCheckFile_TabViolationAndLocationSuppression(t *testing.T) {
	t.Parallel()

	plan := newPlan(t, checks.DefaultRegistry(), walker.PlanEntry{ID: "TabCharacter", Severity: check.SeverityError})
	src := engine.Source{Name: "p.go", Content: []byte(tabbed)}

	result := engine.New(plan, nil).CheckFile(context.Background(), src)
	require.NoError(t, result.Err)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, 4, result.Violations[0].Line)
	assert.Equal(t, 0, result.Violations[0].Col)
	assert.Equal(t, "TabCharacter", result.Violations[0].RuleID)

	set := suppressions(t, "suppressions:\n  - checks: TabCharacter\n    lines: 4\n    columns: 0\n")

	result = engine.New(plan, set).CheckFile(context.Background(), src)
	require.NoError(t, result.Err)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 1, result.Suppressed)
}

func TestCheckFile_QuerySuppression(t *testing.T) {
	t.Parallel()

	content := "package p\n\nfunc f() {\n\tx := 1\n\t_ = x\n}\n\nfunc g() {\n\ty := 2\n\t_ = y\n}\n"
	plan := newPlan(t, checks.DefaultRegistry(),
		walker.PlanEntry{ID: "FunctionLength", Options: map[string]any{"max": 2}})
	set := suppressions(t, "suppressions:\n  - query: \"ancestor-or-self::function_declaration[@name='f']\"\n")

	result := engine.New(plan, set).CheckFile(context.Background(), engine.Source{Name: "p.go", Content: []byte(content)})
	require.NoError(t, result.Err)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, 8, result.Violations[0].Line)
	assert.Equal(t, 1, result.Suppressed)
}

func TestCheckFile_AbsoluteQuerySuppressesComment(t *testing.T) {
	t.Parallel()

	content := "package p\n\n// TODO: later\nfunc f() {}\n"
	plan := newPlan(t, checks.DefaultRegistry(), walker.PlanEntry{ID: "TodoComment"})
	src := engine.Source{Name: "p.go", Content: []byte(content)}

	result := engine.New(plan, nil).CheckFile(context.Background(), src)
	require.NoError(t, result.Err)
	require.Len(t, result.Violations, 1)

	for _, q := range []string{"self::line_comment", "//line_comment", "/comment_root/line_comment"} {
		set := suppressions(t, "suppressions:\n  - query: \""+q+"\"\n")

		result = engine.New(plan, set).CheckFile(context.Background(), src)
		require.NoError(t, result.Err, q)
		assert.Empty(t, result.Violations, q)
		assert.Equal(t, 1, result.Suppressed, q)
	}
}

func TestCheckFile_CommentRegions(t *testing.T) {
	t.Parallel()

	content := "package p\n\n// stylewalk:off Tab.*\nfunc f() {\n\treturn\n}\n// stylewalk:on Tab.*\n"
	plan := newPlan(t, checks.DefaultRegistry(), walker.PlanEntry{ID: "TabCharacter"})
	src := engine.Source{Name: "p.go", Content: []byte(content)}

	assert.Empty(t, engine.New(plan, nil).CheckFile(context.Background(), src).Violations)
	assert.Len(t, engine.New(plan, nil, engine.WithCommentRegions(false)).CheckFile(context.Background(), src).Violations, 1)
}

func TestCheckFile_NearbyComment(t *testing.T) {
	t.Parallel()

	content := "package p\n\n// stylewalk:ignore TabCharacter +2\nfunc f() {\n\treturn\n}\n"
	plan := newPlan(t, checks.DefaultRegistry(), walker.PlanEntry{ID: "TabCharacter"})
	src := engine.Source{Name: "p.go", Content: []byte(content)}

	result := engine.New(plan, nil).CheckFile(context.Background(), src)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 1, result.Suppressed)

	assert.Len(t, engine.New(plan, nil, engine.WithCommentRegions(false)).CheckFile(context.Background(), src).Violations, 1)
}

func TestCheckFile_ParseError(t *testing.T) {
	t.Parallel()

	plan := newPlan(t, checks.DefaultRegistry(), walker.PlanEntry{ID: "TabCharacter"})

	result := engine.New(plan, nil).CheckFile(context.Background(), engine.Source{Name: "bad.go", Content: []byte("package p\nfunc {\n")})
	require.NoError(t, result.Err)
	require.Len(t, result.Violations, 1)

	v := result.Violations[0]
	assert.Equal(t, check.DispatcherID, v.RuleID)
	assert.Equal(t, check.KeyParseError, v.Key)
	assert.Equal(t, "bad.go", v.File)
	assert.Contains(t, v.Message, "Parse error: ")
}

func TestCheckFile_Unsupported(t *testing.T) {
	t.Parallel()

	plan := newPlan(t, checks.DefaultRegistry(), walker.PlanEntry{ID: "TabCharacter"})

	result := engine.New(plan, nil).CheckFile(context.Background(), engine.Source{Name: "notes.txt", Content: []byte("x")})
	require.Error(t, result.Err)
	assert.Empty(t, result.Violations)
}

func TestRun_KeepsOrderAcrossWorkers(t *testing.T) {
	t.Parallel()

	plan := newPlan(t, checks.DefaultRegistry(), walker.PlanEntry{ID: "TabCharacter"})

	sources := make([]engine.Source, 20)
	for idx := range sources {
		sources[idx] = engine.Source{Name: fmt.Sprintf("f%02d.go", idx), Content: []byte(tabbed)}
	}

	sources = append(sources, engine.Source{Name: "notes.txt", Content: []byte("x")})

	result, err := engine.New(plan, nil, engine.WithWorkers(4)).Run(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, result.Files, len(sources))

	for idx := range 20 {
		assert.Equal(t, sources[idx].Name, result.Files[idx].File)
		assert.Len(t, result.Files[idx].Violations, 1)
	}

	assert.Len(t, result.Violations(), 20)
	require.Error(t, result.Errors())
	assert.Contains(t, result.Errors().Error(), "notes.txt")
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	plan := newPlan(t, checks.DefaultRegistry(), walker.PlanEntry{ID: "TabCharacter"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.New(plan, nil).Run(ctx, []engine.Source{{Name: "a.go", Content: []byte(tabbed)}})
	require.ErrorIs(t, err, context.Canceled)
}

type exploding struct {
	check.Base
}

func (*exploding) ID() string                   { return "Exploding" }
func (*exploding) AcceptableKinds() []node.Kind { return check.Kinds(node.KindFile) }
func (*exploding) DefaultKinds() []node.Kind    { return check.Kinds(node.KindFile) }
func (*exploding) Enter(*check.Context, *node.Node) {
	panic("boom")
}

func TestRun_TracesAndMetrics(t *testing.T) {
	t.Parallel()

	registry := checks.DefaultRegistry()
	registry.MustRegister("Always panics.", func() check.Check { return &exploding{} })

	plan := newPlan(t, registry,
		walker.PlanEntry{ID: "TabCharacter"},
		walker.PlanEntry{ID: "Exploding"},
	)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := observability.NewRunMetrics(mp.Meter("test"))
	require.NoError(t, err)

	eng := engine.New(plan, suppressions(t, "suppressions:\n  - message: \"tab\"\n"),
		engine.WithTracer(tp.Tracer("test")),
		engine.WithMetrics(metrics),
		engine.WithWorkers(2),
	)

	sources := []engine.Source{
		{Name: "a.go", Content: []byte(tabbed)},
		{Name: "b.go", Content: []byte("package p\n")},
		{Name: "c.go", Content: []byte("package p\nfunc {\n")},
	}

	result, err := eng.Run(context.Background(), sources)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Suppressed)

	internal := 0

	for _, v := range result.Violations() {
		if v.Key == check.KeyInternalError {
			internal++

			assert.Equal(t, "Exploding", v.RuleID)
		}
	}

	assert.Equal(t, 2, internal)

	names := map[string]int{}
	for _, span := range recorder.Ended() {
		names[span.Name()]++
	}

	assert.Equal(t, 1, names["stylewalk.run"])
	assert.Equal(t, 3, names["stylewalk.file"])

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := map[string]int64{}

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}

	assert.Equal(t, int64(3), sums["stylewalk.files.total"])
	assert.Equal(t, int64(1), sums["stylewalk.violations.suppressed.total"])
	assert.Equal(t, int64(2), sums["stylewalk.check.failures.total"])
	assert.Equal(t, int64(3), sums["stylewalk.violations.total"])
}

func TestLoadSources(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := map[string]string{
		"a.go":             "package a\n",
		"sub/B.java":       "class B {}\n",
		"README.md":        "# readme\n",
		"vendor/v/v.go":    "package v\n",
		".hidden/h.go":     "package h\n",
		"sub/deeper/c.go":  "package c\n",
		"sub/deeper/d.txt": "text\n",
		"sub/blob.go":      "\x00\x01\x02",
	}

	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	sources, err := engine.LoadSources([]string{root, filepath.Join(root, "README.md")})
	require.NoError(t, err)

	var names []string
	for _, src := range sources {
		rel, relErr := filepath.Rel(root, src.Name)
		require.NoError(t, relErr)

		names = append(names, filepath.ToSlash(rel))
	}

	assert.Equal(t, []string{"a.go", "sub/B.java", "sub/deeper/c.go", "README.md"}, names)

	_, err = engine.LoadSources([]string{filepath.Join(root, "missing")})
	require.Error(t, err)
}
