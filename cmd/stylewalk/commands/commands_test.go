package commands //nolint:testpackage // Tests inject unexported dependencies.

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/stylewalk/pkg/checks"
	"github.com/Sumatoshi-tech/stylewalk/pkg/observability"
	"github.com/Sumatoshi-tech/stylewalk/pkg/suppress"
)

const tabbedSource = "package p\n\nfunc f() {\n\treturn\n}\n"

type workspace struct {
	dir    string
	config string
	source string
}

func newWorkspace(t *testing.T, severity string) workspace {
	t.Helper()

	dir := t.TempDir()
	ws := workspace{
		dir:    dir,
		config: filepath.Join(dir, "stylewalk.yaml"),
		source: filepath.Join(dir, "a.go"),
	}

	cfg := "checks:\n  - id: TabCharacter\n    severity: " + severity + "\n"
	require.NoError(t, os.WriteFile(ws.config, []byte(cfg), 0o600))
	require.NoError(t, os.WriteFile(ws.source, []byte(tabbedSource), 0o600))

	return ws
}

func stubInit(seen *observability.Config) observabilityInit {
	return func(cfg observability.Config) (observability.Providers, error) {
		*seen = cfg

		return observability.Providers{
			Tracer:   nooptrace.NewTracerProvider().Tracer("test"),
			Meter:    noopmetric.NewMeterProvider().Meter("test"),
			Logger:   slog.New(slog.DiscardHandler),
			Shutdown: func(context.Context) error { return nil },
		}, nil
	}
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestCheckCommand_ReportsViolations(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "warning")

	var seen observability.Config

	cmd := newCheckCommandWithDeps(stubInit(&seen), checks.DefaultRegistry)

	stdout, stderr, err := execute(t, cmd, "--config", ws.config, "--no-color", ws.dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, ws.source+":4:0: [warning] File contains tab characters")
	assert.Contains(t, stdout, "(TabCharacter)")
	assert.Contains(t, stderr, "Checked 1 file in")
	assert.Contains(t, stderr, "1 violation, 0 suppressed")
	assert.Equal(t, observability.ModeCLI, seen.Mode)
	assert.NotEmpty(t, seen.ServiceVersion)
}

func TestCheckCommand_FailsOnSeverity(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "warning")

	var seen observability.Config

	cmd := newCheckCommandWithDeps(stubInit(&seen), checks.DefaultRegistry)

	_, _, err := execute(t, cmd, "--config", ws.config, "--fail-on", "warning", ws.source)
	require.ErrorIs(t, err, ErrViolations)
}

func TestCheckCommand_JSON(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "error")

	var seen observability.Config

	cmd := newCheckCommandWithDeps(stubInit(&seen), checks.DefaultRegistry)

	stdout, _, err := execute(t, cmd, "--config", ws.config, "--format", "json", ws.source)
	require.ErrorIs(t, err, ErrViolations)

	var decoded []map[string]any

	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "TabCharacter", decoded[0]["rule_id"])
	assert.Equal(t, "error", decoded[0]["severity"])
	assert.Equal(t, "tab.first", decoded[0]["message_key"])
}

func TestCheckCommand_SuppressionFlag(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "error")
	suppressions := filepath.Join(ws.dir, "suppressions.yaml")
	doc := "suppressions:\n  - checks: TabCharacter\n    lines: 4\n"
	require.NoError(t, os.WriteFile(suppressions, []byte(doc), 0o600))

	var seen observability.Config

	cmd := newCheckCommandWithDeps(stubInit(&seen), checks.DefaultRegistry)

	stdout, stderr, err := execute(t, cmd, "--config", ws.config, "--suppressions", suppressions, ws.source)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "0 violations, 1 suppressed")
}

func TestCheckCommand_InvalidFlags(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "error")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "format", args: []string{"--format", "xml"}, want: ErrUnsupportedFormat},
		{name: "fail-on", args: []string{"--fail-on", "fatal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen observability.Config

			cmd := newCheckCommandWithDeps(stubInit(&seen), checks.DefaultRegistry)

			_, _, err := execute(t, cmd, append([]string{"--config", ws.config}, tt.args...)...)
			require.Error(t, err)

			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestTreeCommand(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "error")

	stdout, _, err := execute(t, NewTreeCommand(), "--config", ws.config, ws.source)
	require.NoError(t, err)
	assert.Contains(t, stdout, "file")
	assert.Contains(t, stdout, "function_declaration")
	assert.Contains(t, stdout, "3:0")
}

func TestQueryCommand_Count(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "error")

	stdout, _, err := execute(t, NewQueryCommand(), "--config", ws.config, "--format", "count",
		"//function_declaration", ws.source)
	require.NoError(t, err)
	assert.Equal(t, "1\n", stdout)
}

func TestQueryCommand_BadExpression(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "error")

	_, _, err := execute(t, NewQueryCommand(), "--config", ws.config, "//[", ws.source)
	require.Error(t, err)
}

func TestSuggestCommand(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "error")

	stdout, _, err := execute(t, NewSuggestCommand(), "--config", ws.config, "--location",
		"--checks", "TabCharacter", ws.source, "3", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "function_declaration")

	set, err := suppress.Parse([]byte(stdout))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, set.Len(), 2)
}

func TestSuggestCommand_CommentRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	config := filepath.Join(dir, "stylewalk.yaml")
	source := filepath.Join(dir, "todo.go")
	require.NoError(t, os.WriteFile(config, []byte("checks:\n  - id: TodoComment\n"), 0o600))
	require.NoError(t, os.WriteFile(source, []byte("package p\n\n// TODO: later\nfunc f() {}\n"), 0o600))

	stdout, _, err := execute(t, NewSuggestCommand(), "--config", config, "--checks", "TodoComment", source, "3", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "/comment_root/line_comment")

	suppressions := filepath.Join(dir, "suppressions.yaml")
	require.NoError(t, os.WriteFile(suppressions, []byte(stdout), 0o600))

	var seen observability.Config

	cmd := newCheckCommandWithDeps(stubInit(&seen), checks.DefaultRegistry)

	_, stderr, err := execute(t, cmd, "--config", config, "--suppressions", suppressions, source)
	require.NoError(t, err)
	assert.Contains(t, stderr, "0 violations, 1 suppressed")
}

func TestSuggestCommand_InvalidLocation(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "error")

	_, _, err := execute(t, NewSuggestCommand(), "--config", ws.config, ws.source, "zero", "0")
	require.ErrorIs(t, err, ErrInvalidLocation)

	_, _, err = execute(t, NewSuggestCommand(), "--config", ws.config, ws.source, "2", "0")
	require.ErrorIs(t, err, ErrNoNodeAtLocation)
}

func TestCheckCommand_SARIF(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "warning")

	var seen observability.Config

	cmd := newCheckCommandWithDeps(stubInit(&seen), checks.DefaultRegistry)

	stdout, _, err := execute(t, cmd, "--config", ws.config, "--format", "sarif", ws.source)
	require.NoError(t, err)

	var report struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						Region struct {
							StartLine   int `json:"startLine"`
							StartColumn int `json:"startColumn"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}

	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "2.1.0", report.Version)
	require.Len(t, report.Runs, 1)
	assert.Equal(t, "stylewalk", report.Runs[0].Tool.Driver.Name)
	require.Len(t, report.Runs[0].Tool.Driver.Rules, 1)
	require.Len(t, report.Runs[0].Results, 1)

	result := report.Runs[0].Results[0]
	assert.Equal(t, "TabCharacter", result.RuleID)
	assert.Equal(t, "warning", result.Level)
	require.Len(t, result.Locations, 1)
	assert.Equal(t, 4, result.Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, 1, result.Locations[0].PhysicalLocation.Region.StartColumn)
}
