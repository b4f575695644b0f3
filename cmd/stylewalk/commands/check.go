// Package commands implements CLI command handlers for stylewalk.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/checks"
	"github.com/Sumatoshi-tech/stylewalk/pkg/config"
	"github.com/Sumatoshi-tech/stylewalk/pkg/engine"
	"github.com/Sumatoshi-tech/stylewalk/pkg/observability"
	"github.com/Sumatoshi-tech/stylewalk/pkg/version"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	// ErrViolations is returned when findings at or above the failure
	// severity survive suppression.
	ErrViolations = errors.New("violations found")
	// ErrUnsupportedFormat indicates an unknown --format value.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

type observabilityInit func(cfg observability.Config) (observability.Providers, error)

type registryProvider func() *check.Registry

// CheckCommand holds the flags and dependencies of the check command.
type CheckCommand struct {
	configPath   string
	format       string
	failOn       string
	suppressions string
	workers      int
	noColor      bool
	noRegions    bool

	initFn     observabilityInit
	registryFn registryProvider
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return newCheckCommandWithDeps(observability.Init, checks.DefaultRegistry)
}

func newCheckCommandWithDeps(initFn observabilityInit, registryFn registryProvider) *cobra.Command {
	cc := &CheckCommand{
		initFn:     initFn,
		registryFn: registryFn,
	}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check files and directories",
		Long: `Check every supported source file under the given paths (default: the
working directory) against the configured checks.

Exit status is 1 when a finding at or above --fail-on survives suppression.`,
		RunE: cc.run,
	}

	cmd.Flags().StringVarP(&cc.configPath, "config", "c", "", "Config file (default: stylewalk.yaml in . or ./config)")
	cmd.Flags().StringVarP(&cc.format, "format", "f", FormatText, "Output format: text, json or sarif")
	cmd.Flags().StringVar(&cc.failOn, "fail-on", check.SeverityError.String(), "Lowest severity that fails the run: info, warning, error")
	cmd.Flags().StringVarP(&cc.suppressions, "suppressions", "s", "", "Suppression file (overrides config)")
	cmd.Flags().IntVarP(&cc.workers, "workers", "w", 0, "Files checked in parallel (0 = config value, then CPU count)")
	cmd.Flags().BoolVar(&cc.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&cc.noRegions, "no-comment-regions", false, "Ignore stylewalk:off/on and stylewalk:ignore comments")

	return cmd
}

func (cc *CheckCommand) run(cmd *cobra.Command, args []string) error {
	if cc.format != FormatText && cc.format != FormatJSON && cc.format != FormatSARIF {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, cc.format)
	}

	failOn, err := check.ParseSeverity(cc.failOn)
	if err != nil {
		return fmt.Errorf("--fail-on: %w", err)
	}

	cfg, err := loadConfig(cc.configPath)
	if err != nil {
		return err
	}

	if cc.suppressions != "" {
		cfg.Suppressions = cc.suppressions
	}

	if cc.workers > 0 {
		cfg.Workers = cc.workers
	}

	telemetry := cfg.Telemetry(version.Version)
	telemetry.Mode = observability.ModeCLI
	telemetry.LogOutput = cmd.ErrOrStderr()

	providers, err := cc.initFn(telemetry)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	registry := cc.registryFn()

	eng, err := cc.newEngine(cfg, registry, providers)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	sources, err := engine.LoadSources(args)
	if err != nil {
		return fmt.Errorf("collect sources: %w", err)
	}

	started := time.Now()

	result, err := eng.Run(cmd.Context(), sources)
	if err != nil {
		return err
	}

	violations := result.Violations()

	if cc.format == FormatSARIF {
		err = writeSARIF(cmd.OutOrStdout(), violations, descriptions(registry))
	} else {
		err = writeViolations(cmd.OutOrStdout(), violations, cc.format, cc.noColor)
	}

	if err != nil {
		return err
	}

	writeSummary(cmd.ErrOrStderr(), result, time.Since(started))

	fileErrs := result.Errors()
	if fileErrs != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), fileErrs)
	}

	failing := 0

	for _, v := range violations {
		if v.Severity >= failOn {
			failing++
		}
	}

	if failing > 0 {
		return fmt.Errorf("%w: %d", ErrViolations, failing)
	}

	return fileErrs
}

func (cc *CheckCommand) newEngine(
	cfg *config.Config, registry *check.Registry, providers observability.Providers,
) (*engine.Engine, error) {
	plan, err := cfg.Plan(registry)
	if err != nil {
		return nil, err
	}

	set, err := cfg.SuppressionSet()
	if err != nil {
		return nil, err
	}

	metrics, err := observability.NewRunMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("create metrics: %w", err)
	}

	p, err := newParser(cfg)
	if err != nil {
		return nil, err
	}

	return engine.New(plan, set,
		engine.WithLogger(providers.Logger),
		engine.WithTracer(providers.Tracer),
		engine.WithMetrics(metrics),
		engine.WithWorkers(cfg.Workers),
		engine.WithParser(p),
		engine.WithCommentRegions(!cc.noRegions),
	), nil
}

func writeSummary(w io.Writer, result *engine.Result, elapsed time.Duration) {
	fmt.Fprintf(w, "Checked %s in %s: %s, %s suppressed\n",
		english.Plural(len(result.Files), "file", ""),
		elapsed.Round(time.Millisecond),
		english.Plural(len(result.Violations()), "violation", ""),
		humanize.Comma(int64(result.Suppressed)),
	)
}

func descriptions(registry *check.Registry) map[string]string {
	all := registry.All()

	out := make(map[string]string, len(all))
	for _, d := range all {
		out[d.ID] = d.Description
	}

	return out
}
