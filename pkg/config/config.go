// Package config loads the run configuration of stylewalk.
package config

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
	"github.com/Sumatoshi-tech/stylewalk/pkg/observability"
	"github.com/Sumatoshi-tech/stylewalk/pkg/parser"
	"github.com/Sumatoshi-tech/stylewalk/pkg/suppress"
	"github.com/Sumatoshi-tech/stylewalk/pkg/walker"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers     = errors.New("workers must not be negative")
	ErrInvalidTabWidth    = errors.New("tab width must be positive")
	ErrNoChecks           = errors.New("no checks configured")
	ErrInvalidSeverity    = errors.New("invalid check severity")
	ErrInvalidLogFormat   = errors.New("log format must be text or json")
	ErrInvalidSampleRatio = errors.New("sample ratio must be within [0, 1]")
	ErrUnknownLanguage    = errors.New("unknown language")
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the run configuration.
type Config struct {
	TabWidth      int                 `mapstructure:"tab_width"`
	Workers       int                 `mapstructure:"workers"`
	Language      string              `mapstructure:"language"`
	Checks        []CheckConfig       `mapstructure:"checks"`
	Suppressions  string              `mapstructure:"suppressions"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// CheckConfig enables one check, or every check whose ID matches a glob.
// A later entry overrides settings an earlier glob applied to the same ID.
type CheckConfig struct {
	ID       string         `mapstructure:"id"`
	Severity string         `mapstructure:"severity"`
	Kinds    []string       `mapstructure:"kinds"`
	Options  map[string]any `mapstructure:"options"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ObservabilityConfig holds telemetry configuration.
type ObservabilityConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	TraceVerbose bool    `mapstructure:"trace_verbose"`
	MetricsFile  string  `mapstructure:"metrics_file"`
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers)
	}

	if c.TabWidth <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTabWidth, c.TabWidth)
	}

	if len(c.Checks) == 0 {
		return ErrNoChecks
	}

	for _, cc := range c.Checks {
		_, err := check.ParseSeverity(cc.Severity)
		if err != nil {
			return fmt.Errorf("%w for %s: %w", ErrInvalidSeverity, cc.ID, err)
		}
	}

	if c.Language != "" {
		if _, err := parser.Lookup(c.Language); err != nil {
			return fmt.Errorf("%w: %w", ErrUnknownLanguage, err)
		}
	}

	if c.Logging.Format != LogFormatText && c.Logging.Format != LogFormatJSON {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	if _, err := observability.ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	if c.Observability.SampleRatio < 0 || c.Observability.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, c.Observability.SampleRatio)
	}

	return nil
}

// Plan resolves the check entries against registry into a validated plan.
func (c *Config) Plan(registry *check.Registry) (*walker.Plan, error) {
	var (
		order   []string
		entries = make(map[string]walker.PlanEntry)
	)

	for _, cc := range c.Checks {
		ids, err := registry.ExpandPatterns([]string{cc.ID})
		if err != nil {
			return nil, fmt.Errorf("resolve check %q: %w", cc.ID, err)
		}

		severity, err := check.ParseSeverity(cc.Severity)
		if err != nil {
			return nil, fmt.Errorf("%w for %s: %w", ErrInvalidSeverity, cc.ID, err)
		}

		var kinds []node.Kind
		if cc.Kinds != nil {
			kinds = make([]node.Kind, len(cc.Kinds))
			for idx, kind := range cc.Kinds {
				kinds[idx] = node.Kind(kind)
			}
		}

		for _, id := range ids {
			if _, seen := entries[id]; !seen {
				order = append(order, id)
			}

			entries[id] = walker.PlanEntry{ID: id, Kinds: kinds, Severity: severity, Options: cc.Options}
		}
	}

	planned := make([]walker.PlanEntry, 0, len(order))
	for _, id := range order {
		planned = append(planned, entries[id])
	}

	plan, err := walker.NewPlan(registry, planned)
	if err != nil {
		return nil, fmt.Errorf("build check plan: %w", err)
	}

	return plan, nil
}

// SuppressionSet loads the configured suppression file. Without one the
// set is empty.
func (c *Config) SuppressionSet() (*suppress.Set, error) {
	if c.Suppressions == "" {
		return suppress.NewSet(), nil
	}

	set, err := suppress.Load(c.Suppressions)
	if err != nil {
		return nil, fmt.Errorf("load suppressions: %w", err)
	}

	return set, nil
}

// Telemetry converts the observability and logging sections into the
// observability configuration. Validate must have succeeded.
func (c *Config) Telemetry(version string) observability.Config {
	cfg := observability.DefaultConfig()
	cfg.ServiceVersion = version
	cfg.OTLPEndpoint = c.Observability.OTLPEndpoint
	cfg.OTLPInsecure = c.Observability.OTLPInsecure
	cfg.SampleRatio = c.Observability.SampleRatio
	cfg.TraceVerbose = c.Observability.TraceVerbose
	cfg.MetricsFile = c.Observability.MetricsFile
	cfg.LogJSON = c.Logging.Format == LogFormatJSON
	cfg.LogLevel, _ = observability.ParseLevel(c.Logging.Level) //nolint:errcheck // validated.

	return cfg
}
