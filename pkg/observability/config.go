// Package observability provides OpenTelemetry tracing and metrics, the
// structured logger, and the Prometheus textfile export used by stylewalk.
package observability

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// AppMode identifies how the binary was launched.
type AppMode string

const (
	// ModeCLI is an interactive command run.
	ModeCLI AppMode = "cli"
	// ModeCI is a non-interactive run, typically from a build pipeline.
	ModeCI AppMode = "ci"
)

const (
	defaultServiceName        = "stylewalk"
	defaultShutdownTimeoutSec = 5
)

// ErrInvalidLogLevel is returned by [ParseLevel] for unknown level names.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Config holds all observability configuration.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the version of the running binary.
	ServiceVersion string

	// Mode identifies how the binary was launched.
	Mode AppMode

	// OTLPEndpoint is the OTLP gRPC collector address. Empty disables export.
	OTLPEndpoint string

	// OTLPHeaders are extra gRPC metadata headers for the exporters.
	OTLPHeaders map[string]string

	// OTLPInsecure disables TLS for the OTLP connection.
	OTLPInsecure bool

	// SampleRatio is the trace sampling ratio; zero samples everything.
	SampleRatio float64

	// TraceVerbose keeps one span per file. When false only the run span
	// is exported.
	TraceVerbose bool

	// MetricsFile, when set, receives the run metrics in Prometheus text
	// format on shutdown.
	MetricsFile string

	LogLevel slog.Level
	LogJSON  bool

	// LogOutput defaults to standard error.
	LogOutput io.Writer

	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config for zero-config startup.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		Mode:               ModeCLI,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}

// ParseLevel converts a level name such as "debug" or "warn" into a level.
// An empty name means info.
func ParseLevel(name string) (slog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return slog.LevelInfo, nil
	}

	var level slog.Level

	err := level.UnmarshalText([]byte(strings.TrimSpace(name)))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}

	return level, nil
}
