package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesTotal       = "stylewalk.files.total"
	metricFileDuration     = "stylewalk.file.duration.seconds"
	metricViolationsTotal  = "stylewalk.violations.total"
	metricSuppressedTotal  = "stylewalk.violations.suppressed.total"
	metricCheckFailedTotal = "stylewalk.check.failures.total"

	attrStatus   = "status"
	attrCheck    = "check"
	attrSeverity = "severity"
)

// File outcomes recorded by [RunMetrics.RecordFile].
const (
	StatusOK         = "ok"
	StatusParseError = "parse_error"
	StatusError      = "error"
)

// durationBucketBoundaries spans 1ms to 10s per file.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 10} //nolint:gochecknoglobals // histogram layout.

// RunMetrics holds the instruments of a check run.
type RunMetrics struct {
	filesTotal      metric.Int64Counter
	fileDuration    metric.Float64Histogram
	violationsTotal metric.Int64Counter
	suppressedTotal metric.Int64Counter
	checkFailures   metric.Int64Counter
}

// NewRunMetrics creates the run instruments from mt.
func NewRunMetrics(mt metric.Meter) (*RunMetrics, error) {
	b := newMetricBuilder(mt)

	durationDesc := "Time to parse, walk and filter one file"

	rm := &RunMetrics{
		filesTotal:      b.counter(metricFilesTotal, "Files processed", "{file}"),
		fileDuration:    b.histogram(metricFileDuration, durationDesc, "s", durationBucketBoundaries...),
		violationsTotal: b.counter(metricViolationsTotal, "Violations reported after suppression", "{violation}"),
		suppressedTotal: b.counter(metricSuppressedTotal, "Violations removed by suppression entries", "{violation}"),
		checkFailures:   b.counter(metricCheckFailedTotal, "Check callbacks that panicked", "{failure}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return rm, nil
}

// RecordFile records one processed file.
func (rm *RunMetrics) RecordFile(ctx context.Context, status string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String(attrStatus, status))

	rm.filesTotal.Add(ctx, 1, attrs)
	rm.fileDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordViolation counts a reported violation.
func (rm *RunMetrics) RecordViolation(ctx context.Context, checkID, severity string) {
	rm.violationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrCheck, checkID),
		attribute.String(attrSeverity, severity),
	))
}

// RecordSuppressed counts violations removed by suppression.
func (rm *RunMetrics) RecordSuppressed(ctx context.Context, count int) {
	if count > 0 {
		rm.suppressedTotal.Add(ctx, int64(count))
	}
}

// RecordCheckFailure counts a recovered check panic.
func (rm *RunMetrics) RecordCheckFailure(ctx context.Context, checkID string) {
	rm.checkFailures.Add(ctx, 1, metric.WithAttributes(attribute.String(attrCheck, checkID)))
}
