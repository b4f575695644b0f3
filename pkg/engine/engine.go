// Package engine runs the per-file pipeline: parse, walk every configured
// check in one traversal, filter through suppressions, and normalize. Files
// are processed by a bounded pool of workers sharing only read-only state.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/observability"
	"github.com/Sumatoshi-tech/stylewalk/pkg/parser"
	"github.com/Sumatoshi-tech/stylewalk/pkg/suppress"
	"github.com/Sumatoshi-tech/stylewalk/pkg/walker"
)

// Source is one file to check, fully read.
type Source struct {
	Name    string
	Content []byte
}

// FileResult is the outcome for one file. Err is set when the file could
// not be checked at all; a parse error is reported as a violation instead.
type FileResult struct {
	File       string
	Violations []check.Violation
	Suppressed int
	Duration   time.Duration
	Err        error
}

// Result aggregates a run.
type Result struct {
	Files      []FileResult
	Suppressed int
}

// Violations returns every surviving violation, grouped by file in input
// order.
func (r *Result) Violations() []check.Violation {
	var all []check.Violation
	for _, f := range r.Files {
		all = append(all, f.Violations...)
	}

	return all
}

// Errors joins the per-file errors.
func (r *Result) Errors() error {
	var errs []error

	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.File, f.Err))
		}
	}

	return errors.Join(errs...)
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTracer sets the tracer used for run and file spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// WithMetrics sets the run instruments.
func WithMetrics(metrics *observability.RunMetrics) Option {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

// WithWorkers bounds the number of files processed at once. Zero or less
// selects GOMAXPROCS.
func WithWorkers(workers int) Option {
	return func(e *Engine) {
		e.workers = workers
	}
}

// WithParser replaces the default parser.
func WithParser(p *parser.Parser) Option {
	return func(e *Engine) {
		e.parser = p
	}
}

// WithCommentRegions toggles suppression by stylewalk:off/on and
// stylewalk:ignore comments.
func WithCommentRegions(enabled bool) Option {
	return func(e *Engine) {
		e.commentRegions = enabled
	}
}

// Engine checks files against a plan. It holds no per-file state and is
// safe for concurrent use.
type Engine struct {
	plan           *walker.Plan
	suppressions   *suppress.Set
	parser         *parser.Parser
	logger         *slog.Logger
	tracer         trace.Tracer
	metrics        *observability.RunMetrics
	workers        int
	commentRegions bool
}

// New creates an engine. suppressions may be nil.
func New(plan *walker.Plan, suppressions *suppress.Set, opts ...Option) *Engine {
	e := &Engine{
		plan:           plan,
		suppressions:   suppressions,
		logger:         slog.Default(),
		tracer:         nooptrace.NewTracerProvider().Tracer("stylewalk"),
		commentRegions: true,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.parser == nil {
		e.parser = parser.New()
	}

	if e.suppressions == nil {
		e.suppressions = suppress.NewSet()
	}

	return e
}

// Run checks every source. Results keep the order of sources. Only a
// canceled context stops the run early.
func (e *Engine) Run(ctx context.Context, sources []Source) (*Result, error) {
	ctx, span := e.tracer.Start(ctx, observability.SpanRun, trace.WithAttributes(attribute.Int("files", len(sources))))
	defer span.End()

	workers := e.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(workers, len(sources))))

	for idx, src := range sources {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[idx] = e.CheckFile(gctx, src)

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return nil, fmt.Errorf("run: %w", err)
	}

	res := &Result{Files: results}
	for _, f := range results {
		res.Suppressed += f.Suppressed
	}

	return res, nil
}

// CheckFile runs the whole pipeline for one file.
func (e *Engine) CheckFile(ctx context.Context, src Source) FileResult {
	started := time.Now()

	ctx, span := e.tracer.Start(ctx, observability.SpanFile, trace.WithAttributes(attribute.String("file", src.Name)))
	defer span.End()

	result, status := e.checkFile(ctx, src)
	result.Duration = time.Since(started)

	span.SetAttributes(
		attribute.Int("violations", len(result.Violations)),
		attribute.Int("suppressed", result.Suppressed),
		attribute.String("status", status),
	)

	if result.Err != nil {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Err.Error())
	}

	e.record(ctx, result, status)

	e.logger.DebugContext(ctx, "file checked",
		"file", src.Name,
		"status", status,
		"violations", len(result.Violations),
		"suppressed", result.Suppressed,
		"duration", result.Duration,
	)

	return result
}

func (e *Engine) checkFile(ctx context.Context, src Source) (FileResult, string) {
	result := FileResult{File: src.Name}

	file, err := e.parser.Parse(ctx, src.Name, src.Content)
	if err != nil {
		var perr *parser.ParseError
		if !errors.As(err, &perr) {
			result.Err = err

			e.logger.WarnContext(ctx, "file skipped", "file", src.Name, "error", err)

			return result, observability.StatusError
		}

		e.logger.WarnContext(ctx, "parse error", "file", src.Name, "line", perr.Line, "col", perr.Col, "error", perr.Msg)

		found := []check.Violation{parseViolation(perr)}
		kept := e.suppressions.Filter(found, nil)
		result.Violations = kept
		result.Suppressed = len(found) - len(kept)

		return result, observability.StatusParseError
	}

	w, err := e.plan.NewWalker(walker.WithLogger(e.logger))
	if err != nil {
		result.Err = err

		return result, observability.StatusError
	}

	found := w.Walk(walker.Input{
		File:     file.Name,
		Contents: file.Contents,
		Root:     file.Root,
		Comments: file.Comments,
	})

	var regions []suppress.Entry
	if e.commentRegions {
		regions = append(suppress.CommentRegions(file.Contents), suppress.NearbyComments(file.Contents)...)
	}

	tree := &suppress.Tree{Root: file.Root, Comments: file.Comments, Contents: file.Contents}
	kept := e.suppressions.Filter(found, tree, regions...)

	result.Violations = check.Normalize(kept)
	result.Suppressed = len(found) - len(kept)

	return result, observability.StatusOK
}

func (e *Engine) record(ctx context.Context, result FileResult, status string) {
	if e.metrics == nil {
		return
	}

	e.metrics.RecordFile(ctx, status, result.Duration)
	e.metrics.RecordSuppressed(ctx, result.Suppressed)

	for _, v := range result.Violations {
		e.metrics.RecordViolation(ctx, v.RuleID, v.Severity.String())

		if v.Key == check.KeyInternalError && len(v.Args) > 0 {
			e.metrics.RecordCheckFailure(ctx, fmt.Sprint(v.Args[0]))
		}
	}
}

func parseViolation(perr *parser.ParseError) check.Violation {
	args := []any{perr.Msg}

	return check.Violation{
		File:     perr.File,
		Line:     perr.Line,
		Col:      perr.Col,
		RuleID:   check.DispatcherID,
		Key:      check.KeyParseError,
		Args:     args,
		Message:  check.Render(nil, check.KeyParseError, args),
		Severity: check.SeverityError,
	}
}

// SortByFile orders violations by file name, then position.
func SortByFile(violations []check.Violation) {
	slices.SortStableFunc(violations, func(a, b check.Violation) int {
		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}

		return check.Compare(a, b)
	})
}
