// Package runner drives the validate-and-record loop: one input line at a
// time through format -> validate -> append, strictly sequential so output
// order always matches input order on the single shared connection.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/cache"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/format"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/logging"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/metrics"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/sink"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/validator"
)

// Session is the slice of the session manager the runner needs: a one-shot
// readiness wait before the first line.
type Session interface {
	AwaitReady(ctx context.Context) error
}

// Progress is invoked once per processed (non-skipped) line.
type Progress func(index int, out validator.Outcome)

// Runner orchestrates one batch run. The connection handle stays with the
// session manager; the runner only observes readiness and issues
// validations through the Validator.
type Runner struct {
	formatter *format.Formatter
	validator *validator.Validator
	logger    *slog.Logger
	cache     *cache.Store
	metrics   *metrics.Metrics
	progress  Progress
}

// Option configures the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithCache enables the outcome cache. Cache failures degrade to misses.
func WithCache(store *cache.Store) Option {
	return func(r *Runner) {
		r.cache = store
	}
}

// WithMetrics enables outcome counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithProgress registers a per-record progress callback.
func WithProgress(p Progress) Option {
	return func(r *Runner) {
		r.progress = p
	}
}

// New creates a Runner.
func New(formatter *format.Formatter, v *validator.Validator, opts ...Option) *Runner {
	r := &Runner{
		formatter: formatter,
		validator: v,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run blocks until the session is ready, then consumes input line by line,
// appending one record per validated number to out. Per-line failures never
// abort the batch; only readiness failure, input read errors, and sink
// write errors do. The returned records are in input order.
func (r *Runner) Run(ctx context.Context, sess Session, input io.Reader, out *sink.Writer) ([]sink.Record, error) {
	if err := sess.AwaitReady(ctx); err != nil {
		return nil, fmt.Errorf("session never became ready: %w", err)
	}

	var records []sink.Record
	index := 0

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		address := r.formatter.Format(line)
		if address == "" {
			// Consumed but unformattable: no record row either way.
			r.logger.Warn("skipping line with no digits", "line", line)
			continue
		}

		outcome := r.resolve(ctx, address)

		rec := sink.Record{Address: outcome.Address, Exists: outcome.Exists}
		if err := out.Append(rec); err != nil {
			return records, fmt.Errorf("failed to record result: %w", err)
		}
		records = append(records, rec)

		r.logger.Info("number validated",
			"phone", outcome.Address,
			"exists", outcome.Exists,
			"reason", outcome.Reason,
		)
		if r.metrics != nil {
			r.metrics.ObserveOutcome(outcome.Exists, outcome.Definitive())
		}
		if r.progress != nil {
			r.progress(index, outcome)
		}
		index++
	}

	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("failed to read input: %w", err)
	}
	return records, nil
}

// resolve consults the cache before the network and stores definitive
// answers back. Exactly one outcome per address either way.
func (r *Runner) resolve(ctx context.Context, address string) validator.Outcome {
	if r.cache != nil {
		exists, found, err := r.cache.Get(ctx, address)
		if err != nil {
			r.logger.Warn("cache lookup failed", "address", address, "err", err)
		} else if found {
			return validator.Outcome{Address: address, Exists: exists}
		}
	}

	outcome := r.validator.Validate(ctx, address)

	if r.cache != nil && outcome.Definitive() {
		if err := r.cache.Put(ctx, address, outcome.Exists); err != nil {
			r.logger.Warn("cache write failed", "address", address, "err", err)
		}
	}
	return outcome
}
