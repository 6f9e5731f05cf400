// Package validator asks the network directory whether a canonical address
// has an account, collapsing errors and misses to "does not exist".
package validator

import (
	"context"
	"log/slog"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/logging"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/session"
)

// ReasonNotReady marks outcomes produced without contacting the network
// because the session was not ready.
const ReasonNotReady = "not_ready"

// ReasonLookupError marks outcomes where the directory query failed.
const ReasonLookupError = "lookup_error"

// Outcome is the tri-state validation result. Exists is authoritative only
// when Reason is empty; a non-empty Reason means the result is
// indeterminate and was collapsed to false. Collapsing unknown to false is
// a deliberate precision tradeoff: a flaky query under-reports existing
// accounts rather than aborting the batch.
type Outcome struct {
	Address string
	Exists  bool
	Reason  string
}

// Definitive reports whether the outcome came from an actual directory
// answer rather than a collapsed error.
func (o Outcome) Definitive() bool {
	return o.Reason == ""
}

// Validator resolves one address per call against the directory. It never
// retries; reconnection is the session manager's concern.
type Validator struct {
	directory session.Directory
	ready     func() bool
	logger    *slog.Logger
}

// Option configures the Validator.
type Option func(*Validator)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// New creates a Validator. ready gates network access: when it reports
// false the Validator fails fast instead of blocking on a dead connection.
func New(directory session.Directory, ready func() bool, opts ...Option) *Validator {
	v := &Validator{
		directory: directory,
		ready:     ready,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate produces exactly one outcome for the address.
func (v *Validator) Validate(ctx context.Context, address string) Outcome {
	if v.ready != nil && !v.ready() {
		return Outcome{Address: address, Exists: false, Reason: ReasonNotReady}
	}

	exists, err := v.directory.IsRegistered(ctx, address)
	if err != nil {
		v.logger.Warn("directory lookup failed", "address", address, "err", err)
		return Outcome{Address: address, Exists: false, Reason: ReasonLookupError}
	}

	return Outcome{Address: address, Exists: exists}
}
