// Package errs defines the error taxonomy shared by ATS clients, the
// detection engine, the enrichment pipeline, and the orchestrator. Every
// component wraps the errors it raises with one of these kinds so the
// orchestrator can classify a failure with errors.Is/errors.As without
// depending on any one component's internal error types.
package errs

import (
	"errors"
	"fmt"
)

// Kind is one taxonomy entry from the error-handling design.
type Kind string

const (
	// Transient covers 5xx, connection reset, DNS temporary failure, 429.
	// Retried with backoff inside enrichers; elsewhere the pipeline
	// records the company as failed and continues.
	Transient Kind = "transient"

	// NotFound covers a 404 from an ATS API: a normal empty result, not
	// an error condition at all, but classified for completeness.
	NotFound Kind = "not_found"

	// PolicyRefused covers robots.txt disallow or a detected CAPTCHA.
	// Recorded as status=blocked and skipped; never retried in the same
	// run.
	PolicyRefused Kind = "policy_refused"

	// ParseFailed covers malformed JSON/XML/HTML from a provider.
	// Recorded and the run continues; change detection treats it as "no
	// fetched jobs" only when explicitly opted into that interpretation
	// (see orchestrator.go — this implementation does not).
	ParseFailed Kind = "parse_failed"

	// ModelRefused covers an LLM returning the "not confidently
	// identifiable" sentinel. Stored as a not-found reason, not an
	// error.
	ModelRefused Kind = "model_refused"

	// Programmer covers invalid configuration or a missing required API
	// key. Fails fast before the pipeline begins.
	Programmer Kind = "programmer"

	// Cancelled covers a user interrupt. The pipeline commits whatever
	// is durable and exits non-zero.
	Cancelled Kind = "cancelled"
)

// Error wraps an underlying error with a taxonomy Kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with kind and an operation label. Returns nil if err is
// nil, so it composes at call sites as `return errs.New(..., err)`.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err (or anything it wraps) was tagged with kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
