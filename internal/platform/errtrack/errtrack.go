// Package errtrack reports fatal and programmer-kind errors to Sentry,
// the way the teacher's go.mod declares sentry-go/sentry-go-gin for a
// web-server error middleware that this module has no HTTP surface to
// host (spec.md §1 Non-goals) — here it backs the CLI's fatal-error path
// instead of a gin middleware.
package errtrack

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

// Init configures the global Sentry client. A blank dsn makes every
// subsequent Capture* call a no-op, so callers do not need to branch on
// whether Sentry is configured.
func Init(dsn, environment string) error {
	return sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
}

// CaptureError reports err with op as a tag, for the Programmer/fatal
// error kinds in spec.md §7's taxonomy that abort the pipeline.
func CaptureError(err error, op string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("op", op)
		sentry.CaptureException(err)
	})
}

// Flush blocks until buffered events are sent or timeout elapses; call
// before process exit so a fatal error's report is not lost.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// CaptureCompanyFailure reports a per-company pipeline failure with the
// company's domain attached, for the Transient/ParseFailed kinds that
// don't abort the run but are still worth surfacing in aggregate.
func CaptureCompanyFailure(ctx context.Context, domain string, err error) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("domain", domain)
		sentry.CaptureException(err)
	})
}
