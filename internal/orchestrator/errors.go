package orchestrator

import "errors"

// ErrCancelled is returned by Run when ctx is cancelled between companies;
// whatever companies completed before cancellation are already durable.
var ErrCancelled = errors.New("orchestrator: run cancelled")
