package errtrack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_BlankDSNIsANoOp(t *testing.T) {
	require.NoError(t, Init("", "test"))
	// With no DSN, Capture* must not panic and Flush must return promptly.
	CaptureError(errors.New("boom"), "test.op")
	CaptureCompanyFailure(context.Background(), "acme.com", errors.New("boom"))
	assert.True(t, Flush(100*time.Millisecond))
}

func TestCaptureError_NilErrIsANoOp(t *testing.T) {
	require.NoError(t, Init("", "test"))
	CaptureError(nil, "test.op")
}
