// Package httpclient provides the timeout-configured *http.Client shared
// across ATS probing, careers-path sweeps, and source adapters, mirroring
// the teacher's practice of constructing one narrowly-scoped client per
// concern rather than using http.DefaultClient.
package httpclient

import (
	"net/http"
	"time"
)

// New returns an *http.Client with the given timeout and no redirect
// following disabled (redirects are followed by default, which the
// careers-path sweep relies on to observe the final URL).
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Durations used across the pipeline per spec §5's per-call timeout table.
const (
	ATSProbeTimeout    = 3 * time.Second
	CareersFetchTimeout = 5 * time.Second
	ATSJobsTimeout     = 15 * time.Second
	EnrichmentTimeout  = 30 * time.Second
)
