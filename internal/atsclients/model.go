// Package atsclients implements one client per supported ATS family,
// fetching the current job list for a (provider, board token) and
// normalizing it to a uniform JobPosting shape, per spec §4.4.
package atsclients

import (
	"context"
	"time"
)

// JobPosting is the uniform shape every provider client normalizes to.
type JobPosting struct {
	ExternalID  string
	Title       string
	Department  string
	Location    string
	Description string
	JobURL      string
	PostingDate *time.Time
}

// Client fetches the current job list for one (provider, board token)
// pair. A 404 is a normal empty result (nil, nil), not an error; rate
// limit and server errors propagate wrapped in internal/errs.
type Client interface {
	FetchJobs(ctx context.Context) ([]JobPosting, error)
}
