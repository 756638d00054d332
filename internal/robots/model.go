// Package robots implements the robots.txt courtesy-check gate of spec
// §4.5 stage 4: before any homepage or careers-path fetch, the orchestrator
// asks Checker.CanFetch so a site that disallows automated access is
// skipped rather than scraped anyway.
package robots

import "time"

// UserAgent is the token this module identifies itself as in robots.txt
// group matching, mirroring the original's "MarketingJobDiscovery".
const UserAgent = "hirescout"

// DefaultCacheTTL matches the original checker's 24-hour per-domain cache.
const DefaultCacheTTL = 24 * time.Hour

// FailureCacheTTL is the shorter TTL used when a robots.txt fetch fails, so
// a transient outage doesn't lock out a domain for a full day.
const FailureCacheTTL = 1 * time.Hour

type cacheEntry struct {
	doc       *document
	expiresAt time.Time
}
