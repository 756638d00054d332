package model

import "time"

// ATSCacheEntry memoizes an ATSDetectionEngine result for Domain so repeat
// runs within TTL skip the network entirely. Identity is Domain; an entry
// with ExpiresAt in the past is treated as absent and is physically deleted
// on the next CacheGet.
type ATSCacheEntry struct {
	Domain      string
	ATSProvider ATSProvider
	BoardToken  string
	DetectedAt  time.Time
	ExpiresAt   time.Time
}

// DetectionTTL is the cache lifetime for a successful ATS detection,
// including a linkedin_only result, per spec §4.3.7.
const DetectionTTL = 7 * 24 * time.Hour
