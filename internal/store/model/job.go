package model

import "time"

// VerificationStatus tracks the optional job-verification sub-feature
// (ENABLE_JOB_VERIFICATION) that re-checks a posting is still live before
// it is surfaced in an export.
type VerificationStatus string

const (
	VerificationUnknown  VerificationStatus = "unknown"
	VerificationVerified VerificationStatus = "verified"
	VerificationStale    VerificationStatus = "stale"
)

// Job is one posting scoped to a company. Unique on (CompanyID, ExternalID).
type Job struct {
	ID                string
	CompanyID         string
	ExternalID        string
	Title             string
	Department        *string
	Location          *string
	Description       string
	JobURL            string
	PostingDate       *time.Time
	DiscoveredAt      time.Time
	LastSeenAt        time.Time
	IsActive          bool
	RelevanceScore    int
	MatchedCategory   string
	VerificationStatus VerificationStatus
}

// ChangeType enumerates the two JobChange transitions the pipeline records.
type ChangeType string

const (
	ChangeNew     ChangeType = "new"
	ChangeRemoved ChangeType = "removed"
)

// JobChange is an immutable record of one (new|removed) transition produced
// by a single run's change-detection stage.
type JobChange struct {
	ID        string
	JobID     string
	RunID     string
	Type      ChangeType
	ChangedAt time.Time
}
