package model

import "time"

// SeenCompany is the append-only cross-run idempotency marker: a domain
// present here is skipped before any network work on its behalf. Reset
// truncates this table to force reprocessing.
type SeenCompany struct {
	Domain      string
	CompanyName string
	SourceDate  time.Time
	RunID       string
}
