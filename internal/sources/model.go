// Package sources implements the three SourceAdapters of spec §4.7:
// CuratedCSVAdapter, RepositoryListingAdapter, and AggregatorSearchAdapter.
// Each shares the FetchCandidates(dateFilter) contract.
package sources

import "time"

// CompanyCandidate is one row a SourceAdapter yields, at minimum a name and
// domain; everything else is best-effort.
type CompanyCandidate struct {
	Name          string
	Domain        string
	Website       string
	Industry      string
	Keywords      []string
	EmployeeCount *int
	JobListings   []JobListing
	CollateralText string // extracted text from an optional PDF/DOCX fact sheet
}

// JobListing is a pre-extracted job posting carried by a source that scrapes
// listings directly rather than deferring to ATSClients.
type JobListing struct {
	Title       string
	URL         string
	Location    string
	WorkModel   string
	PostingDate time.Time
}

// Adapter is the common SourceAdapter contract of spec §4.7.
type Adapter interface {
	FetchCandidates(dateFilter time.Time) ([]CompanyCandidate, error)
}
