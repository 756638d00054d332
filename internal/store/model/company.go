package model

import "time"

// ATSProvider identifies the applicant tracking system backing a company's
// careers page, "linkedin_only" when only a LinkedIn presence was found, or
// the empty string when detection found nothing at all.
type ATSProvider string

const (
	ATSGreenhouse      ATSProvider = "greenhouse"
	ATSLever           ATSProvider = "lever"
	ATSAshby           ATSProvider = "ashby"
	ATSWorkable        ATSProvider = "workable"
	ATSJobvite         ATSProvider = "jobvite"
	ATSSmartRecruiters ATSProvider = "smartrecruiters"
	ATSRecruitee       ATSProvider = "recruitee"
	ATSBreezyHR        ATSProvider = "breezyhr"
	ATSPersonio        ATSProvider = "personio"
	ATSLinkedInOnly    ATSProvider = "linkedin_only"
	ATSUnknown         ATSProvider = ""
)

// Company is a tracked employer, identified uniquely by its normalized
// domain. See Store.UpsertCompany for the insert-vs-update split.
type Company struct {
	ID             string
	Domain         string // normalized: lowercased, "www." stripped
	Name           string
	Website        string
	Industry       *string
	EmployeeCount  *int
	ATSProvider    ATSProvider
	ATSBoardToken  string
	FirstSeenDate  time.Time
	LastCSVDate    time.Time
	CurrentRunID   string
	UrgencyScore   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EnrichmentUpdate carries the subset of decision-maker-adjacent fields that
// UpdateCompanyEnrichment may set; a nil field leaves the stored value
// untouched.
type EnrichmentUpdate struct {
	Industry      *string
	EmployeeCount *int
}
