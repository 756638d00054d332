// Package ports declares the Store contract that internal/store/postgres
// implements and that every consumer (orchestrator, atsdetect, enrichment)
// depends on instead of the concrete implementation.
package ports

import (
	"context"

	"github.com/mpetrova/hirescout/internal/store/model"
)

// ExportJobRow is the flat-per-job export projection: one row per active
// job with its owning company's fields denormalized onto it.
type ExportJobRow struct {
	CompanyName   string               `json:"company_name"`
	Domain        string               `json:"domain"`
	Website       string               `json:"website"`
	Industry      string               `json:"industry"`
	EmployeeCount *int                 `json:"employee_count"`
	UrgencyScore  int                  `json:"urgency_score"`
	JobTitle      string               `json:"job_title"`
	Department    string               `json:"department"`
	Location      string               `json:"location"`
	JobURL        string               `json:"job_url"`
	PostingDate   string               `json:"posting_date"`
	DecisionMaker *model.DecisionMaker `json:"decision_maker"`
}

// ExportCompanyGroup is the grouped export projection: one entry per
// company with all of its currently active jobs nested.
type ExportCompanyGroup struct {
	Company *model.Company
	Jobs    []*model.Job
	Maker   *model.DecisionMaker
}

// Statistics is the Store-wide summary the `status` CLI verb prints.
type Statistics struct {
	TotalCompanies     int
	RelevantCompanies  int
	TotalActiveJobs    int
	TotalDecisionMakers int
	TotalWithEmail      int
	ByATSProvider       map[model.ATSProvider]int
}

// Store is the durable persistence contract for every entity in the data
// model. Implementations must serialize writes (single-writer) and surface
// constraint violations as model.ErrConflict.
type Store interface {
	// UpsertCompany inserts c if its Domain is unseen, else updates
	// mutable fields. isNewOrResurfacing is true when the row's
	// LastCSVDate differed from today or the row did not exist.
	// FirstSeenDate is set on insert only.
	UpsertCompany(ctx context.Context, c *model.Company) (companyID string, isNewOrResurfacing bool, err error)
	GetCompanyByDomain(ctx context.Context, domain string) (*model.Company, error)
	GetCompanyByID(ctx context.Context, id string) (*model.Company, error)
	UpdateCompanyATS(ctx context.Context, companyID string, provider model.ATSProvider, token string) error
	UpdateCompanyEnrichment(ctx context.Context, companyID string, u model.EnrichmentUpdate) error
	UpdateCompanyUrgency(ctx context.Context, companyID string, score int) error

	// InsertJob is idempotent on (CompanyID, ExternalID): a matching
	// inactive row is reactivated rather than duplicated. A fresh insert
	// or reactivation writes the JobChange(new) row in the same
	// transaction as the jobs-row mutation.
	InsertJob(ctx context.Context, job *model.Job, companyID, runID string) (jobID string, err error)
	MarkJobInactive(ctx context.Context, jobID, runID string) error
	UpdateJobLastSeen(ctx context.Context, jobID string) error
	UpdateJobVerification(ctx context.Context, jobID string, status model.VerificationStatus) error
	ActiveJobsForCompany(ctx context.Context, companyID string) ([]*model.Job, error)

	// UpsertDecisionMaker writes the single current contact for a
	// company (conflict target CompanyID); fields present overwrite,
	// fields absent do not.
	UpsertDecisionMaker(ctx context.Context, dm *model.DecisionMaker) error
	GetDecisionMaker(ctx context.Context, companyID string) (*model.DecisionMaker, error)

	IsCompanySeen(ctx context.Context, domain string) (bool, error)
	MarkCompanySeen(ctx context.Context, s *model.SeenCompany) error
	ResetSeenCompanies(ctx context.Context) (int, error)

	CacheGet(ctx context.Context, domain string) (*model.ATSCacheEntry, error)
	CacheSet(ctx context.Context, entry *model.ATSCacheEntry) error
	CacheClearExpired(ctx context.Context) (int, error)

	InsertRunSnapshot(ctx context.Context, s *model.RunSnapshot) error

	CompaniesSortedByRecency(ctx context.Context, limit int) ([]*model.Company, error)
	TopByUrgency(ctx context.Context, limit int) ([]*model.Company, error)
	CompaniesForUpload(ctx context.Context, maxEmployees int) ([]*model.Company, error)
	Statistics(ctx context.Context) (*Statistics, error)

	ExportFlat(ctx context.Context, includeNonRelevant bool) ([]*ExportJobRow, error)
	ExportGrouped(ctx context.Context, includeNonRelevant bool) ([]*ExportCompanyGroup, error)
}
