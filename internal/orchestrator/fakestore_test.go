package orchestrator

import (
	"context"
	"sort"

	"github.com/mpetrova/hirescout/internal/store/model"
	"github.com/mpetrova/hirescout/internal/store/ports"
)

// fakeStore is an in-memory ports.Store for orchestrator tests, keyed the
// way the postgres implementation is: companies by domain, jobs by
// (companyID, externalID).
type fakeStore struct {
	companiesByDomain map[string]*model.Company
	companiesByID     map[string]*model.Company
	jobs              map[string]*model.Job // keyed by jobID
	seen              map[string]bool
	decisionMakers    map[string]*model.DecisionMaker // keyed by companyID
	snapshots         []*model.RunSnapshot
	nextID            int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		companiesByDomain: make(map[string]*model.Company),
		companiesByID:     make(map[string]*model.Company),
		jobs:              make(map[string]*model.Job),
		seen:              make(map[string]bool),
		decisionMakers:    make(map[string]*model.DecisionMaker),
	}
}

func (f *fakeStore) genID() string {
	f.nextID++
	return itoa(f.nextID)
}

func itoa(n int) string {
	digits := "0123456789"
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{digits[n%10]}, b...)
		n /= 10
	}
	return string(b)
}

func (f *fakeStore) UpsertCompany(ctx context.Context, c *model.Company) (string, bool, error) {
	existing, ok := f.companiesByDomain[c.Domain]
	if !ok {
		c.ID = f.genID()
		f.companiesByDomain[c.Domain] = c
		f.companiesByID[c.ID] = c
		return c.ID, true, nil
	}
	existing.Name = c.Name
	existing.Website = c.Website
	existing.Industry = c.Industry
	existing.EmployeeCount = c.EmployeeCount
	existing.LastCSVDate = c.LastCSVDate
	existing.CurrentRunID = c.CurrentRunID
	return existing.ID, false, nil
}

func (f *fakeStore) GetCompanyByDomain(ctx context.Context, domain string) (*model.Company, error) {
	c, ok := f.companiesByDomain[domain]
	if !ok {
		return nil, model.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeStore) GetCompanyByID(ctx context.Context, id string) (*model.Company, error) {
	c, ok := f.companiesByID[id]
	if !ok {
		return nil, model.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeStore) UpdateCompanyATS(ctx context.Context, companyID string, provider model.ATSProvider, token string) error {
	c, ok := f.companiesByID[companyID]
	if !ok {
		return model.ErrCompanyNotFound
	}
	c.ATSProvider = provider
	c.ATSBoardToken = token
	return nil
}

func (f *fakeStore) UpdateCompanyEnrichment(ctx context.Context, companyID string, u model.EnrichmentUpdate) error {
	c, ok := f.companiesByID[companyID]
	if !ok {
		return model.ErrCompanyNotFound
	}
	if u.Industry != nil {
		c.Industry = u.Industry
	}
	if u.EmployeeCount != nil {
		c.EmployeeCount = u.EmployeeCount
	}
	return nil
}

func (f *fakeStore) UpdateCompanyUrgency(ctx context.Context, companyID string, score int) error {
	c, ok := f.companiesByID[companyID]
	if !ok {
		return model.ErrCompanyNotFound
	}
	c.UrgencyScore = score
	return nil
}

func (f *fakeStore) InsertJob(ctx context.Context, job *model.Job, companyID, runID string) (string, error) {
	for _, j := range f.jobs {
		if j.CompanyID == companyID && j.ExternalID == job.ExternalID {
			j.Title = job.Title
			j.Department = job.Department
			j.Location = job.Location
			j.Description = job.Description
			j.JobURL = job.JobURL
			j.PostingDate = job.PostingDate
			j.IsActive = true
			j.RelevanceScore = job.RelevanceScore
			j.MatchedCategory = job.MatchedCategory
			return j.ID, nil
		}
	}
	job.ID = f.genID()
	job.CompanyID = companyID
	job.IsActive = true
	f.jobs[job.ID] = job
	return job.ID, nil
}

func (f *fakeStore) MarkJobInactive(ctx context.Context, jobID, runID string) error {
	j, ok := f.jobs[jobID]
	if !ok {
		return model.ErrJobNotFound
	}
	j.IsActive = false
	return nil
}

func (f *fakeStore) UpdateJobLastSeen(ctx context.Context, jobID string) error {
	if _, ok := f.jobs[jobID]; !ok {
		return model.ErrJobNotFound
	}
	return nil
}

func (f *fakeStore) UpdateJobVerification(ctx context.Context, jobID string, status model.VerificationStatus) error {
	j, ok := f.jobs[jobID]
	if !ok {
		return model.ErrJobNotFound
	}
	j.VerificationStatus = status
	return nil
}

func (f *fakeStore) ActiveJobsForCompany(ctx context.Context, companyID string) ([]*model.Job, error) {
	var out []*model.Job
	for _, j := range f.jobs {
		if j.CompanyID == companyID && j.IsActive {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ExternalID < out[k].ExternalID })
	return out, nil
}

func (f *fakeStore) UpsertDecisionMaker(ctx context.Context, dm *model.DecisionMaker) error {
	if dm.ID == "" {
		dm.ID = f.genID()
	}
	f.decisionMakers[dm.CompanyID] = dm
	return nil
}

func (f *fakeStore) GetDecisionMaker(ctx context.Context, companyID string) (*model.DecisionMaker, error) {
	dm, ok := f.decisionMakers[companyID]
	if !ok {
		return nil, model.ErrDecisionMakerNotFound
	}
	return dm, nil
}

func (f *fakeStore) IsCompanySeen(ctx context.Context, domain string) (bool, error) {
	return f.seen[domain], nil
}

func (f *fakeStore) MarkCompanySeen(ctx context.Context, s *model.SeenCompany) error {
	f.seen[s.Domain] = true
	return nil
}

func (f *fakeStore) ResetSeenCompanies(ctx context.Context) (int, error) {
	n := len(f.seen)
	f.seen = make(map[string]bool)
	return n, nil
}

func (f *fakeStore) CacheGet(ctx context.Context, domain string) (*model.ATSCacheEntry, error) {
	return nil, nil
}

func (f *fakeStore) CacheSet(ctx context.Context, entry *model.ATSCacheEntry) error {
	return nil
}

func (f *fakeStore) CacheClearExpired(ctx context.Context) (int, error) {
	return 0, nil
}

func (f *fakeStore) InsertRunSnapshot(ctx context.Context, s *model.RunSnapshot) error {
	f.snapshots = append(f.snapshots, s)
	return nil
}

func (f *fakeStore) CompaniesSortedByRecency(ctx context.Context, limit int) ([]*model.Company, error) {
	return f.allCompanies(limit), nil
}

func (f *fakeStore) TopByUrgency(ctx context.Context, limit int) ([]*model.Company, error) {
	out := f.allCompanies(0)
	sort.Slice(out, func(i, k int) bool { return out[i].UrgencyScore > out[k].UrgencyScore })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) CompaniesForUpload(ctx context.Context, maxEmployees int) ([]*model.Company, error) {
	return f.allCompanies(0), nil
}

func (f *fakeStore) Statistics(ctx context.Context) (*ports.Statistics, error) {
	return &ports.Statistics{ByATSProvider: make(map[model.ATSProvider]int)}, nil
}

func (f *fakeStore) ExportFlat(ctx context.Context, includeNonRelevant bool) ([]*ports.ExportJobRow, error) {
	return nil, nil
}

func (f *fakeStore) ExportGrouped(ctx context.Context, includeNonRelevant bool) ([]*ports.ExportCompanyGroup, error) {
	return nil, nil
}

func (f *fakeStore) allCompanies(limit int) []*model.Company {
	var out []*model.Company
	for _, c := range f.companiesByID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Domain < out[k].Domain })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

var _ ports.Store = (*fakeStore)(nil)
