package orchestrator

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/mpetrova/hirescout/internal/atsclients"
	"github.com/mpetrova/hirescout/internal/atsdetect"
	"github.com/mpetrova/hirescout/internal/enrichment"
	"github.com/mpetrova/hirescout/internal/platform/mailer"
	"github.com/mpetrova/hirescout/internal/relevance"
	"github.com/mpetrova/hirescout/internal/sources"
	"github.com/mpetrova/hirescout/internal/store/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAdapter yields a fixed candidate set regardless of dateFilter.
type fakeAdapter struct {
	candidates []sources.CompanyCandidate
}

func (f *fakeAdapter) FetchCandidates(dateFilter time.Time) ([]sources.CompanyCandidate, error) {
	return f.candidates, nil
}

// fakeDetector always resolves to one fixed result, per-domain overridable.
type fakeDetector struct {
	byDomain map[string]atsdetect.Result
	def      atsdetect.Result
}

func (f *fakeDetector) Detect(ctx context.Context, in atsdetect.Input) (atsdetect.Result, error) {
	if r, ok := f.byDomain[in.Domain]; ok {
		return r, nil
	}
	return f.def, nil
}

// allowAllRobots never blocks a fetch.
type allowAllRobots struct{}

func (allowAllRobots) CanFetch(ctx context.Context, rawURL string) bool { return true }

// denyAllRobots always blocks.
type denyAllRobots struct{}

func (denyAllRobots) CanFetch(ctx context.Context, rawURL string) bool { return false }

// fakeJobsClient returns a fixed posting list, ignoring provider/token.
type fakeJobsClient struct {
	postings []atsclients.JobPosting
}

func (f *fakeJobsClient) FetchJobs(ctx context.Context) ([]atsclients.JobPosting, error) {
	return f.postings, nil
}

func fixedJobsFactory(postings []atsclients.JobPosting) func(model.ATSProvider, string, *http.Client) (atsclients.Client, error) {
	return func(model.ATSProvider, string, *http.Client) (atsclients.Client, error) {
		return &fakeJobsClient{postings: postings}, nil
	}
}

func baseConfig() Config {
	return Config{
		RunDate:            time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC),
		RelevanceThreshold: 60,
		RoleProfile:        relevance.MarketingProfile,
	}
}

func newTestOrchestrator(store *fakeStore, candidates []sources.CompanyCandidate, detector Detector, robots CourtesyChecker, postings []atsclients.JobPosting) *Orchestrator {
	o := New(store, []sources.Adapter{&fakeAdapter{candidates: candidates}}, robots, detector, nil, nil, zap.NewNop())
	o.JobsClientFactory = fixedJobsFactory(postings)
	return o
}

func marketingCandidate(domain string) sources.CompanyCandidate {
	return sources.CompanyCandidate{
		Name:    "Acme " + domain,
		Domain:  domain,
		Website: "https://" + domain,
	}
}

// Scenario 1: a brand-new company with one relevant job yields a new
// Company row, one active Job, and one JobChange-worthy new count.
func TestRun_NewCompanyNewJob(t *testing.T) {
	store := newFakeStore()
	detector := &fakeDetector{def: atsdetect.Result{Provider: model.ATSGreenhouse, BoardToken: "acme"}}
	postings := []atsclients.JobPosting{
		{ExternalID: "job-1", Title: "Marketing Manager", Description: "own our growth marketing campaigns"},
	}
	o := newTestOrchestrator(store, []sources.CompanyCandidate{marketingCandidate("acme.com")}, detector, allowAllRobots{}, postings)

	summary, err := o.Run(context.Background(), baseConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CompaniesSeen)
	assert.Equal(t, 1, summary.TotalNewJobs)
	assert.Equal(t, 0, summary.TotalRemovedJobs)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, model.RunStatusOK, summary.Results[0].Status)

	company, err := store.GetCompanyByDomain(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.Equal(t, model.ATSGreenhouse, company.ATSProvider)
	assert.Equal(t, 1, company.UrgencyScore)

	active, _ := store.ActiveJobsForCompany(context.Background(), company.ID)
	require.Len(t, active, 1)
	assert.Equal(t, "job-1", active[0].ExternalID)
}

// Scenario 2: a job present in a prior run but absent from the current
// fetch is marked inactive and counted as removed.
func TestRun_JobRemoval(t *testing.T) {
	store := newFakeStore()
	detector := &fakeDetector{def: atsdetect.Result{Provider: model.ATSGreenhouse, BoardToken: "acme"}}

	firstPostings := []atsclients.JobPosting{
		{ExternalID: "job-1", Title: "Marketing Manager", Description: "growth marketing"},
	}
	o := newTestOrchestrator(store, []sources.CompanyCandidate{marketingCandidate("acme.com")}, detector, allowAllRobots{}, firstPostings)
	_, err := o.Run(context.Background(), baseConfig())
	require.NoError(t, err)

	// second run: the prior job no longer appears.
	store.seen = make(map[string]bool) // allow re-processing the same domain
	o.JobsClientFactory = fixedJobsFactory(nil)
	summary, err := o.Run(context.Background(), baseConfig())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalNewJobs)
	assert.Equal(t, 1, summary.TotalRemovedJobs)

	company, _ := store.GetCompanyByDomain(context.Background(), "acme.com")
	active, _ := store.ActiveJobsForCompany(context.Background(), company.ID)
	assert.Len(t, active, 0)
}

// Scenario 3: a job that was removed then reappears in a later run is
// reactivated as a distinct "new" event rather than silently ignored.
func TestRun_JobReactivation(t *testing.T) {
	store := newFakeStore()
	detector := &fakeDetector{def: atsdetect.Result{Provider: model.ATSGreenhouse, BoardToken: "acme"}}
	posting := atsclients.JobPosting{ExternalID: "job-1", Title: "Marketing Manager", Description: "growth marketing"}

	o := newTestOrchestrator(store, []sources.CompanyCandidate{marketingCandidate("acme.com")}, detector, allowAllRobots{}, []atsclients.JobPosting{posting})
	_, err := o.Run(context.Background(), baseConfig())
	require.NoError(t, err)

	store.seen = make(map[string]bool)
	o.JobsClientFactory = fixedJobsFactory(nil)
	_, err = o.Run(context.Background(), baseConfig())
	require.NoError(t, err)

	store.seen = make(map[string]bool)
	o.JobsClientFactory = fixedJobsFactory([]atsclients.JobPosting{posting})
	summary, err := o.Run(context.Background(), baseConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalNewJobs)
	assert.Equal(t, 0, summary.TotalRemovedJobs)

	company, _ := store.GetCompanyByDomain(context.Background(), "acme.com")
	active, _ := store.ActiveJobsForCompany(context.Background(), company.ID)
	require.Len(t, active, 1)
	assert.True(t, active[0].IsActive)
}

// Scenario 4: an excluded title (engineering) never becomes a Job row even
// though the company and ATS resolve cleanly.
func TestRun_ExclusionFiltersJobOut(t *testing.T) {
	store := newFakeStore()
	detector := &fakeDetector{def: atsdetect.Result{Provider: model.ATSGreenhouse, BoardToken: "acme"}}
	postings := []atsclients.JobPosting{
		{ExternalID: "job-1", Title: "Marketing Software Engineer", Description: "build our marketing automation platform"},
	}
	o := newTestOrchestrator(store, []sources.CompanyCandidate{marketingCandidate("acme.com")}, detector, allowAllRobots{}, postings)

	summary, err := o.Run(context.Background(), baseConfig())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalNewJobs)
	company, _ := store.GetCompanyByDomain(context.Background(), "acme.com")
	active, _ := store.ActiveJobsForCompany(context.Background(), company.ID)
	assert.Len(t, active, 0)
}

// A robots.txt disallow stops the pipeline before any job fetch at all;
// the company row exists but is flagged "blocked".
func TestRun_RobotsBlocksCompany(t *testing.T) {
	store := newFakeStore()
	detector := &fakeDetector{def: atsdetect.Result{Provider: model.ATSGreenhouse, BoardToken: "acme"}}
	o := newTestOrchestrator(store, []sources.CompanyCandidate{marketingCandidate("acme.com")}, detector, denyAllRobots{}, nil)

	summary, err := o.Run(context.Background(), baseConfig())
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	assert.Equal(t, model.RunStatusBlocked, summary.Results[0].Status)
}

// Scenario 6: enrichment refusal is preserved verbatim — no DecisionMaker
// row is written, and the reason survives for the operator to read.
func TestRunEnrichment_PreservesRefusal(t *testing.T) {
	store := newFakeStore()
	store.companiesByID["1"] = &model.Company{ID: "1", Domain: "acme.com", Name: "Acme", Website: "https://acme.com"}
	store.companiesByDomain["acme.com"] = store.companiesByID["1"]

	finder := &stubDecisionMakerFinder{
		results: []enrichment.DecisionMakerResult{
			{CompanyName: "Acme", PersonName: "", NotFoundReason: "no named executive found in any source"},
		},
	}
	o := &Orchestrator{Store: store, DecisionMakerFinder: finder, Logger: zap.NewNop()}

	err := o.runEnrichment(context.Background(), Config{EnableDecisionMakers: true, EnrichmentSelectBy: EnrichByRecency})
	require.NoError(t, err)

	_, err = store.GetDecisionMaker(context.Background(), "1")
	assert.ErrorIs(t, err, model.ErrDecisionMakerNotFound)
}

// An unknown or linkedin-only ATS provider skips the fetch-jobs stage
// entirely rather than erroring.
func TestRun_NoATSSkipsFetch(t *testing.T) {
	store := newFakeStore()
	detector := &fakeDetector{def: atsdetect.Result{Provider: model.ATSUnknown}}
	o := newTestOrchestrator(store, []sources.CompanyCandidate{marketingCandidate("acme.com")}, detector, allowAllRobots{}, nil)

	summary, err := o.Run(context.Background(), baseConfig())
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, model.RunStatusNoATS, summary.Results[0].Status)
}

type stubDecisionMakerFinder struct {
	results []enrichment.DecisionMakerResult
}

func (s *stubDecisionMakerFinder) Find(ctx context.Context, companies []enrichment.CompanyInput, priority enrichment.RolePriority) ([]enrichment.DecisionMakerResult, error) {
	return s.results, nil
}

func TestRun_SendsDigestAfterCompletion(t *testing.T) {
	store := newFakeStore()
	detector := &fakeDetector{def: atsdetect.Result{Provider: model.ATSGreenhouse, BoardToken: "acme"}}
	postings := []atsclients.JobPosting{
		{ExternalID: "job-1", Title: "Marketing Manager", Description: "growth marketing"},
	}
	o := newTestOrchestrator(store, []sources.CompanyCandidate{marketingCandidate("acme.com")}, detector, allowAllRobots{}, postings)
	digester := &countingDigester{}
	o.Mailer = digester

	_, err := o.Run(context.Background(), baseConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, digester.calls)
}

type countingDigester struct {
	calls int
}

func (c *countingDigester) SendDigest(d mailer.Digest) error {
	c.calls++
	return nil
}
