package orchestrator

import (
	"context"
	"net/http"
	"time"

	"github.com/mpetrova/hirescout/internal/atsclients"
	"github.com/mpetrova/hirescout/internal/atsdetect"
	"github.com/mpetrova/hirescout/internal/platform/errtrack"
	"github.com/mpetrova/hirescout/internal/platform/httpclient"
	"github.com/mpetrova/hirescout/internal/platform/mailer"
	"github.com/mpetrova/hirescout/internal/relevance"
	"github.com/mpetrova/hirescout/internal/sources"
	"github.com/mpetrova/hirescout/internal/store/model"
	"github.com/mpetrova/hirescout/internal/store/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Orchestrator wires every stage of the pipeline behind one entry point,
// in the teacher's NewXxxService(repo1, repo2, ...) style (see
// application_service.go) generalized from "one repo per related entity"
// to "one collaborator per pipeline stage".
type Orchestrator struct {
	Store               ports.Store
	Sources             []sources.Adapter
	Robots              CourtesyChecker
	ATSEngine           Detector
	JobsHTTPClient      *http.Client
	JobsClientFactory   func(provider model.ATSProvider, token string, httpClient *http.Client) (atsclients.Client, error)
	DecisionMakerFinder DecisionMakerFinder
	EmailFinder         EmailFinder
	Mailer              Digester
	Logger              *zap.Logger
}

// New wires an Orchestrator from its collaborators. DecisionMakerFinder and
// EmailFinder may be nil; the enrichment pass is then a no-op regardless of
// Config's enable flags.
func New(store ports.Store, srcs []sources.Adapter, robotsChecker CourtesyChecker, atsEngine Detector, dmFinder DecisionMakerFinder, emailFinder EmailFinder, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		Store:               store,
		Sources:             srcs,
		Robots:              robotsChecker,
		ATSEngine:           atsEngine,
		JobsHTTPClient:      httpclient.New(httpclient.ATSJobsTimeout),
		JobsClientFactory:   atsclients.NewClient,
		DecisionMakerFinder: dmFinder,
		EmailFinder:         emailFinder,
		Logger:              logger,
	}
}

// Run executes the full pipeline once, per spec §4.5. A cancelled ctx stops
// the loop between companies; whatever completed before that remains
// durable and is reflected in the returned Summary alongside ErrCancelled.
func (o *Orchestrator) Run(ctx context.Context, cfg Config) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	scorer := relevance.New(cfg.RoleProfile, cfg.RelevanceThreshold)

	summary := &Summary{
		RunID:      runID,
		RunDate:    cfg.RunDate,
		ByProvider: make(map[model.ATSProvider]int),
	}

	candidates, err := o.ingest(cfg.RunDate)
	if err != nil {
		return summary, err
	}

	var cancelled bool
	relevantProcessed := 0

	for i, candidate := range candidates {
		if candidate.Domain == "" {
			continue
		}
		if cfg.MaxJobs > 0 && relevantProcessed >= cfg.MaxJobs {
			o.Logger.Info("orchestrator: max_jobs budget reached, stopping admission of new companies",
				zap.Int("max_jobs", cfg.MaxJobs))
			break
		}

		summary.CompaniesSeen++
		result := o.processCompany(ctx, runID, cfg, scorer, candidate)
		summary.Results = append(summary.Results, result)
		summary.TotalNewJobs += result.NewJobs
		summary.TotalRemovedJobs += result.RemovedJobs
		relevantProcessed += result.JobsFound
		if result.Status == model.RunStatusSkippedSeen {
			summary.CompaniesSkipped++
		}

		if ctx.Err() != nil {
			cancelled = true
			break
		}
		if i < len(candidates)-1 {
			if !o.sleep(ctx, cfg.DelayBetweenCompanies) {
				cancelled = true
				break
			}
		}
	}

	if !cancelled && (cfg.EnableDecisionMakers || cfg.EnableEmailLookup) && !cfg.DryRun {
		summary.EnrichmentRun = true
		summary.EnrichmentErr = o.runEnrichment(ctx, cfg)
	}

	summary.Duration = time.Since(start)

	if o.Mailer != nil {
		if err := o.Mailer.SendDigest(mailer.Digest{
			RunID:            summary.RunID,
			CompaniesSeen:    summary.CompaniesSeen,
			CompaniesSkipped: summary.CompaniesSkipped,
			TotalNewJobs:     summary.TotalNewJobs,
			TotalRemovedJobs: summary.TotalRemovedJobs,
			EnrichmentRun:    summary.EnrichmentRun,
			Duration:         summary.Duration.String(),
		}); err != nil {
			o.Logger.Warn("orchestrator: SendDigest failed", zap.Error(err))
		}
	}

	if cancelled {
		return summary, ErrCancelled
	}
	return summary, nil
}

// ingest loads and flattens every configured SourceAdapter's candidates for
// the given date filter (spec §4.5 stage 1).
func (o *Orchestrator) ingest(dateFilter time.Time) ([]sources.CompanyCandidate, error) {
	var all []sources.CompanyCandidate
	for _, src := range o.Sources {
		candidates, err := src.FetchCandidates(dateFilter)
		if err != nil {
			o.Logger.Warn("orchestrator: source adapter failed", zap.Error(err))
			continue
		}
		all = append(all, candidates...)
	}
	return all, nil
}

// processCompany runs stages 2-9 for one candidate and persists one
// RunSnapshot row, successful or not.
func (o *Orchestrator) processCompany(ctx context.Context, runID string, cfg Config, scorer *relevance.Scorer, candidate sources.CompanyCandidate) CompanyResult {
	result := CompanyResult{Domain: candidate.Domain}

	seen, err := o.Store.IsCompanySeen(ctx, candidate.Domain)
	if err != nil {
		o.Logger.Warn("orchestrator: IsCompanySeen failed", zap.String("domain", candidate.Domain), zap.Error(err))
	}
	if seen {
		result.Status = model.RunStatusSkippedSeen
		return result
	}

	website := candidate.Website
	if website == "" {
		website = "https://" + candidate.Domain
	}

	company := &model.Company{
		Domain:       candidate.Domain,
		Name:         candidate.Name,
		Website:      website,
		Industry:     ptrOrNil(candidate.Industry),
		EmployeeCount: candidate.EmployeeCount,
		LastCSVDate:  cfg.RunDate,
		CurrentRunID: runID,
	}

	var companyID string
	if !cfg.DryRun {
		companyID, _, err = o.Store.UpsertCompany(ctx, company)
		if err != nil {
			result.Status = model.RunStatusFetchError
			result.Err = err
			o.writeSnapshot(ctx, runID, cfg, "", result)
			return result
		}
		if err := o.Store.MarkCompanySeen(ctx, &model.SeenCompany{
			Domain: candidate.Domain, CompanyName: candidate.Name, SourceDate: cfg.RunDate, RunID: runID,
		}); err != nil {
			o.Logger.Warn("orchestrator: MarkCompanySeen failed", zap.String("domain", candidate.Domain), zap.Error(err))
		}
	}

	if !o.Robots.CanFetch(ctx, website) {
		result.Status = model.RunStatusBlocked
		o.writeSnapshot(ctx, runID, cfg, companyID, result)
		return result
	}

	detection, err := o.ATSEngine.Detect(ctx, atsdetect.Input{
		CompanyName:      candidate.Name,
		Domain:           candidate.Domain,
		TechnologiesHint: candidate.Keywords,
	})
	if err != nil {
		result.Status = model.RunStatusFetchError
		result.Err = err
		o.writeSnapshot(ctx, runID, cfg, companyID, result)
		return result
	}

	if !cfg.DryRun && companyID != "" {
		if err := o.Store.UpdateCompanyATS(ctx, companyID, detection.Provider, detection.BoardToken); err != nil {
			o.Logger.Warn("orchestrator: UpdateCompanyATS failed", zap.String("domain", candidate.Domain), zap.Error(err))
		}
	}

	if detection.Provider == model.ATSUnknown || detection.Provider == model.ATSLinkedInOnly {
		result.Status = model.RunStatusNoATS
		o.writeSnapshot(ctx, runID, cfg, companyID, result)
		return result
	}

	client, err := o.JobsClientFactory(detection.Provider, detection.BoardToken, o.JobsHTTPClient)
	if err != nil {
		result.Status = model.RunStatusFetchError
		result.Err = err
		o.writeSnapshot(ctx, runID, cfg, companyID, result)
		return result
	}

	postings, err := client.FetchJobs(ctx)
	if err != nil {
		result.Status = model.RunStatusFetchError
		result.Err = err
		o.writeSnapshot(ctx, runID, cfg, companyID, result)
		return result
	}

	relevantJobs := filterRelevant(postings, scorer)
	result.JobsFound = len(relevantJobs)

	newCount, removedCount, err := o.reconcileJobs(ctx, runID, cfg, companyID, relevantJobs)
	if err != nil {
		o.Logger.Warn("orchestrator: reconcileJobs failed", zap.String("domain", candidate.Domain), zap.Error(err))
	}
	result.NewJobs = newCount
	result.RemovedJobs = removedCount
	result.Status = model.RunStatusOK

	if !cfg.DryRun && companyID != "" {
		if err := o.Store.UpdateCompanyUrgency(ctx, companyID, len(relevantJobs)); err != nil {
			o.Logger.Warn("orchestrator: UpdateCompanyUrgency failed", zap.String("domain", candidate.Domain), zap.Error(err))
		}
	}

	o.writeSnapshot(ctx, runID, cfg, companyID, result)
	return result
}

type scoredJob struct {
	posting atsclients.JobPosting
	result  relevance.Result
}

func filterRelevant(postings []atsclients.JobPosting, scorer *relevance.Scorer) []scoredJob {
	var relevantJobs []scoredJob
	for _, p := range postings {
		r := scorer.Score(p.Title, p.Description)
		if r.IsRelevant {
			relevantJobs = append(relevantJobs, scoredJob{posting: p, result: r})
		}
	}
	return relevantJobs
}

// reconcileJobs implements stage 8 (change detection): diff the fetched,
// relevant set against the company's currently-active rows and apply the
// minimal set of writes, one JobChange per transition. In dry-run mode (or
// before the company has a row at all) there is nothing durable to diff
// against, so every fetched job reads as new for reporting purposes only.
func (o *Orchestrator) reconcileJobs(ctx context.Context, runID string, cfg Config, companyID string, relevantJobs []scoredJob) (newCount, removedCount int, err error) {
	if cfg.DryRun || companyID == "" {
		return len(relevantJobs), 0, nil
	}

	active, err := o.Store.ActiveJobsForCompany(ctx, companyID)
	if err != nil {
		return 0, 0, err
	}
	activeByExternalID := make(map[string]*model.Job, len(active))
	for _, j := range active {
		activeByExternalID[j.ExternalID] = j
	}

	fetchedByExternalID := make(map[string]scoredJob, len(relevantJobs))
	for _, sj := range relevantJobs {
		fetchedByExternalID[sj.posting.ExternalID] = sj
	}

	for externalID, sj := range fetchedByExternalID {
		if _, stillActive := activeByExternalID[externalID]; stillActive {
			continue
		}
		job := &model.Job{
			CompanyID:       companyID,
			ExternalID:      externalID,
			Title:           sj.posting.Title,
			Department:      ptrOrNil(sj.posting.Department),
			Location:        ptrOrNil(sj.posting.Location),
			Description:     sj.posting.Description,
			JobURL:          sj.posting.JobURL,
			PostingDate:     sj.posting.PostingDate,
			IsActive:        true,
			RelevanceScore:  sj.result.Score,
			MatchedCategory: sj.result.Category,
		}
		if _, insertErr := o.Store.InsertJob(ctx, job, companyID, runID); insertErr != nil {
			err = insertErr
			continue
		}
		newCount++
	}

	for externalID, activeJob := range activeByExternalID {
		if _, stillFetched := fetchedByExternalID[externalID]; stillFetched {
			if seenErr := o.Store.UpdateJobLastSeen(ctx, activeJob.ID); seenErr != nil {
				err = seenErr
			}
			continue
		}
		if inactiveErr := o.Store.MarkJobInactive(ctx, activeJob.ID, runID); inactiveErr != nil {
			err = inactiveErr
			continue
		}
		removedCount++
	}

	return newCount, removedCount, err
}

func (o *Orchestrator) writeSnapshot(ctx context.Context, runID string, cfg Config, companyID string, result CompanyResult) {
	if cfg.DryRun || companyID == "" {
		return
	}
	var errMsg *string
	if result.Err != nil {
		msg := result.Err.Error()
		errMsg = &msg
		if result.Status == model.RunStatusFetchError {
			errtrack.CaptureCompanyFailure(ctx, result.Domain, result.Err)
		}
	}
	snapshot := &model.RunSnapshot{
		RunID:        runID,
		RunDate:      cfg.RunDate,
		CompanyID:    companyID,
		JobsFound:    result.JobsFound,
		NewJobs:      result.NewJobs,
		RemovedJobs:  result.RemovedJobs,
		Status:       result.Status,
		ErrorMessage: errMsg,
	}
	if err := o.Store.InsertRunSnapshot(ctx, snapshot); err != nil {
		o.Logger.Warn("orchestrator: InsertRunSnapshot failed", zap.String("company_id", companyID), zap.Error(err))
	}
}

// sleep waits for d or returns false early if ctx is cancelled first.
func (o *Orchestrator) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func ptrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
