// Package orchestrator drives the full pipeline of spec §4.5: source
// ingestion, dedup, company upsert, robots courtesy check, ATS detection,
// job fetch, relevance scoring, change detection, derived-field update, and
// a once-per-run enrichment pass, emitting one RunSnapshot per company and
// a summary for the invocation as a whole.
package orchestrator

import (
	"time"

	"github.com/mpetrova/hirescout/internal/enrichment"
	"github.com/mpetrova/hirescout/internal/relevance"
	"github.com/mpetrova/hirescout/internal/store/model"
)

// EnrichmentSelection picks which companies the once-per-run enrichment
// pass considers, bounding LLM/Apollo spend (spec §4.6 "Scope controls").
type EnrichmentSelection string

const (
	EnrichByRecency EnrichmentSelection = "recency"
	EnrichByUrgency EnrichmentSelection = "urgency"
)

// Config is one invocation's tunables, assembled from CLI flags and
// internal/config by the cmd/hirescout run verb.
type Config struct {
	RunDate               time.Time
	DryRun                bool
	MaxJobs               int
	DelayBetweenCompanies time.Duration
	RelevanceThreshold    int
	RoleProfile           relevance.RoleProfile
	EnableDecisionMakers  bool
	EnableEmailLookup     bool
	EnrichmentTopN        int
	EnrichmentSelectBy    EnrichmentSelection
	RolePriority          enrichment.RolePriority
}

// CompanyResult is the per-company outcome recorded in this run's summary,
// mirroring the fields persisted to model.RunSnapshot.
type CompanyResult struct {
	Domain      string
	Status      model.RunStatus
	JobsFound   int
	NewJobs     int
	RemovedJobs int
	Err         error
}

// Summary is the run-wide report returned by Orchestrator.Run and printed
// by the `run` CLI verb.
type Summary struct {
	RunID            string
	RunDate          time.Time
	Duration         time.Duration
	CompaniesSeen    int
	CompaniesSkipped int
	Results          []CompanyResult
	ByProvider       map[model.ATSProvider]int
	TotalNewJobs     int
	TotalRemovedJobs int
	EnrichmentRun    bool
	EnrichmentErr    error
}
