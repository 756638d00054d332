package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mpetrova/hirescout/internal/atsdetect"
	"github.com/mpetrova/hirescout/internal/config"
	"github.com/mpetrova/hirescout/internal/enrichment"
	"github.com/mpetrova/hirescout/internal/orchestrator"
	"github.com/mpetrova/hirescout/internal/platform/errtrack"
	"github.com/mpetrova/hirescout/internal/platform/httpclient"
	"github.com/mpetrova/hirescout/internal/platform/logger"
	"github.com/mpetrova/hirescout/internal/platform/mailer"
	"github.com/mpetrova/hirescout/internal/platform/redis"
	"github.com/mpetrova/hirescout/internal/platform/render"
	"github.com/mpetrova/hirescout/internal/relevance"
	"github.com/mpetrova/hirescout/internal/robots"
	"github.com/mpetrova/hirescout/internal/sources"

	"go.uber.org/zap"
)

func (a *app) cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "do not write any changes to the store")
	maxSearches := fs.Int("max-searches", a.cfg.Source.MaxSearchesPerRun, "override MAX_SEARCHES_PER_RUN for this invocation")
	dateStr := fs.String("date", "", "process as if run on this date (YYYY-MM-DD), default today")
	skipDecisionMakers := fs.Bool("skip-decision-makers", !a.cfg.Enrichment.EnableDecisionMakerLookup, "skip the decision-maker enrichment pass")
	skipEmailLookup := fs.Bool("skip-email-lookup", !a.cfg.Enrichment.EnableEmailLookup, "skip the email enrichment pass")
	verbose := fs.Bool("verbose", false, "debug-level logging for this invocation")
	profileName := fs.String("profile", "marketing", "role profile: marketing | it | sales")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *verbose {
		if verboseLog, err := newVerboseLogger(a.cfg); err == nil {
			a.log = verboseLog
		}
	}
	a.cfg.Source.MaxSearchesPerRun = *maxSearches

	runDate := time.Now().UTC()
	if *dateStr != "" {
		parsed, err := time.Parse("2006-01-02", *dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hirescout run: invalid --date %q: %v\n", *dateStr, err)
			return 2
		}
		runDate = parsed
	}

	profile, rolePriority, err := resolveProfile(*profileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hirescout run: %v\n", err)
		return 2
	}

	adapters, err := a.buildSourceAdapters()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hirescout run: failed to build source adapters: %v\n", err)
		return 2
	}

	robotsChecker := robots.NewChecker(httpclient.New(httpclient.CareersFetchTimeout), a.log.Logger)
	atsEngine := atsdetect.NewEngine(a.store)
	if a.cfg.ATS.EnableJSRendering {
		renderer, err := render.New(httpclient.CareersFetchTimeout)
		if err != nil {
			a.log.Warn("run: failed to launch headless renderer, JS-rendering tier disabled", zap.Error(err))
		} else {
			defer renderer.Close()
			atsEngine.JSRenderer = renderer
			atsEngine.EnableJSRendering = true
		}
	}

	var dmFinder *enrichment.DecisionMakerFinder
	if a.cfg.Enrichment.EnableDecisionMakerLookup && !*skipDecisionMakers {
		if a.cfg.Enrichment.AnthropicAPIKey == "" {
			fmt.Fprintln(os.Stderr, "hirescout run: ANTHROPIC_API_KEY is required for decision-maker lookup; pass --skip-decision-makers to proceed without it")
			return 2
		}
		dmFinder = enrichment.NewDecisionMakerFinder(a.cfg.Enrichment.AnthropicAPIKey, a.cfg.Enrichment.AnthropicModel, a.cfg.Enrichment.AnthropicBatchSize, a.log.Logger)
	}

	var emailFinder *enrichment.EmailFinder
	if a.cfg.Enrichment.EnableEmailLookup && !*skipEmailLookup && a.cfg.Enrichment.ApolloAPIKey != "" {
		emailFinder = enrichment.NewEmailFinder(httpclient.New(httpclient.EnrichmentTimeout), a.cfg.Enrichment.ApolloAPIKey, a.cfg.Enrichment.ApolloBatchSize, a.log.Logger)
	}

	o := orchestrator.New(a.store, adapters, robotsChecker, atsEngine, dmFinder, emailFinder, a.log.Logger)
	if a.cfg.Mailer.ResendAPIKey != "" && a.cfg.Mailer.NotifyTo != "" {
		o.Mailer = mailer.New(a.cfg.Mailer.ResendAPIKey, a.cfg.Mailer.NotifyFrom, a.cfg.Mailer.NotifyTo)
	}

	cfg := orchestrator.Config{
		RunDate:               runDate,
		DryRun:                *dryRun,
		DelayBetweenCompanies: a.cfg.ATS.DelayBetweenCompanies,
		RelevanceThreshold:    a.cfg.Source.RelevanceThreshold,
		RoleProfile:           profile,
		EnableDecisionMakers:  dmFinder != nil,
		EnableEmailLookup:     emailFinder != nil,
		EnrichmentSelectBy:    orchestrator.EnrichByRecency,
		RolePriority:          rolePriority,
	}

	summary, err := o.Run(a.ctx, cfg)
	if summary != nil {
		printRunSummary(os.Stdout, summary)
	}
	if err != nil {
		if errors.Is(err, orchestrator.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "hirescout run: cancelled")
			return 1
		}
		fmt.Fprintf(os.Stderr, "hirescout run: %v\n", err)
		errtrack.CaptureError(err, "cmd.run")
		return 2
	}
	return 0
}

func newVerboseLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New("debug", cfg.Log.Format)
}

func resolveProfile(name string) (relevance.RoleProfile, enrichment.RolePriority, error) {
	switch name {
	case "marketing", "":
		return relevance.MarketingProfile, enrichment.MarketingRolePriority, nil
	case "it":
		return relevance.ITProfile, enrichment.ITRolePriority, nil
	case "sales":
		return relevance.SalesProfile, enrichment.MSPRolePriority, nil
	default:
		return relevance.RoleProfile{}, nil, fmt.Errorf("unknown --profile %q (want marketing, it, or sales)", name)
	}
}

// buildSourceAdapters wires the three SourceAdapters from config, skipping
// any whose required inputs are absent rather than failing the run — a
// missing CSV path or SerpAPI key just means fewer candidates this run.
func (a *app) buildSourceAdapters() ([]sources.Adapter, error) {
	var adapters []sources.Adapter

	if a.cfg.Source.CuratedCSVPath != "" {
		f, err := os.Open(a.cfg.Source.CuratedCSVPath)
		if err != nil {
			return nil, fmt.Errorf("curated csv: %w", err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("curated csv: %w", err)
		}
		adapters = append(adapters, sources.NewCuratedCSVAdapter(bytes.NewReader(data), a.log.Logger))
	}

	if a.cfg.Source.ReadmeURL != "" {
		adapters = append(adapters, sources.NewRepositoryListingAdapter(httpclient.New(httpclient.CareersFetchTimeout), a.cfg.Source.ReadmeURL, a.log.Logger))
	}

	if a.cfg.Source.SerpAPIKey != "" {
		state, err := a.metroRotationState()
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, sources.NewAggregatorSearchAdapter(
			httpclient.New(httpclient.CareersFetchTimeout),
			a.cfg.Source.SerpAPIKey,
			a.cfg.Source.SearchQuery,
			a.cfg.Source.Metros,
			a.cfg.Source.MetrosPerRun,
			a.cfg.Source.MaxSearchesPerRun,
			state,
			a.log.Logger,
		))
	}

	return adapters, nil
}

// metroRotationState prefers Redis when configured, the file cursor
// otherwise, matching SPEC_FULL.md §2's "alternative metro-rotation cursor
// store" wiring.
func (a *app) metroRotationState() (sources.MetroRotationState, error) {
	if a.cfg.Redis.Host != "" {
		redisClient, err := redis.New(a.ctx, a.cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("metro rotation state: redis: %w", err)
		}
		return &sources.RedisMetroRotationState{Client: redisClient, Key: "hirescout:metro_rotation"}, nil
	}
	return &sources.FileMetroRotationState{Path: "./metro_rotation_state.json"}, nil
}

func printRunSummary(w io.Writer, s *orchestrator.Summary) {
	fmt.Fprintf(w, "run %s: %d companies seen, %d skipped, %d new jobs, %d removed jobs, enrichment_run=%v, duration=%s\n",
		s.RunID, s.CompaniesSeen, s.CompaniesSkipped, s.TotalNewJobs, s.TotalRemovedJobs, s.EnrichmentRun, s.Duration)
	for _, r := range s.Results {
		if r.Status != "ok" {
			fmt.Fprintf(w, "  %s: %s", r.Domain, r.Status)
			if r.Err != nil {
				fmt.Fprintf(w, " (%v)", r.Err)
			}
			fmt.Fprintln(w)
		}
	}
}
