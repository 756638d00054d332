package orchestrator

import (
	"context"

	"github.com/mpetrova/hirescout/internal/atsdetect"
	"github.com/mpetrova/hirescout/internal/enrichment"
	"github.com/mpetrova/hirescout/internal/platform/mailer"
)

// Detector is the subset of atsdetect.Engine the orchestrator needs,
// narrowed the same way atsdetect.Cache narrows ports.Store — so a test
// double doesn't have to stand up real HTTP probing.
type Detector interface {
	Detect(ctx context.Context, in atsdetect.Input) (atsdetect.Result, error)
}

// CourtesyChecker is the subset of robots.Checker the orchestrator needs.
type CourtesyChecker interface {
	CanFetch(ctx context.Context, rawURL string) bool
}

// DecisionMakerFinder is the subset of enrichment.DecisionMakerFinder the
// orchestrator needs.
type DecisionMakerFinder interface {
	Find(ctx context.Context, companies []enrichment.CompanyInput, priority enrichment.RolePriority) ([]enrichment.DecisionMakerResult, error)
}

// EmailFinder is the subset of enrichment.EmailFinder the orchestrator
// needs.
type EmailFinder interface {
	FindEmails(ctx context.Context, decisionMakers []enrichment.DecisionMakerResult, websiteByCompany map[string]string) ([]enrichment.EmailLookupResult, error)
}

// Digester is the subset of mailer.Client the orchestrator needs for its
// step-12 end-of-run digest email.
type Digester interface {
	SendDigest(d mailer.Digest) error
}
