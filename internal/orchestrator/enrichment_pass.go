package orchestrator

import (
	"context"

	"github.com/mpetrova/hirescout/internal/enrichment"
	"github.com/mpetrova/hirescout/internal/store/model"

	"go.uber.org/zap"
)

// runEnrichment is pipeline stage 11: once per invocation, after every
// company has been processed, batch the top-N companies by recency or
// urgency through DecisionMakerFinder and (if enabled) EmailFinder.
func (o *Orchestrator) runEnrichment(ctx context.Context, cfg Config) error {
	if o.DecisionMakerFinder == nil {
		return nil
	}

	companies, err := o.topEnrichmentCandidates(ctx, cfg)
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		return nil
	}

	inputs := make([]enrichment.CompanyInput, len(companies))
	byName := make(map[string]*model.Company, len(companies))
	for i, c := range companies {
		inputs[i] = enrichment.CompanyInput{CompanyName: c.Name, Website: c.Website}
		byName[c.Name] = c
	}

	results, err := o.DecisionMakerFinder.Find(ctx, inputs, cfg.RolePriority)
	if err != nil {
		return err
	}

	var confirmed []enrichment.DecisionMakerResult
	websiteByCompany := make(map[string]string, len(companies))
	for _, r := range results {
		c, ok := byName[r.CompanyName]
		if !ok {
			continue
		}
		websiteByCompany[r.CompanyName] = c.Website

		if r.PersonName == "" {
			o.Logger.Info("orchestrator: no decision maker identified",
				zap.String("company", r.CompanyName), zap.String("reason", r.NotFoundReason))
			continue
		}

		dm := &model.DecisionMaker{
			CompanyID:  c.ID,
			PersonName: r.PersonName,
			Title:      r.Title,
			SourceURL:  r.SourceURL,
			Confidence: model.Confidence(r.Confidence),
		}
		if err := o.Store.UpsertDecisionMaker(ctx, dm); err != nil {
			o.Logger.Warn("orchestrator: UpsertDecisionMaker failed", zap.String("company", r.CompanyName), zap.Error(err))
			continue
		}
		if r.Industry != nil || r.EmployeeCount != nil {
			if err := o.Store.UpdateCompanyEnrichment(ctx, c.ID, model.EnrichmentUpdate{
				Industry:      r.Industry,
				EmployeeCount: r.EmployeeCount,
			}); err != nil {
				o.Logger.Warn("orchestrator: UpdateCompanyEnrichment failed", zap.String("company", r.CompanyName), zap.Error(err))
			}
		}
		confirmed = append(confirmed, r)
	}

	if cfg.EnableEmailLookup && o.EmailFinder != nil && len(confirmed) > 0 {
		emailResults, err := o.EmailFinder.FindEmails(ctx, confirmed, websiteByCompany)
		if err != nil {
			return err
		}
		for _, er := range emailResults {
			c, ok := byName[er.CompanyName]
			if !ok || er.Email == "" {
				continue
			}
			dm, err := o.Store.GetDecisionMaker(ctx, c.ID)
			if err != nil {
				continue
			}
			email := er.Email
			dm.Email = &email
			if er.LinkedInURL != "" {
				linkedIn := er.LinkedInURL
				dm.LinkedInURL = &linkedIn
			}
			if err := o.Store.UpsertDecisionMaker(ctx, dm); err != nil {
				o.Logger.Warn("orchestrator: email UpsertDecisionMaker failed", zap.String("company", er.CompanyName), zap.Error(err))
			}
		}
	}

	return nil
}

func (o *Orchestrator) topEnrichmentCandidates(ctx context.Context, cfg Config) ([]*model.Company, error) {
	limit := cfg.EnrichmentTopN
	if limit <= 0 {
		limit = 20
	}
	if cfg.EnrichmentSelectBy == EnrichByUrgency {
		return o.Store.TopByUrgency(ctx, limit)
	}
	return o.Store.CompaniesSortedByRecency(ctx, limit)
}
