package postgres

import (
	"context"
	"time"

	"github.com/mpetrova/hirescout/internal/store/model"
	"github.com/mpetrova/hirescout/internal/store/ports"
)

// ExportFlat is the flat-per-job projection: one row per active job with
// its company's fields denormalized on. When includeNonRelevant is false,
// only jobs with relevance_score > 0 are included.
func (s *Store) ExportFlat(ctx context.Context, includeNonRelevant bool) ([]*ports.ExportJobRow, error) {
	query := `
		SELECT c.name, c.domain, c.website, COALESCE(c.industry, ''), c.employee_count, c.urgency_score,
		       j.title, COALESCE(j.department, ''), COALESCE(j.location, ''), j.job_url, j.posting_date,
		       dm.id, dm.company_id, dm.person_name, dm.title, dm.source_url, dm.confidence, dm.email, dm.linkedin_url
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		LEFT JOIN decision_makers dm ON dm.company_id = c.id
		WHERE j.is_active = true
	`
	if !includeNonRelevant {
		query += ` AND j.relevance_score > 0`
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ports.ExportJobRow
	for rows.Next() {
		row := &ports.ExportJobRow{}
		var postingDate *time.Time
		var dmID, dmCompanyID, dmPersonName, dmTitle, dmSourceURL *string
		var dmConfidence *model.Confidence
		var dmEmail, dmLinkedIn *string

		if err := rows.Scan(
			&row.CompanyName, &row.Domain, &row.Website, &row.Industry, &row.EmployeeCount, &row.UrgencyScore,
			&row.JobTitle, &row.Department, &row.Location, &row.JobURL, &postingDate,
			&dmID, &dmCompanyID, &dmPersonName, &dmTitle, &dmSourceURL, &dmConfidence, &dmEmail, &dmLinkedIn,
		); err != nil {
			return nil, err
		}

		if postingDate != nil {
			row.PostingDate = postingDate.Format("2006-01-02")
		}

		if dmID != nil {
			row.DecisionMaker = &model.DecisionMaker{
				ID: *dmID, CompanyID: *dmCompanyID, PersonName: *dmPersonName,
				Title: *dmTitle, SourceURL: *dmSourceURL, Email: dmEmail, LinkedInURL: dmLinkedIn,
			}
			if dmConfidence != nil {
				row.DecisionMaker.Confidence = *dmConfidence
			}
		}

		out = append(out, row)
	}
	return out, rows.Err()
}

// ExportGrouped is the grouped projection: one entry per company with all
// currently active jobs nested under it.
func (s *Store) ExportGrouped(ctx context.Context, includeNonRelevant bool) ([]*ports.ExportCompanyGroup, error) {
	companies, err := s.queryCompanies(ctx, `
		SELECT id, domain, name, website, industry, employee_count,
		       ats_provider, ats_board_token, first_seen_date, last_csv_date,
		       current_run_id, urgency_score, created_at, updated_at
		FROM companies ORDER BY urgency_score DESC
	`, 1<<30)
	if err != nil {
		return nil, err
	}

	groups := make([]*ports.ExportCompanyGroup, 0, len(companies))
	for _, c := range companies {
		jobs, err := s.ActiveJobsForCompany(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if !includeNonRelevant {
			filtered := jobs[:0]
			for _, j := range jobs {
				if j.RelevanceScore > 0 {
					filtered = append(filtered, j)
				}
			}
			jobs = filtered
		}
		if len(jobs) == 0 {
			continue
		}

		maker, err := s.GetDecisionMaker(ctx, c.ID)
		if err != nil && err != model.ErrDecisionMakerNotFound {
			return nil, err
		}
		if err == model.ErrDecisionMakerNotFound {
			maker = nil
		}

		groups = append(groups, &ports.ExportCompanyGroup{Company: c, Jobs: jobs, Maker: maker})
	}

	return groups, nil
}
