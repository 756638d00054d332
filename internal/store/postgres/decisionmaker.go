package postgres

import (
	"context"
	"errors"

	"github.com/mpetrova/hirescout/internal/store/model"

	"github.com/jackc/pgx/v5"
)

// UpsertDecisionMaker writes the single current contact for a company.
// Conflict target is company_id; fields present in dm overwrite, the zero
// value for pointer fields (nil) does not clobber an existing value.
func (s *Store) UpsertDecisionMaker(ctx context.Context, dm *model.DecisionMaker) error {
	return withRetry(ctx, func() error {
		if dm.ID == "" {
			dm.ID = newID()
		}
		_, err := s.pool.Exec(ctx, `
			INSERT INTO decision_makers (id, company_id, person_name, title, source_url, confidence, email, linkedin_url)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (company_id) DO UPDATE SET
				person_name = EXCLUDED.person_name,
				title = EXCLUDED.title,
				source_url = EXCLUDED.source_url,
				confidence = EXCLUDED.confidence,
				email = COALESCE(EXCLUDED.email, decision_makers.email),
				linkedin_url = COALESCE(EXCLUDED.linkedin_url, decision_makers.linkedin_url)
		`, dm.ID, dm.CompanyID, dm.PersonName, dm.Title, dm.SourceURL, dm.Confidence, dm.Email, dm.LinkedInURL)
		return wrapConflict(err)
	})
}

func (s *Store) GetDecisionMaker(ctx context.Context, companyID string) (*model.DecisionMaker, error) {
	dm := &model.DecisionMaker{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, company_id, person_name, title, source_url, confidence, email, linkedin_url
		FROM decision_makers WHERE company_id = $1
	`, companyID).Scan(
		&dm.ID, &dm.CompanyID, &dm.PersonName, &dm.Title, &dm.SourceURL, &dm.Confidence, &dm.Email, &dm.LinkedInURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDecisionMakerNotFound
		}
		return nil, err
	}
	return dm, nil
}
