package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/mpetrova/hirescout/internal/store/model"

	"github.com/jackc/pgx/v5"
)

// UpsertCompany inserts c if Domain is unseen, else updates the mutable
// fields. isNewOrResurfacing is true when the existing row's LastCSVDate
// differs from today, or the row did not exist. FirstSeenDate is set on
// insert only.
func (s *Store) UpsertCompany(ctx context.Context, c *model.Company) (string, bool, error) {
	if c.Domain == "" {
		return "", false, model.ErrDomainRequired
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	var (
		companyID           string
		isNewOrResurfacing  bool
	)

	err := withRetry(ctx, func() error {
		existing, err := s.GetCompanyByDomain(ctx, c.Domain)
		if err != nil && !errors.Is(err, model.ErrCompanyNotFound) {
			return err
		}

		now := time.Now().UTC()

		if errors.Is(err, model.ErrCompanyNotFound) {
			companyID = newID()
			isNewOrResurfacing = true
			_, execErr := s.pool.Exec(ctx, `
				INSERT INTO companies (
					id, domain, name, website, industry, employee_count,
					ats_provider, ats_board_token, first_seen_date, last_csv_date,
					current_run_id, urgency_score, created_at, updated_at
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9,$10,0,$11,$11)
			`,
				companyID, c.Domain, c.Name, c.Website, c.Industry, c.EmployeeCount,
				c.ATSProvider, c.ATSBoardToken, today, c.CurrentRunID, now,
			)
			return wrapConflict(execErr)
		}

		companyID = existing.ID
		isNewOrResurfacing = existing.LastCSVDate.IsZero() || !existing.LastCSVDate.Equal(today)

		_, execErr := s.pool.Exec(ctx, `
			UPDATE companies
			SET name = $2, website = $3, industry = COALESCE($4, industry),
			    employee_count = COALESCE($5, employee_count),
			    last_csv_date = $6, current_run_id = $7, updated_at = $8
			WHERE id = $1
		`,
			companyID, c.Name, c.Website, c.Industry, c.EmployeeCount,
			today, c.CurrentRunID, now,
		)
		return wrapConflict(execErr)
	})

	return companyID, isNewOrResurfacing, err
}

func (s *Store) GetCompanyByDomain(ctx context.Context, domain string) (*model.Company, error) {
	return s.scanCompany(ctx, `
		SELECT id, domain, name, website, industry, employee_count,
		       ats_provider, ats_board_token, first_seen_date, last_csv_date,
		       current_run_id, urgency_score, created_at, updated_at
		FROM companies WHERE domain = $1
	`, domain)
}

func (s *Store) GetCompanyByID(ctx context.Context, id string) (*model.Company, error) {
	return s.scanCompany(ctx, `
		SELECT id, domain, name, website, industry, employee_count,
		       ats_provider, ats_board_token, first_seen_date, last_csv_date,
		       current_run_id, urgency_score, created_at, updated_at
		FROM companies WHERE id = $1
	`, id)
}

func (s *Store) scanCompany(ctx context.Context, query string, arg string) (*model.Company, error) {
	c := &model.Company{}
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Domain, &c.Name, &c.Website, &c.Industry, &c.EmployeeCount,
		&c.ATSProvider, &c.ATSBoardToken, &c.FirstSeenDate, &c.LastCSVDate,
		&c.CurrentRunID, &c.UrgencyScore, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCompanyNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Store) UpdateCompanyATS(ctx context.Context, companyID string, provider model.ATSProvider, token string) error {
	return withRetry(ctx, func() error {
		result, err := s.pool.Exec(ctx, `
			UPDATE companies SET ats_provider = $2, ats_board_token = $3, updated_at = $4
			WHERE id = $1
		`, companyID, provider, token, time.Now().UTC())
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return model.ErrCompanyNotFound
		}
		return nil
	})
}

func (s *Store) UpdateCompanyEnrichment(ctx context.Context, companyID string, u model.EnrichmentUpdate) error {
	return withRetry(ctx, func() error {
		result, err := s.pool.Exec(ctx, `
			UPDATE companies
			SET industry = COALESCE($2, industry),
			    employee_count = COALESCE($3, employee_count),
			    updated_at = $4
			WHERE id = $1
		`, companyID, u.Industry, u.EmployeeCount, time.Now().UTC())
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return model.ErrCompanyNotFound
		}
		return nil
	})
}

func (s *Store) UpdateCompanyUrgency(ctx context.Context, companyID string, score int) error {
	return withRetry(ctx, func() error {
		result, err := s.pool.Exec(ctx, `
			UPDATE companies SET urgency_score = $2, updated_at = $3 WHERE id = $1
		`, companyID, score, time.Now().UTC())
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return model.ErrCompanyNotFound
		}
		return nil
	})
}

func (s *Store) CompaniesSortedByRecency(ctx context.Context, limit int) ([]*model.Company, error) {
	return s.queryCompanies(ctx, `
		SELECT id, domain, name, website, industry, employee_count,
		       ats_provider, ats_board_token, first_seen_date, last_csv_date,
		       current_run_id, urgency_score, created_at, updated_at
		FROM companies ORDER BY last_csv_date DESC LIMIT $1
	`, limit)
}

func (s *Store) TopByUrgency(ctx context.Context, limit int) ([]*model.Company, error) {
	return s.queryCompanies(ctx, `
		SELECT id, domain, name, website, industry, employee_count,
		       ats_provider, ats_board_token, first_seen_date, last_csv_date,
		       current_run_id, urgency_score, created_at, updated_at
		FROM companies ORDER BY urgency_score DESC LIMIT $1
	`, limit)
}

func (s *Store) CompaniesForUpload(ctx context.Context, maxEmployees int) ([]*model.Company, error) {
	return s.queryCompanies(ctx, `
		SELECT id, domain, name, website, industry, employee_count,
		       ats_provider, ats_board_token, first_seen_date, last_csv_date,
		       current_run_id, urgency_score, created_at, updated_at
		FROM companies
		WHERE employee_count IS NULL OR employee_count <= $1
		ORDER BY urgency_score DESC
	`, maxEmployees)
}

func (s *Store) queryCompanies(ctx context.Context, query string, arg int) ([]*model.Company, error) {
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*model.Company
	for rows.Next() {
		c := &model.Company{}
		if err := rows.Scan(
			&c.ID, &c.Domain, &c.Name, &c.Website, &c.Industry, &c.EmployeeCount,
			&c.ATSProvider, &c.ATSBoardToken, &c.FirstSeenDate, &c.LastCSVDate,
			&c.CurrentRunID, &c.UrgencyScore, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
