package postgres

import (
	"context"
	"errors"

	"github.com/mpetrova/hirescout/internal/store/model"

	"github.com/jackc/pgx/v5"
)

func (s *Store) IsCompanySeen(ctx context.Context, domain string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM seen_companies WHERE domain = $1)`, domain).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

// MarkCompanySeen is append-only: a repeat sighting inserts a new row
// rather than updating, preserving the full history of source dates the
// domain was observed on.
func (s *Store) MarkCompanySeen(ctx context.Context, seen *model.SeenCompany) error {
	return withRetry(ctx, func() error {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO seen_companies (domain, company_name, source_date, run_id)
			VALUES ($1,$2,$3,$4)
		`, seen.Domain, seen.CompanyName, seen.SourceDate, seen.RunID)
		return err
	})
}

// ResetSeenCompanies truncates the marker table to force reprocessing,
// per the `reset` CLI verb.
func (s *Store) ResetSeenCompanies(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM seen_companies`).Scan(&count); err != nil {
		return 0, err
	}
	if _, err := s.pool.Exec(ctx, `TRUNCATE seen_companies`); err != nil {
		return 0, err
	}
	return count, nil
}
