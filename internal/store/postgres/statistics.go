package postgres

import (
	"context"

	"github.com/mpetrova/hirescout/internal/store/model"
	"github.com/mpetrova/hirescout/internal/store/ports"
)

func (s *Store) Statistics(ctx context.Context) (*ports.Statistics, error) {
	stats := &ports.Statistics{ByATSProvider: map[model.ATSProvider]int{}}

	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&stats.TotalCompanies); err != nil {
		return nil, err
	}
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM companies WHERE urgency_score > 0`).Scan(&stats.RelevantCompanies); err != nil {
		return nil, err
	}
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE is_active = true`).Scan(&stats.TotalActiveJobs); err != nil {
		return nil, err
	}
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM decision_makers`).Scan(&stats.TotalDecisionMakers); err != nil {
		return nil, err
	}
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM decision_makers WHERE email IS NOT NULL`).Scan(&stats.TotalWithEmail); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT ats_provider, COUNT(*) FROM companies
		WHERE ats_provider != '' GROUP BY ats_provider
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var provider model.ATSProvider
		var count int
		if err := rows.Scan(&provider, &count); err != nil {
			return nil, err
		}
		stats.ByATSProvider[provider] = count
	}

	return stats, rows.Err()
}
