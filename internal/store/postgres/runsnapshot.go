package postgres

import (
	"context"

	"github.com/mpetrova/hirescout/internal/store/model"
)

func (s *Store) InsertRunSnapshot(ctx context.Context, snap *model.RunSnapshot) error {
	return withRetry(ctx, func() error {
		if snap.ID == "" {
			snap.ID = newID()
		}
		_, err := s.pool.Exec(ctx, `
			INSERT INTO run_snapshots (
				id, run_id, run_date, company_id, jobs_found, new_jobs, removed_jobs, status, error_message
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`,
			snap.ID, snap.RunID, snap.RunDate, snap.CompanyID, snap.JobsFound,
			snap.NewJobs, snap.RemovedJobs, snap.Status, snap.ErrorMessage,
		)
		return err
	})
}
