package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/mpetrova/hirescout/internal/store/model"

	"github.com/jackc/pgx/v5"
)

// InsertJob is idempotent on (company_id, external_id): a matching
// inactive row is reactivated (is_active=1), and a matching active row is
// left as-is (caller should have routed it through UpdateJobLastSeen
// instead). On a fresh insert or a reactivation, a JobChange(new) row is
// written in the same transaction as the jobs-row mutation, so a crash
// between the two can never leave one table showing the transition and
// the other not.
func (s *Store) InsertJob(ctx context.Context, job *model.Job, companyID, runID string) (string, error) {
	var jobID string

	err := withRetry(ctx, func() error {
		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		var existingID string
		var isActive bool
		err = tx.QueryRow(ctx, `
			SELECT id, is_active FROM jobs WHERE company_id = $1 AND external_id = $2
		`, companyID, job.ExternalID).Scan(&existingID, &isActive)

		now := time.Now().UTC()
		emitNewChange := false

		switch {
		case errors.Is(err, pgx.ErrNoRows):
			jobID = newID()
			_, execErr := tx.Exec(ctx, `
				INSERT INTO jobs (
					id, company_id, external_id, title, department, location,
					description, job_url, posting_date, discovered_at, last_seen_at,
					is_active, relevance_score, matched_category, verification_status
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$10,true,$11,$12,$13)
			`,
				jobID, companyID, job.ExternalID, job.Title, job.Department, job.Location,
				job.Description, job.JobURL, job.PostingDate, now,
				job.RelevanceScore, job.MatchedCategory, model.VerificationUnknown,
			)
			if execErr != nil {
				return wrapConflict(execErr)
			}
			emitNewChange = true
		case err != nil:
			return err
		case !isActive:
			jobID = existingID
			if _, execErr := tx.Exec(ctx, `
				UPDATE jobs
				SET title = $2, department = $3, location = $4, description = $5,
				    job_url = $6, posting_date = $7, last_seen_at = $8,
				    is_active = true, relevance_score = $9, matched_category = $10
				WHERE id = $1
			`,
				jobID, job.Title, job.Department, job.Location, job.Description,
				job.JobURL, job.PostingDate, now, job.RelevanceScore, job.MatchedCategory,
			); execErr != nil {
				return execErr
			}
			emitNewChange = true
		default:
			jobID = existingID
		}

		if emitNewChange {
			if _, execErr := tx.Exec(ctx, `
				INSERT INTO job_changes (id, job_id, run_id, change_type, changed_at)
				VALUES ($1,$2,$3,$4,$5)
			`, newID(), jobID, runID, model.ChangeNew, now); execErr != nil {
				return execErr
			}
		}

		return tx.Commit(ctx)
	})

	return jobID, err
}

// MarkJobInactive flips is_active to false and writes the accompanying
// JobChange(removed) row in the same transaction.
func (s *Store) MarkJobInactive(ctx context.Context, jobID, runID string) error {
	return withRetry(ctx, func() error {
		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		result, err := tx.Exec(ctx, `UPDATE jobs SET is_active = false WHERE id = $1`, jobID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return model.ErrJobNotFound
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO job_changes (id, job_id, run_id, change_type, changed_at)
			VALUES ($1,$2,$3,$4,$5)
		`, newID(), jobID, runID, model.ChangeRemoved, time.Now().UTC()); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}

func (s *Store) UpdateJobLastSeen(ctx context.Context, jobID string) error {
	return withRetry(ctx, func() error {
		result, err := s.pool.Exec(ctx, `
			UPDATE jobs SET last_seen_at = $2 WHERE id = $1
		`, jobID, time.Now().UTC())
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return model.ErrJobNotFound
		}
		return nil
	})
}

func (s *Store) UpdateJobVerification(ctx context.Context, jobID string, status model.VerificationStatus) error {
	return withRetry(ctx, func() error {
		result, err := s.pool.Exec(ctx, `
			UPDATE jobs SET verification_status = $2 WHERE id = $1
		`, jobID, status)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return model.ErrJobNotFound
		}
		return nil
	})
}

func (s *Store) ActiveJobsForCompany(ctx context.Context, companyID string) ([]*model.Job, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, external_id, title, department, location,
		       description, job_url, posting_date, discovered_at, last_seen_at,
		       is_active, relevance_score, matched_category, verification_status
		FROM jobs WHERE company_id = $1 AND is_active = true
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*model.Job
	for rows.Next() {
		j := &model.Job{}
		if err := rows.Scan(
			&j.ID, &j.CompanyID, &j.ExternalID, &j.Title, &j.Department, &j.Location,
			&j.Description, &j.JobURL, &j.PostingDate, &j.DiscoveredAt, &j.LastSeenAt,
			&j.IsActive, &j.RelevanceScore, &j.MatchedCategory, &j.VerificationStatus,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
