// Package postgres implements the Store contract (internal/store/ports)
// against PostgreSQL via pgx, following the teacher repo's repository
// pattern: one struct wrapping a *pgxpool.Pool, pgx.ErrNoRows mapped to a
// model sentinel, constraint violations mapped to model.ErrConflict.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mpetrova/hirescout/internal/store/model"
	"github.com/mpetrova/hirescout/internal/store/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// retryAttempts and retryDelay bound the Store's own retry loop for
// transient I/O errors, per spec §4.1 ("Transient I/O errors are retried
// by the store up to a small fixed budget").
const (
	retryAttempts = 3
	retryDelay    = 200 * time.Millisecond
)

// Store implements ports.Store against a *pgxpool.Pool.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an existing pool. The pool's lifecycle (Close) is owned by the
// caller (internal/platform/postgres.Client), matching the teacher's
// repository constructors.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ ports.Store = (*Store)(nil)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08 (connection exception), 53 (insufficient resources),
		// 57 (operator intervention) are transient classes.
		switch pgErr.Code[:2] {
		case "08", "53", "57":
			return true
		}
	}
	return false
}

// withRetry runs op up to retryAttempts times, retrying only on a
// transient classification, pausing a fixed retryDelay between attempts.
func withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		err = op()
		if err == nil || !isTransient(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return err
}

func wrapConflict(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", model.ErrConflict, err)
	}
	return err
}

func newID() string {
	return uuid.New().String()
}
