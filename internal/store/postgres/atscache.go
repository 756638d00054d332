package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/mpetrova/hirescout/internal/store/model"

	"github.com/jackc/pgx/v5"
)

// CacheGet returns the cache entry for domain, or nil if absent. An entry
// whose ExpiresAt has passed is treated as absent and is physically
// deleted as part of this call, per spec §3's cache invariant.
func (s *Store) CacheGet(ctx context.Context, domain string) (*model.ATSCacheEntry, error) {
	entry := &model.ATSCacheEntry{}
	err := s.pool.QueryRow(ctx, `
		SELECT domain, ats_provider, board_token, detected_at, expires_at
		FROM ats_cache WHERE domain = $1
	`, domain).Scan(&entry.Domain, &entry.ATSProvider, &entry.BoardToken, &entry.DetectedAt, &entry.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if entry.ExpiresAt.Before(time.Now().UTC()) {
		if _, delErr := s.pool.Exec(ctx, `DELETE FROM ats_cache WHERE domain = $1`, domain); delErr != nil {
			return nil, delErr
		}
		return nil, nil
	}

	return entry, nil
}

func (s *Store) CacheSet(ctx context.Context, entry *model.ATSCacheEntry) error {
	return withRetry(ctx, func() error {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO ats_cache (domain, ats_provider, board_token, detected_at, expires_at)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (domain) DO UPDATE SET
				ats_provider = EXCLUDED.ats_provider,
				board_token = EXCLUDED.board_token,
				detected_at = EXCLUDED.detected_at,
				expires_at = EXCLUDED.expires_at
		`, entry.Domain, entry.ATSProvider, entry.BoardToken, entry.DetectedAt, entry.ExpiresAt)
		return err
	})
}

func (s *Store) CacheClearExpired(ctx context.Context) (int, error) {
	result, err := s.pool.Exec(ctx, `DELETE FROM ats_cache WHERE expires_at < $1`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return int(result.RowsAffected()), nil
}
