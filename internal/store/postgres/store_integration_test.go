//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/mpetrova/hirescout/internal/config"
	"github.com/mpetrova/hirescout/internal/platform/logger"
	platformpg "github.com/mpetrova/hirescout/internal/platform/postgres"
	"github.com/mpetrova/hirescout/internal/store/model"
	"github.com/mpetrova/hirescout/internal/store/postgres"

	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/stretchr/testify/require"
)

// TestStore_Integration spins up a real Postgres, runs the repo's migrations
// against it, and exercises Store the way cmd/hirescout wires it — this is
// the end-to-end counterpart to company_test.go's pgxmock-level unit tests.
func TestStore_Integration(t *testing.T) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("hirescout"),
		tcpostgres.WithUsername("hirescout"),
		tcpostgres.WithPassword("hirescout"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dbCfg := config.DatabaseConfig{
		Host:     host,
		Port:     port.Port(),
		User:     "hirescout",
		Password: "hirescout",
		DBName:   "hirescout",
		SSLMode:  "disable",
		MaxConns: 5,
	}

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	require.NoError(t, platformpg.RunMigrations(ctx, dbCfg, log, "../../../migrations"))

	pg, err := platformpg.New(ctx, dbCfg)
	require.NoError(t, err)
	t.Cleanup(pg.Close)

	store := postgres.New(pg.Pool)

	t.Run("upsert is insert on first sight and update on resighting", func(t *testing.T) {
		c := &model.Company{
			Domain:        "example.com",
			Name:          "Example Co",
			Website:       "https://example.com",
			CurrentRunID:  "run-1",
		}

		id, isNew, err := store.UpsertCompany(ctx, c)
		require.NoError(t, err)
		require.True(t, isNew)
		require.NotEmpty(t, id)

		fetched, err := store.GetCompanyByDomain(ctx, "example.com")
		require.NoError(t, err)
		require.Equal(t, id, fetched.ID)
		require.Equal(t, "Example Co", fetched.Name)

		c.Name = "Example Co (renamed)"
		c.CurrentRunID = "run-1"
		_, isNewAgain, err := store.UpsertCompany(ctx, c)
		require.NoError(t, err)
		require.False(t, isNewAgain, "same-day re-sighting must not count as new")

		refetched, err := store.GetCompanyByDomain(ctx, "example.com")
		require.NoError(t, err)
		require.Equal(t, "Example Co (renamed)", refetched.Name)
	})

	t.Run("unknown domain maps to ErrCompanyNotFound", func(t *testing.T) {
		_, err := store.GetCompanyByDomain(ctx, "does-not-exist.example")
		require.ErrorIs(t, err, model.ErrCompanyNotFound)
	})

	t.Run("InsertJob writes the JobChange(new) row in the same transaction as the jobs insert", func(t *testing.T) {
		companyID, _, err := store.UpsertCompany(ctx, &model.Company{
			Domain:       "jobchange-example.com",
			Name:         "JobChange Example Co",
			CurrentRunID: "run-jc",
		})
		require.NoError(t, err)

		jobID, err := store.InsertJob(ctx, &model.Job{
			ExternalID:      "ext-1",
			Title:           "Marketing Manager",
			Description:     "...",
			JobURL:          "https://jobchange-example.com/jobs/1",
			RelevanceScore:  80,
			MatchedCategory: "marketing",
		}, companyID, "run-jc")
		require.NoError(t, err)
		require.NotEmpty(t, jobID)

		var changeType, changeRunID string
		require.NoError(t, pg.Pool.QueryRow(ctx,
			`SELECT change_type, run_id FROM job_changes WHERE job_id = $1`, jobID,
		).Scan(&changeType, &changeRunID))
		require.Equal(t, string(model.ChangeNew), changeType)
		require.Equal(t, "run-jc", changeRunID)

		// Reactivating an inactive row must also emit a fresh JobChange(new)
		// row in the same transaction as the is_active flip.
		require.NoError(t, store.MarkJobInactive(ctx, jobID, "run-jc"))
		jobID2, err := store.InsertJob(ctx, &model.Job{
			ExternalID:      "ext-1",
			Title:           "Marketing Manager",
			Description:     "...",
			JobURL:          "https://jobchange-example.com/jobs/1",
			RelevanceScore:  80,
			MatchedCategory: "marketing",
		}, companyID, "run-jc-2")
		require.NoError(t, err)
		require.Equal(t, jobID, jobID2, "reactivation reuses the existing row rather than duplicating it")

		var newChangeCount int
		require.NoError(t, pg.Pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM job_changes WHERE job_id = $1 AND change_type = $2 AND run_id = $3`,
			jobID, string(model.ChangeNew), "run-jc-2",
		).Scan(&newChangeCount))
		require.Equal(t, 1, newChangeCount)
	})

	t.Run("seen-companies reset reports the cleared count", func(t *testing.T) {
		require.NoError(t, store.MarkCompanySeen(ctx, &model.SeenCompany{
			Domain:      "example.com",
			CompanyName: "Example Co",
			SourceDate:  time.Now().UTC(),
			RunID:       "run-1",
		}))
		n, err := store.ResetSeenCompanies(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 1)
	})
}
