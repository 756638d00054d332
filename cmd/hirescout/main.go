// Command hirescout is the single-binary CLI for the lead-discovery
// pipeline: run | status | export | upload | reset. It replaces the
// teacher's HTTP API entrypoint (cmd/api) — this core has no HTTP surface
// of its own (spec.md §1's Non-goal) — but keeps the same .env loading,
// config loading, and structured startup logging idiom.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mpetrova/hirescout/internal/config"
	"github.com/mpetrova/hirescout/internal/platform/errtrack"
	"github.com/mpetrova/hirescout/internal/platform/logger"
	"github.com/mpetrova/hirescout/internal/platform/postgres"
	"github.com/mpetrova/hirescout/internal/store/ports"
	storepg "github.com/mpetrova/hirescout/internal/store/postgres"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// app bundles the collaborators every verb needs, built once in main and
// passed down instead of each verb reloading config/reconnecting.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	pg    *postgres.Client
	store ports.Store
	ctx   context.Context
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 1
	}

	verb := args[0]
	rest := args[1:]

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hirescout: failed to load configuration: %v\n", err)
		return 2
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hirescout: failed to initialize logger: %v\n", err)
		return 2
	}
	defer log.Sync()

	if err := errtrack.Init(cfg.Sentry.DSN, cfg.Server.Env); err != nil {
		log.Warn("errtrack: sentry init failed, continuing without it", zap.Error(err))
	}
	defer errtrack.Flush(2_000_000_000)

	ctx := context.Background()

	pgClient, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgClient.Close()

	if err := postgres.RunMigrations(ctx, cfg.Database, log, "./migrations"); err != nil {
		log.Fatal("failed to run database migrations", zap.Error(err))
	}

	a := &app{
		cfg:   cfg,
		log:   log,
		pg:    pgClient,
		store: storepg.New(pgClient.Pool),
		ctx:   ctx,
	}

	switch verb {
	case "run":
		return a.cmdRun(rest)
	case "status":
		return a.cmdStatus(rest)
	case "export":
		return a.cmdExport(rest)
	case "upload":
		return a.cmdUpload(rest)
	case "reset":
		return a.cmdReset(rest)
	default:
		fmt.Fprintf(os.Stderr, "hirescout: unknown verb %q\n", verb)
		usage()
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: hirescout <verb> [flags]

verbs:
  run      execute the pipeline once
  status   print statistics from the store
  export   emit CSV/JSON leads to a path
  upload   format leads and POST them to an upload endpoint
  reset    truncate seen-companies markers`)
}
