// Package main implements the tasklens export job: it optionally syncs
// new action records from the upstream operational database, resolves the
// latest action per task, and writes the CSV snapshot consumed by the API
// and BI layers. The job runs once and exits by default; -interval keeps
// it looping for deployments without an external scheduler.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/phrazzld/tasklens/internal/config"
	"github.com/phrazzld/tasklens/internal/ingest"
	"github.com/phrazzld/tasklens/internal/pipeline"
	"github.com/phrazzld/tasklens/internal/platform/logger"
	"github.com/phrazzld/tasklens/internal/platform/postgres"
)

func main() {
	os.Exit(run())
}

// run holds the real logic so deferred cleanup executes before the
// process exit code is decided.
func run() int {
	// A .env file is a development convenience; deployments set real
	// environment variables.
	_ = godotenv.Load()

	interval := flag.Duration("interval", 0,
		"re-run the pipeline on this interval; zero runs once and exits")
	skipMigrations := flag.Bool("skip-migrations", false,
		"do not apply analytics schema migrations at startup")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	log := logger.Setup(cfg.Job)

	db, err := openDatabase(cfg.Source.URL, log)
	if err != nil {
		log.Error("failed to connect to analytics database", "error", err)
		return 1
	}
	defer func() { _ = db.Close() }()

	if !*skipMigrations {
		if err := postgres.ApplyMigrations(db); err != nil {
			log.Error("failed to apply migrations", "error", err)
			return 1
		}
	}

	runner := pipeline.NewRunner(postgres.NewSourceStore(db), cfg.Export, log)

	var syncer *ingest.Syncer
	if cfg.Sync.Enabled {
		upstream, err := openDatabase(cfg.Sync.UpstreamURL, log)
		if err != nil {
			log.Error("failed to connect to upstream database", "error", err)
			return 1
		}
		defer func() { _ = upstream.Close() }()

		lookback := time.Duration(cfg.Sync.LookbackDays) * 24 * time.Hour
		syncer = ingest.NewSyncer(
			postgres.NewUpstreamStore(upstream, lookback),
			postgres.NewSyncStore(db),
			ingest.SyncerConfig{BatchSize: cfg.Sync.BatchSize},
			log,
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *interval <= 0 {
		if err := runOnce(ctx, syncer, runner); err != nil {
			log.Error("run failed", "error", err)
			return 1
		}
		return 0
	}

	return runLoop(ctx, syncer, runner, *interval, log)
}

// runOnce executes one sync (when configured) followed by one pipeline
// run. Exported data only ever reflects a fully completed resolution.
func runOnce(ctx context.Context, syncer *ingest.Syncer, runner *pipeline.Runner) error {
	if syncer != nil {
		if _, err := syncer.Sync(ctx); err != nil {
			return fmt.Errorf("syncing upstream records: %w", err)
		}
	}
	if _, err := runner.Run(ctx, time.Now().UTC()); err != nil {
		return err
	}
	return nil
}

// runLoop runs immediately and then on every tick until the context is
// cancelled. Runs execute to completion on the loop goroutine, so they
// never overlap; a failed run is logged and the loop keeps going so a
// transient source outage does not kill the job.
func runLoop(
	ctx context.Context,
	syncer *ingest.Syncer,
	runner *pipeline.Runner,
	interval time.Duration,
	log *slog.Logger,
) int {
	log.Info("starting interval mode", "interval", interval.String())

	if err := runOnce(ctx, syncer, runner); err != nil {
		log.Error("run failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return 0
		case <-ticker.C:
			if err := runOnce(ctx, syncer, runner); err != nil {
				log.Error("run failed", "error", err)
			}
		}
	}
}
