package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklens/internal/config"
	"github.com/phrazzld/tasklens/internal/export"
	"github.com/phrazzld/tasklens/internal/platform/logger"
	"github.com/phrazzld/tasklens/internal/resolve"
	"github.com/phrazzld/tasklens/internal/store"
)

// RunSummary describes one completed pipeline run.
type RunSummary struct {
	RunID          uuid.UUID
	Rows           int
	MalformedTasks int
	OrphanActions  int
	SnapshotPath   string
	BackupPath     string
	Duration       time.Duration
}

// Runner wires a SourceReader to the resolver and exporter.
type Runner struct {
	source   store.SourceReader
	exporter *export.Exporter
	dest     string
	logger   *slog.Logger
}

// NewRunner creates a Runner exporting to cfg.Dir/cfg.TasksCSV.
func NewRunner(source store.SourceReader, cfg config.ExportConfig, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		source:   source,
		exporter: export.NewExporter(log),
		dest:     filepath.Join(cfg.Dir, cfg.TasksCSV),
		logger:   log,
	}
}

// Run executes one read-resolve-export cycle with now as the reference
// time for derived metrics. On any error the previous snapshot is left
// untouched; per-row issues never fail the run and are reported in the
// summary instead.
func (r *Runner) Run(ctx context.Context, now time.Time) (*RunSummary, error) {
	runID := uuid.New()
	log := r.logger.With("run_id", runID.String())
	ctx = logger.WithLogger(ctx, log)

	started := time.Now()
	log.Info("pipeline run starting", "snapshot", r.dest)

	tasks, err := r.source.ReadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading tasks: %w", err)
	}
	actions, err := r.source.ReadActions(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading actions: %w", err)
	}
	log.Info("source read complete",
		"tasks", len(tasks),
		"actions", len(actions))

	rows, summary := resolve.Resolve(tasks, actions, now, log)

	backup, err := r.exporter.WriteSnapshot(rows, r.dest, now)
	if err != nil {
		return nil, fmt.Errorf("exporting snapshot: %w", err)
	}

	result := &RunSummary{
		RunID:          runID,
		Rows:           summary.RowsOut,
		MalformedTasks: summary.MalformedTasks,
		OrphanActions:  summary.OrphanActions,
		SnapshotPath:   r.dest,
		BackupPath:     backup,
		Duration:       time.Since(started),
	}

	log.Info("pipeline run complete",
		"rows", result.Rows,
		"malformed_tasks", result.MalformedTasks,
		"orphan_actions", result.OrphanActions,
		"duration", result.Duration.String())

	return result, nil
}
