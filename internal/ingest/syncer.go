package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasklens/internal/store"
)

// DefaultBatchSize is used when SyncerConfig leaves BatchSize zero.
const DefaultBatchSize = 1000

// SyncerConfig holds tuning knobs for the incremental sync.
type SyncerConfig struct {
	// BatchSize is the number of records pulled and landed per round trip.
	BatchSize int
}

// Syncer drives incremental replication from an UpstreamReader into a
// SyncStore.
type Syncer struct {
	upstream  store.UpstreamReader
	sink      store.SyncStore
	batchSize int
	logger    *slog.Logger
}

// NewSyncer creates a Syncer. A nil logger falls back to the default.
func NewSyncer(upstream store.UpstreamReader, sink store.SyncStore, cfg SyncerConfig, logger *slog.Logger) *Syncer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		upstream:  upstream,
		sink:      sink,
		batchSize: cfg.BatchSize,
		logger:    logger,
	}
}

// Sync pulls every record newer than the sink's checkpoint and lands it,
// batch by batch, returning the total number of records landed. A failed
// checkpoint read falls back to zero so a fresh or damaged sink re-syncs
// the full lookback window instead of failing.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	lastID, err := s.sink.MaxSyncedActionID(ctx)
	if err != nil {
		s.logger.Warn("failed to read sync checkpoint, starting from zero",
			"error", err)
		lastID = 0
	}
	s.logger.Info("starting incremental sync", "last_synced_id", lastID)

	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		batch, err := s.upstream.ReadActionRecordsAfter(ctx, lastID, s.batchSize)
		if err != nil {
			return total, fmt.Errorf("reading upstream records after %d: %w", lastID, err)
		}
		if len(batch) == 0 {
			break
		}

		if err := s.sink.InsertActionRecords(ctx, batch); err != nil {
			return total, fmt.Errorf("landing batch of %d records: %w", len(batch), err)
		}

		total += len(batch)
		lastID = batch[len(batch)-1].ActionID
		s.logger.Info("landed batch",
			"count", len(batch),
			"total", total,
			"last_synced_id", lastID)

		if len(batch) < s.batchSize {
			break
		}
	}

	s.logger.Info("sync completed", "total", total)
	return total, nil
}
