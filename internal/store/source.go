package store

import (
	"context"

	"github.com/phrazzld/tasklens/internal/domain"
)

// SourceReader reads the full Task and Action relations as of the moment
// of the call. The resolver treats these as point-in-time snapshots; read
// failures should wrap ErrSourceUnavailable.
type SourceReader interface {
	// ReadTasks returns every task row currently in the source.
	ReadTasks(ctx context.Context) ([]domain.Task, error)

	// ReadActions returns every action row currently in the source.
	ReadActions(ctx context.Context) ([]domain.Action, error)
}

// UpstreamReader reads joined action records from the upstream operational
// database for incremental sync.
type UpstreamReader interface {
	// ReadActionRecordsAfter returns up to limit records with an action ID
	// strictly greater than lastID, ordered by action ID ascending.
	ReadActionRecordsAfter(ctx context.Context, lastID int64, limit int) ([]domain.ActionRecord, error)
}

// SyncStore lands synced action records in the analytics database and
// exposes the sync checkpoint.
type SyncStore interface {
	// MaxSyncedActionID returns the highest action ID already landed, or
	// zero when nothing has been synced yet.
	MaxSyncedActionID(ctx context.Context) (int64, error)

	// InsertActionRecords writes a batch of records, upserting each
	// record's task attributes and appending its action. The whole batch
	// commits or rolls back as a unit.
	InsertActionRecords(ctx context.Context, records []domain.ActionRecord) error
}
