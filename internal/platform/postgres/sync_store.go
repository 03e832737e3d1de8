package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/phrazzld/tasklens/internal/domain"
	"github.com/phrazzld/tasklens/internal/platform/logger"
	"github.com/phrazzld/tasklens/internal/store"
)

// SyncStore implements store.SyncStore against the analytics database.
// Each landed record upserts the task's current attributes and appends the
// action, keeping the normalized relations the resolver reads from.
type SyncStore struct {
	db *sql.DB
}

var _ store.SyncStore = (*SyncStore)(nil)

// NewSyncStore creates a SyncStore. It takes a *sql.DB rather than a DBTX
// because batch inserts open their own transactions.
func NewSyncStore(db *sql.DB) *SyncStore {
	return &SyncStore{db: db}
}

// MaxSyncedActionID returns the highest upstream action ID already landed,
// or zero for an empty store.
func (s *SyncStore) MaxSyncedActionID(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(MAX(action_id), 0) FROM task_actions`

	var maxID int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("reading sync checkpoint: %w", MapError(err))
	}
	return maxID, nil
}

// InsertActionRecords lands a batch of upstream records inside a single
// transaction. A record whose action_id was already landed is skipped, so
// replaying an overlap after a crash is harmless.
func (s *SyncStore) InsertActionRecords(ctx context.Context, records []domain.ActionRecord) error {
	if len(records) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	upsertTask := `
		INSERT INTO tasks (task_id, client, created_at, status, live_issue,
		                   department, division, job_classification,
		                   assigned_to, task_class, product)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (task_id, client) DO UPDATE SET
			status = EXCLUDED.status,
			live_issue = EXCLUDED.live_issue,
			assigned_to = EXCLUDED.assigned_to,
			task_class = EXCLUDED.task_class,
			product = EXCLUDED.product
	`
	insertAction := `
		INSERT INTO task_actions (action_id, task_id, client, action_at,
		                          action_code, action_employee, sort_order,
		                          department, division, job_classification)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (action_id) DO NOTHING
	`

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, r := range records {
			t := r.Task()
			if _, err := tx.ExecContext(ctx, upsertTask,
				t.TaskID, t.Client, t.CreatedAt, t.Status, t.LiveIssue,
				t.Department, t.Division, t.JobClassification,
				t.AssignedTo, t.TaskClass, t.Product,
			); err != nil {
				log.Error("failed to upsert task",
					"task_id", t.TaskID,
					"client", t.Client,
					"error", err)
				return fmt.Errorf("upserting task %s/%s: %w", t.TaskID, t.Client, MapError(err))
			}

			a := r.Action()
			if _, err := tx.ExecContext(ctx, insertAction,
				r.ActionID, a.TaskID, a.Client, a.ActionAt,
				a.ActionCode, a.ActionEmployee, a.SortOrder,
				a.Department, a.Division, a.JobClassification,
			); err != nil {
				log.Error("failed to insert action",
					"action_id", r.ActionID,
					"error", err)
				return fmt.Errorf("inserting action %d: %w", r.ActionID, MapError(err))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug("landed action records", "count", len(records))
	return nil
}
