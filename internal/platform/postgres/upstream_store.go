package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/tasklens/internal/domain"
	"github.com/phrazzld/tasklens/internal/platform/logger"
	"github.com/phrazzld/tasklens/internal/store"
)

// UpstreamStore implements store.UpstreamReader against the upstream
// operational database. It reads actions joined with their task and the
// acting employee's org attributes, the same shape the original Oracle
// feed exposed.
type UpstreamStore struct {
	db       store.DBTX
	lookback time.Duration
}

var _ store.UpstreamReader = (*UpstreamStore)(nil)

// NewUpstreamStore creates an UpstreamStore. lookback bounds how old an
// action may be and still be picked up; it guards the initial sync from
// dragging in years of history.
func NewUpstreamStore(db store.DBTX, lookback time.Duration) *UpstreamStore {
	return &UpstreamStore{db: db, lookback: lookback}
}

// ReadActionRecordsAfter returns up to limit joined records with action_id
// strictly greater than lastID, ordered by action_id ascending.
func (s *UpstreamStore) ReadActionRecordsAfter(
	ctx context.Context,
	lastID int64,
	limit int,
) ([]domain.ActionRecord, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT a.action_id,
		       t.task_id, t.client, t.status, t.created_at, t.live_issue,
		       t.task_class, t.product, t.assigned_to,
		       a.action_at, a.action_code, a.action_employee, a.sort_order,
		       COALESCE(e.dept_descr, ''), COALESCE(e.div_descr, ''),
		       COALESCE(e.job_classification, '')
		FROM task_actions a
		JOIN tasks t ON t.task_id = a.task_id AND t.client = a.client
		LEFT JOIN employee_info e ON e.empid = a.action_employee
		WHERE a.action_id > $1 AND a.action_at >= $2
		ORDER BY a.action_id
		LIMIT $3
	`

	cutoff := time.Now().UTC().Add(-s.lookback)
	rows, err := s.db.QueryContext(ctx, query, lastID, cutoff, limit)
	if err != nil {
		log.Error("failed to read upstream action records",
			"last_id", lastID,
			"error", err)
		return nil, fmt.Errorf("%w: querying upstream: %v", store.ErrSourceUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var records []domain.ActionRecord
	for rows.Next() {
		var r domain.ActionRecord
		if err := rows.Scan(
			&r.ActionID,
			&r.TaskID,
			&r.Client,
			&r.Status,
			&r.CreatedAt,
			&r.LiveIssue,
			&r.TaskClass,
			&r.Product,
			&r.AssignedTo,
			&r.ActionAt,
			&r.ActionCode,
			&r.ActionEmployee,
			&r.SortOrder,
			&r.Department,
			&r.Division,
			&r.JobClassification,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning upstream row: %v", store.ErrSourceUnavailable, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating upstream rows: %v", store.ErrSourceUnavailable, err)
	}

	return records, nil
}
