package postgres

import (
	"context"
	"fmt"

	"github.com/phrazzld/tasklens/internal/domain"
	"github.com/phrazzld/tasklens/internal/platform/logger"
	"github.com/phrazzld/tasklens/internal/store"
)

// SourceStore implements store.SourceReader against the tasks and
// task_actions relations of the analytics database.
type SourceStore struct {
	db store.DBTX
}

// Statically verify the interface is satisfied.
var _ store.SourceReader = (*SourceStore)(nil)

// NewSourceStore creates a SourceStore on the given database handle.
func NewSourceStore(db store.DBTX) *SourceStore {
	return &SourceStore{db: db}
}

// ReadTasks returns every task row currently in the analytics database.
func (s *SourceStore) ReadTasks(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT task_id, client, created_at, status, live_issue,
		       department, division, job_classification, assigned_to,
		       task_class, product
		FROM tasks
		ORDER BY task_id, client
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to read tasks relation", "error", err)
		return nil, fmt.Errorf("%w: querying tasks: %v", store.ErrSourceUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(
			&t.TaskID,
			&t.Client,
			&t.CreatedAt,
			&t.Status,
			&t.LiveIssue,
			&t.Department,
			&t.Division,
			&t.JobClassification,
			&t.AssignedTo,
			&t.TaskClass,
			&t.Product,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning task row: %v", store.ErrSourceUnavailable, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating tasks: %v", store.ErrSourceUnavailable, err)
	}

	return tasks, nil
}

// ReadActions returns every action row currently in the analytics
// database.
func (s *SourceStore) ReadActions(ctx context.Context) ([]domain.Action, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT task_id, client, action_at, action_code, action_employee,
		       sort_order, department, division, job_classification
		FROM task_actions
		ORDER BY task_id, client, action_at, sort_order
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to read actions relation", "error", err)
		return nil, fmt.Errorf("%w: querying actions: %v", store.ErrSourceUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var actions []domain.Action
	for rows.Next() {
		var a domain.Action
		if err := rows.Scan(
			&a.TaskID,
			&a.Client,
			&a.ActionAt,
			&a.ActionCode,
			&a.ActionEmployee,
			&a.SortOrder,
			&a.Department,
			&a.Division,
			&a.JobClassification,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning action row: %v", store.ErrSourceUnavailable, err)
		}
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating actions: %v", store.ErrSourceUnavailable, err)
	}

	return actions, nil
}
