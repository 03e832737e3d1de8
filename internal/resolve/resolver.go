package resolve

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/phrazzld/tasklens/internal/domain"
)

// Summary aggregates the per-row issues encountered during a resolution
// pass. Individual malformed or orphaned rows never abort the batch; they
// are counted here and surfaced in the run's logs.
type Summary struct {
	// TasksIn is the number of task rows presented to the resolver.
	TasksIn int

	// ActionsIn is the number of action rows presented to the resolver.
	ActionsIn int

	// RowsOut is the number of analytic rows produced.
	RowsOut int

	// MalformedTasks counts task rows excluded for a missing task_id or
	// client.
	MalformedTasks int

	// OrphanActions counts action rows referencing a (task_id, client)
	// absent from the task relation. Orphans are dropped, not propagated.
	OrphanActions int
}

// Resolve produces exactly one AnalyticRow per valid (task_id, client) in
// tasks. Tasks with no matching action are still emitted, with all
// action-derived fields unset. now is the reference time for derived
// metrics and is passed explicitly so re-runs on identical input are
// byte-for-byte reproducible.
//
// Output is sorted by (task_id, client) so downstream artifacts are stable
// regardless of source ordering.
func Resolve(
	tasks []domain.Task,
	actions []domain.Action,
	now time.Time,
	logger *slog.Logger,
) ([]domain.AnalyticRow, Summary) {
	if logger == nil {
		logger = slog.Default()
	}

	summary := Summary{TasksIn: len(tasks), ActionsIn: len(actions)}

	// Index valid tasks first so orphan actions can be recognized. A
	// duplicate key keeps the first occurrence; the source key is declared
	// unique so this only matters for malformed input.
	valid := make([]domain.Task, 0, len(tasks))
	known := make(map[domain.TaskKey]bool, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			summary.MalformedTasks++
			logger.Warn("excluding malformed task row",
				"task_id", t.TaskID,
				"client", t.Client,
				"error", err)
			continue
		}
		key := t.Key()
		if known[key] {
			continue
		}
		known[key] = true
		valid = append(valid, t)
	}

	// Fold each group of actions down to its winner. No locks, no "best so
	// far" shared state: each key's reduction is independent.
	winners := make(map[domain.TaskKey]domain.Action, len(valid))
	for _, a := range actions {
		key := a.Key()
		if !known[key] {
			summary.OrphanActions++
			continue
		}
		current, ok := winners[key]
		if !ok || beats(a, current) {
			winners[key] = a
		}
	}

	if summary.OrphanActions > 0 {
		logger.Info("dropped orphan actions",
			"count", summary.OrphanActions)
	}

	rows := make([]domain.AnalyticRow, 0, len(valid))
	for _, t := range valid {
		rows = append(rows, buildRow(t, winners, now))
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TaskID != rows[j].TaskID {
			return rows[i].TaskID < rows[j].TaskID
		}
		return rows[i].Client < rows[j].Client
	})

	summary.RowsOut = len(rows)
	return rows, summary
}

// beats reports whether action a wins resolution over action b.
// Later action_at wins; on a timestamp tie the higher sort_order wins; a
// residual tie falls through to an ordered string comparison so the
// outcome never depends on input order.
func beats(a, b domain.Action) bool {
	if !a.ActionAt.Equal(b.ActionAt) {
		return a.ActionAt.After(b.ActionAt)
	}
	if a.SortOrder != b.SortOrder {
		return a.SortOrder > b.SortOrder
	}
	if c := strings.Compare(a.ActionCode, b.ActionCode); c != 0 {
		return c > 0
	}
	return strings.Compare(a.ActionEmployee, b.ActionEmployee) > 0
}

// buildRow joins a task with its winning action, if any. The winning
// action's department, division and job classification supersede the
// task's own values in the analytic view.
func buildRow(t domain.Task, winners map[domain.TaskKey]domain.Action, now time.Time) domain.AnalyticRow {
	row := domain.AnalyticRow{
		TaskID:            t.TaskID,
		Client:            t.Client,
		LiveIssue:         t.LiveIssue,
		CreatedAt:         t.CreatedAt,
		Department:        t.Department,
		AssignedTo:        t.AssignedTo,
		Division:          t.Division,
		JobClassification: t.JobClassification,
		Status:            t.Status,
		Product:           t.Product,
		TaskClass:         t.TaskClass,
	}

	a, ok := winners[t.Key()]
	if !ok {
		return row
	}

	at := a.ActionAt
	row.LastActionAt = &at
	row.LastActionCode = a.ActionCode
	row.LastActionEmployee = a.ActionEmployee
	if a.Department != "" {
		row.Department = a.Department
	}
	if a.Division != "" {
		row.Division = a.Division
	}
	if a.JobClassification != "" {
		row.JobClassification = a.JobClassification
	}
	row.DaysSinceLastAction = DaysSince(row.LastActionAt, now)

	return row
}
