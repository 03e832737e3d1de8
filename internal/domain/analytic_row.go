package domain

import "time"

// AnalyticRow is the resolved state of one task: its attributes joined with
// the fields of its latest action plus derived metrics. Rows are computed
// fresh on every pipeline run and have no identity or history of their own;
// the exported snapshot is overwritten, not appended.
//
// LastActionAt and DaysSinceLastAction are pointers because a task with no
// recorded actions still produces a row, with all action-derived fields
// empty.
type AnalyticRow struct {
	TaskID              string     `json:"task_id"`
	Client              string     `json:"client"`
	LiveIssue           bool       `json:"live_issue"`
	CreatedAt           time.Time  `json:"created_datetime"`
	LastActionAt        *time.Time `json:"last_action_datetime"`
	LastActionCode      string     `json:"last_action_code"`
	LastActionEmployee  string     `json:"last_action_employee"`
	Department          string     `json:"department"`
	AssignedTo          string     `json:"assigned_to"`
	Division            string     `json:"division"`
	JobClassification   string     `json:"job_classification"`
	Status              string     `json:"status"`
	Product             string     `json:"product"`
	TaskClass           string     `json:"task_class"`
	DaysSinceLastAction *int       `json:"days_since_last_action"`
}

// HasAction reports whether the row's task had at least one action at
// resolution time.
func (r AnalyticRow) HasAction() bool {
	return r.LastActionAt != nil
}
