package domain

import (
	"strings"
	"time"
)

// Action is a timestamped event recorded against a task: a status update,
// a reassignment, a note. A task accumulates many actions over its life;
// the resolver's job is to pick the single authoritative latest one.
//
// Department, Division and JobClassification are action-level values that
// supersede the task's own fields in the analytic view: reporting follows
// whoever acted last, not whoever the task was originally filed under.
type Action struct {
	TaskID            string    `json:"task_id"`
	Client            string    `json:"client"`
	ActionAt          time.Time `json:"action_at"`
	ActionCode        string    `json:"action_code"`
	ActionEmployee    string    `json:"action_employee"`
	SortOrder         int       `json:"sort_order"`
	Department        string    `json:"department"`
	Division          string    `json:"division"`
	JobClassification string    `json:"job_classification"`
}

// Key returns the (task_id, client) identity of the task this action
// belongs to.
func (a Action) Key() TaskKey {
	return TaskKey{TaskID: a.TaskID, Client: a.Client}
}

// Validate checks that the action can be attributed to a task and ordered
// in time.
func (a Action) Validate() error {
	if strings.TrimSpace(a.TaskID) == "" {
		return ErrTaskIDEmpty
	}
	if strings.TrimSpace(a.Client) == "" {
		return ErrClientEmpty
	}
	if a.ActionAt.IsZero() {
		return ErrActionTimeZero
	}
	return nil
}
