package domain

import (
	"strings"
	"time"
)

// ActionRecord is one wide row pulled from the upstream operational
// database during incremental sync: an action joined with its task's
// attributes and the acting employee's org data. ActionID is the upstream
// monotonically increasing surrogate key; the sync checkpoint is simply
// the highest ActionID already landed in the analytics store.
type ActionRecord struct {
	ActionID          int64     `json:"action_id"`
	TaskID            string    `json:"task_id"`
	Client            string    `json:"client"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	LiveIssue         bool      `json:"live_issue"`
	TaskClass         string    `json:"task_class"`
	Product           string    `json:"product"`
	AssignedTo        string    `json:"assigned_to"`
	ActionAt          time.Time `json:"action_at"`
	ActionCode        string    `json:"action_code"`
	ActionEmployee    string    `json:"action_employee"`
	SortOrder         int       `json:"sort_order"`
	Department        string    `json:"department"`
	Division          string    `json:"division"`
	JobClassification string    `json:"job_classification"`
}

// Key returns the (task_id, client) identity of the record's task.
func (r ActionRecord) Key() TaskKey {
	return TaskKey{TaskID: r.TaskID, Client: r.Client}
}

// Task projects the record's task-level attributes.
func (r ActionRecord) Task() Task {
	return Task{
		TaskID:            r.TaskID,
		Client:            r.Client,
		CreatedAt:         r.CreatedAt,
		Status:            r.Status,
		LiveIssue:         r.LiveIssue,
		Department:        r.Department,
		Division:          r.Division,
		JobClassification: r.JobClassification,
		AssignedTo:        r.AssignedTo,
		TaskClass:         r.TaskClass,
		Product:           r.Product,
	}
}

// Action projects the record's action-level attributes.
func (r ActionRecord) Action() Action {
	return Action{
		TaskID:            r.TaskID,
		Client:            r.Client,
		ActionAt:          r.ActionAt,
		ActionCode:        r.ActionCode,
		ActionEmployee:    r.ActionEmployee,
		SortOrder:         r.SortOrder,
		Department:        r.Department,
		Division:          r.Division,
		JobClassification: r.JobClassification,
	}
}

// Validate checks the fields the sync pipeline depends on.
func (r ActionRecord) Validate() error {
	if r.ActionID <= 0 {
		return ErrValidation
	}
	if strings.TrimSpace(r.TaskID) == "" {
		return ErrTaskIDEmpty
	}
	if strings.TrimSpace(r.Client) == "" {
		return ErrClientEmpty
	}
	if r.ActionAt.IsZero() {
		return ErrActionTimeZero
	}
	return nil
}
