package domain

import (
	"strings"
	"time"
)

// TaskKey is the composite identity of a task. Every task and every action
// is addressed by the (task_id, client) pair; neither field alone is unique.
type TaskKey struct {
	TaskID string
	Client string
}

// Task is one row of the upstream Tasks relation as of the moment it was
// read. Attributes other than the key may change between pipeline runs;
// the resolver always works from the freshest snapshot available.
type Task struct {
	TaskID            string    `json:"task_id"`
	Client            string    `json:"client"`
	CreatedAt         time.Time `json:"created_at"`
	Status            string    `json:"status"`
	LiveIssue         bool      `json:"live_issue"`
	Department        string    `json:"department"`
	Division          string    `json:"division"`
	JobClassification string    `json:"job_classification"`
	AssignedTo        string    `json:"assigned_to"`
	TaskClass         string    `json:"task_class"`
	Product           string    `json:"product"`
}

// Key returns the task's composite identity.
func (t Task) Key() TaskKey {
	return TaskKey{TaskID: t.TaskID, Client: t.Client}
}

// Validate checks that the task carries a usable identity.
// Returns an error if either key field is empty or whitespace.
func (t Task) Validate() error {
	if strings.TrimSpace(t.TaskID) == "" {
		return ErrTaskIDEmpty
	}
	if strings.TrimSpace(t.Client) == "" {
		return ErrClientEmpty
	}
	return nil
}
