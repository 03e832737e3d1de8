// Package resolve implements the latest-action resolution engine.
// Given a snapshot of the Tasks and Actions relations it determines, for
// every (task_id, client) pair, the single authoritative latest action and
// joins it with the task's attributes to produce one analytic row per task.
// Resolution is a pure function of its inputs and the supplied reference
// time, which keeps it deterministic and testable without a database.
package resolve
