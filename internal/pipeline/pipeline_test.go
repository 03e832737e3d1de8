package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasklens/internal/config"
	"github.com/phrazzld/tasklens/internal/domain"
	"github.com/phrazzld/tasklens/internal/store"
)

// fakeSource is an in-memory SourceReader for pipeline tests.
type fakeSource struct {
	tasks      []domain.Task
	actions    []domain.Action
	tasksErr   error
	actionsErr error
}

func (f *fakeSource) ReadTasks(ctx context.Context) ([]domain.Task, error) {
	if f.tasksErr != nil {
		return nil, f.tasksErr
	}
	return f.tasks, nil
}

func (f *fakeSource) ReadActions(ctx context.Context) ([]domain.Action, error) {
	if f.actionsErr != nil {
		return nil, f.actionsErr
	}
	return f.actions, nil
}

func exportConfig(dir string) config.ExportConfig {
	return config.ExportConfig{Dir: dir, TasksCSV: "tasks_daily.csv"}
}

func TestRunnerFullRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := &fakeSource{
		tasks: []domain.Task{
			{TaskID: "T1", Client: "C1", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			{TaskID: "", Client: "C1"}, // malformed, excluded
		},
		actions: []domain.Action{
			{TaskID: "T1", Client: "C1", ActionAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), ActionCode: "A1", SortOrder: 1},
			{TaskID: "T1", Client: "C1", ActionAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), ActionCode: "A2", SortOrder: 2},
			{TaskID: "NOPE", Client: "C1", ActionAt: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), ActionCode: "X", SortOrder: 1},
		},
	}

	runner := NewRunner(source, exportConfig(dir), nil)
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	summary, err := runner.Run(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Rows)
	assert.Equal(t, 1, summary.MalformedTasks)
	assert.Equal(t, 1, summary.OrphanActions)
	assert.NotEqual(t, "", summary.RunID.String())

	content, err := os.ReadFile(summary.SnapshotPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], ",A2,", "tie must resolve to the higher sort_order")
	assert.True(t, strings.HasSuffix(lines[1], ",7"), "seven whole days since last action: %s", lines[1])

	assert.FileExists(t, summary.BackupPath)
}

func TestRunnerIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := &fakeSource{
		tasks: []domain.Task{
			{TaskID: "T1", Client: "C1", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
		actions: []domain.Action{
			{TaskID: "T1", Client: "C1", ActionAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), ActionCode: "A1", SortOrder: 1},
		},
	}

	runner := NewRunner(source, exportConfig(dir), nil)
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	first, err := runner.Run(context.Background(), now)
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(first.SnapshotPath)
	require.NoError(t, err)

	second, err := runner.Run(context.Background(), now)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(second.SnapshotPath)
	require.NoError(t, err)

	assert.Equal(t, firstBytes, secondBytes)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRunnerSourceFailurePreservesSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dest := filepath.Join(dir, "tasks_daily.csv")
	stale := []byte("task_id,client\nT0,C0\n")
	require.NoError(t, os.WriteFile(dest, stale, 0o644))

	source := &fakeSource{tasksErr: store.ErrSourceUnavailable}
	runner := NewRunner(source, exportConfig(dir), nil)

	_, err := runner.Run(context.Background(), time.Now().UTC())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrSourceUnavailable)

	current, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, stale, current, "stale-but-valid beats no data")
}

func TestRunnerActionReadFailureAborts(t *testing.T) {
	t.Parallel()

	source := &fakeSource{
		tasks:      []domain.Task{{TaskID: "T1", Client: "C1", CreatedAt: time.Now()}},
		actionsErr: store.ErrSourceUnavailable,
	}
	runner := NewRunner(source, exportConfig(t.TempDir()), nil)

	_, err := runner.Run(context.Background(), time.Now().UTC())
	assert.ErrorIs(t, err, store.ErrSourceUnavailable)
}

func TestRunnerZeroRowsIsSuccess(t *testing.T) {
	t.Parallel()

	runner := NewRunner(&fakeSource{}, exportConfig(t.TempDir()), nil)

	summary, err := runner.Run(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, summary.Rows)
	assert.FileExists(t, summary.SnapshotPath)
}
