package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasklens/internal/domain"
)

func sampleRows() []domain.AnalyticRow {
	at := time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC)
	days := 7
	return []domain.AnalyticRow{
		{
			TaskID:              "T1",
			Client:              "C1",
			LiveIssue:           true,
			CreatedAt:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			LastActionAt:        &at,
			LastActionCode:      "A2",
			LastActionEmployee:  "E7",
			Department:          "Support",
			AssignedTo:          "E1",
			Division:            "EMEA",
			JobClassification:   "L2",
			Status:              "open",
			Product:             "billing",
			TaskClass:           "incident",
			DaysSinceLastAction: &days,
		},
		{
			TaskID:    "T2",
			Client:    "C1",
			CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Status:    "new",
		},
	}
}

func TestWriteSnapshotShape(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dest := filepath.Join(dir, "tasks_daily.csv")
	now := time.Date(2024, 1, 10, 14, 30, 45, 0, time.UTC)

	backup, err := NewExporter(nil).WriteSnapshot(sampleRows(), dest, now)
	require.NoError(t, err)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3, "header plus two rows")

	assert.Equal(t, strings.Join(Header, ","), lines[0])
	assert.Equal(t,
		"T1,C1,true,2024-01-01T00:00:00Z,2024-01-03T09:30:00Z,A2,E7,Support,E1,EMEA,L2,open,billing,incident,7",
		lines[1])
	// Zero-action row: action-derived fields are empty strings.
	assert.Equal(t,
		"T2,C1,false,2024-01-02T00:00:00Z,,,,,,,,new,,,",
		lines[2])

	assert.Equal(t, filepath.Join(dir, "tasks_daily_20240110_143045.csv"), backup)
	backupContent, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, content, backupContent, "backup must match the snapshot")
}

func TestWriteSnapshotIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dest := filepath.Join(dir, "tasks_daily.csv")
	e := NewExporter(nil)

	_, err := e.WriteSnapshot(sampleRows(), dest, time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	first, err := os.ReadFile(dest)
	require.NoError(t, err)

	_, err = e.WriteSnapshot(sampleRows(), dest, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	second, err := os.ReadFile(dest)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must produce identical bytes")
}

func TestWriteSnapshotZeroRows(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dest := filepath.Join(dir, "tasks_daily.csv")

	_, err := NewExporter(nil).WriteSnapshot(nil, dest, time.Now().UTC())
	require.NoError(t, err, "an empty snapshot is valid")

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(Header, ",")+"\n", string(content))
}

func TestWriteSnapshotLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dest := filepath.Join(dir, "tasks_daily.csv")
	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

	_, err := NewExporter(nil).WriteSnapshot(sampleRows(), dest, now)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp.")
	}
	assert.Len(t, entries, 2, "snapshot and one backup")
}

func TestWriteSnapshotPreservesPreviousOnFailure(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	dir := t.TempDir()
	dest := filepath.Join(dir, "tasks_daily.csv")
	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

	e := NewExporter(nil)
	_, err := e.WriteSnapshot(sampleRows(), dest, now)
	require.NoError(t, err)
	previous, err := os.ReadFile(dest)
	require.NoError(t, err)

	// Make the export directory unwritable; the rename target's directory
	// rejects the temp file so the write fails before touching dest.
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err = e.WriteSnapshot(sampleRows(), dest, now.Add(time.Hour))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExportIO)

	require.NoError(t, os.Chmod(dir, 0o755))
	current, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, previous, current, "failed export must not disturb the previous snapshot")
}

func TestBackupPathNaming(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)
	got := backupPath(filepath.Join("exports", "tasks_daily.csv"), now)
	assert.Equal(t, filepath.Join("exports", "tasks_daily_20240630_235959.csv"), got)
}
