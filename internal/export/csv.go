package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/tasklens/internal/domain"
)

// ErrExportIO is returned when the snapshot cannot be written or renamed
// into place. The previous snapshot, if any, is left intact.
var ErrExportIO = errors.New("export I/O failure")

// Header is the fixed column order of the snapshot. Downstream consumers
// parse by name and position; any change here is a breaking change.
var Header = []string{
	"task_id",
	"client",
	"live_issue",
	"created_datetime",
	"last_action_datetime",
	"last_action_code",
	"last_action_employee",
	"department",
	"assigned_to",
	"division",
	"job_classification",
	"status",
	"product",
	"task_class",
	"days_since_last_action",
}

// backupTimeLayout matches the naming convention the retention tooling
// expects: <basename>_<YYYYMMDD_HHMMSS>.csv.
const backupTimeLayout = "20060102_150405"

// Exporter writes analytic snapshots to a destination path.
type Exporter struct {
	logger *slog.Logger
}

// NewExporter creates an Exporter. A nil logger falls back to the default.
func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

// WriteSnapshot writes rows to dest as CSV, replacing any existing file
// atomically, then copies the new snapshot to a timestamped backup in the
// same directory. It returns the backup path.
//
// The write goes to a temporary file in the destination directory which is
// fsynced and renamed into place; on any failure the temp file is removed
// and the previous snapshot is untouched. Identical input produces
// byte-for-byte identical snapshot content, so re-runs are safe under the
// scheduler's at-least-once invocation model.
func (e *Exporter) WriteSnapshot(rows []domain.AnalyticRow, dest string, now time.Time) (string, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating export directory: %v", ErrExportIO, err)
	}

	if err := e.writeAtomic(rows, dest, dir); err != nil {
		return "", err
	}

	backup := backupPath(dest, now)
	if err := copyFile(dest, backup); err != nil {
		return "", fmt.Errorf("%w: writing backup copy: %v", ErrExportIO, err)
	}

	e.logger.Info("snapshot written",
		"path", dest,
		"backup", backup,
		"rows", len(rows))

	return backup, nil
}

// writeAtomic writes the CSV content to a temp file in dir and renames it
// over dest.
func (e *Exporter) writeAtomic(rows []domain.AnalyticRow, dest, dir string) (err error) {
	tmp, err := os.CreateTemp(dir, filepath.Base(dest)+".tmp.*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrExportIO, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(Header); err != nil {
		return fmt.Errorf("%w: writing header: %v", ErrExportIO, err)
	}
	for i := range rows {
		if err = w.Write(formatRow(rows[i])); err != nil {
			return fmt.Errorf("%w: writing row %d: %v", ErrExportIO, i, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("%w: flushing: %v", ErrExportIO, err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: syncing temp file: %v", ErrExportIO, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %v", ErrExportIO, err)
	}
	if err = os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: renaming into place: %v", ErrExportIO, err)
	}
	return nil
}

// formatRow serializes one analytic row in Header order. Timestamps are
// RFC 3339 UTC; nil-valued fields become empty strings.
func formatRow(r domain.AnalyticRow) []string {
	lastAction := ""
	if r.LastActionAt != nil {
		lastAction = r.LastActionAt.UTC().Format(time.RFC3339)
	}
	days := ""
	if r.DaysSinceLastAction != nil {
		days = strconv.Itoa(*r.DaysSinceLastAction)
	}
	created := ""
	if !r.CreatedAt.IsZero() {
		created = r.CreatedAt.UTC().Format(time.RFC3339)
	}

	return []string{
		r.TaskID,
		r.Client,
		strconv.FormatBool(r.LiveIssue),
		created,
		lastAction,
		r.LastActionCode,
		r.LastActionEmployee,
		r.Department,
		r.AssignedTo,
		r.Division,
		r.JobClassification,
		r.Status,
		r.Product,
		r.TaskClass,
		days,
	}
}

// backupPath derives the timestamped backup filename for dest.
func backupPath(dest string, now time.Time) string {
	dir := filepath.Dir(dest)
	base := filepath.Base(dest)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, fmt.Sprintf("%s_%s.csv", stem, now.Format(backupTimeLayout)))
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
