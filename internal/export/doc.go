// Package export serializes resolved analytic rows into the CSV snapshot
// consumed by the API and BI layers. The snapshot is replaced atomically
// (temp file + rename) so readers never observe a truncated file, and each
// successful export leaves behind a timestamped backup copy for audit and
// rollback.
package export
