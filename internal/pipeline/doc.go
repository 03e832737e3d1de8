// Package pipeline orchestrates one full derivation run: read the source
// relations, resolve the latest action per task, derive metrics, and
// export the snapshot. A run is a pure read-transform-write sequence with
// no retained state, so it is idempotent and safe to invoke repeatedly.
package pipeline
