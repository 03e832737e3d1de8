// Package ingest copies action records from the upstream operational
// database into the analytics database incrementally. The checkpoint is
// the highest action ID already landed; each sync pulls everything newer
// in bounded batches. Sync is idempotent: replaying an overlap after a
// crash re-lands records the sink already de-duplicates.
package ingest
