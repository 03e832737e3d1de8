package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Job    JobConfig      `mapstructure:"job"    validate:"required"`
	Source DatabaseConfig `mapstructure:"source" validate:"required"`
	Export ExportConfig   `mapstructure:"export" validate:"required"`
	Sync   SyncConfig     `mapstructure:"sync"`
}

// JobConfig contains settings that apply to the batch job as a whole.
type JobConfig struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the connection settings for the analytics
// database holding the Task and Action relations.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// ExportConfig contains the CSV snapshot destination settings.
type ExportConfig struct {
	// Dir is the directory the snapshot and its timestamped backups are
	// written to.
	Dir string `mapstructure:"dir" validate:"required"`

	// TasksCSV is the filename of the "current" snapshot inside Dir.
	TasksCSV string `mapstructure:"tasks_csv" validate:"required"`
}

// SyncConfig contains the incremental upstream-sync settings. Sync is
// optional; when Enabled is false the job only resolves and exports from
// the analytics database.
type SyncConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// UpstreamURL is the connection string of the upstream operational
	// database. Required when Enabled is true.
	UpstreamURL string `mapstructure:"upstream_url" validate:"required_if=Enabled true,omitempty,url"`

	// BatchSize is the number of action records pulled and inserted per
	// batch.
	BatchSize int `mapstructure:"batch_size" validate:"gt=0"`

	// LookbackDays bounds how far back the initial sync reaches when no
	// checkpoint exists.
	LookbackDays int `mapstructure:"lookback_days" validate:"gt=0"`
}
