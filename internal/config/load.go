package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment variables the loader reads, e.g.
// TASKLENS_SOURCE_URL, TASKLENS_EXPORT_DIR.
const envPrefix = "TASKLENS"

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over file values. Returns a populated Config or an error if
// loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults cover it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the default value for every key. Registering each
// key also makes it visible to AutomaticEnv.
func setDefaults(v *viper.Viper) {
	v.SetDefault("job.log_level", "info")
	v.SetDefault("source.url", "")
	v.SetDefault("export.dir", "/data/exports")
	v.SetDefault("export.tasks_csv", "tasks_daily.csv")
	v.SetDefault("sync.enabled", false)
	v.SetDefault("sync.upstream_url", "")
	v.SetDefault("sync.batch_size", 1000)
	v.SetDefault("sync.lookback_days", 120)
}
