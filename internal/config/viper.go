package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper
// counterparts.
const (
	keySampleInterval     = "tracking.sample_interval"
	keyIdleTimeout        = "tracking.idle_timeout"
	keyMinDuration        = "tracking.min_duration"
	keyGapThreshold       = "tracking.gap_threshold"
	keyStopCmd            = "tracking.stop_cmd"
	keyBackupEnabled      = "database.backup.enabled"
	keyBackupIntervalDays = "database.backup.interval_days"
	keyExportFormat       = "export.default_format"
	keyExportAnonymize    = "export.anonymize"
	keyProductiveHours    = "goals.daily_productive_hours"
	keyDistractingHours   = "goals.max_distracting_hours"
	keyNotifyEnabled      = "notifications.enabled"
	keyDarkTheme          = "display.dark_theme"
)

// WithViperConfig returns an Option that loads configuration from the
// YAML file at configPath, writing a default config first if none
// exists. Values absent from the file fall back to the registered
// defaults, so a partial config merges cleanly into the typed struct.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setViperDefaults(v)

		err := v.ReadInConfig()
		if err == nil {
			return v.Unmarshal(c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config file failed: %w", err)
		}

		if err := v.WriteConfig(); err != nil {
			return fmt.Errorf("writing default config failed: %w", err)
		}

		return v.Unmarshal(c)
	}
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault(keySampleInterval, "10s")
	v.SetDefault(keyIdleTimeout, "5m")
	v.SetDefault(keyMinDuration, "30s")
	v.SetDefault(keyGapThreshold, "10s")
	v.SetDefault(keyStopCmd, "")
	v.SetDefault(keyBackupEnabled, false)
	v.SetDefault(keyBackupIntervalDays, 7)
	v.SetDefault(keyExportFormat, "csv")
	v.SetDefault(keyExportAnonymize, false)
	v.SetDefault(keyProductiveHours, 0)
	v.SetDefault(keyDistractingHours, 0)
	v.SetDefault(keyNotifyEnabled, true)
	v.SetDefault(keyDarkTheme, true)
}
