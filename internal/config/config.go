// Package config is responsible for creating and managing the Tempo
// configuration and its file paths.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Tracking      TrackingConfig     `mapstructure:"tracking"`
		Database      DatabaseConfig     `mapstructure:"database"`
		Export        ExportConfig       `mapstructure:"export"`
		Goals         GoalsConfig        `mapstructure:"goals"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
	}

	// TrackingConfig holds settings for the window sampler and for
	// session aggregation.
	TrackingConfig struct {
		SampleInterval time.Duration `mapstructure:"sample_interval"`
		IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
		MinDuration    time.Duration `mapstructure:"min_duration"`
		GapThreshold   time.Duration `mapstructure:"gap_threshold"`
		StopCmd        string        `mapstructure:"stop_cmd"`
	}

	// DatabaseConfig holds database maintenance settings.
	DatabaseConfig struct {
		Backup BackupConfig `mapstructure:"backup"`
	}

	// BackupConfig holds automatic backup settings.
	BackupConfig struct {
		Enabled      bool `mapstructure:"enabled"`
		IntervalDays int  `mapstructure:"interval_days"`
	}

	// ExportConfig holds data export settings.
	ExportConfig struct {
		DefaultFormat string `mapstructure:"default_format"`
		Anonymize     bool   `mapstructure:"anonymize"`
	}

	// GoalsConfig holds daily productivity targets.
	GoalsConfig struct {
		DailyProductiveHours float64 `mapstructure:"daily_productive_hours"`
		MaxDistractingHours  float64 `mapstructure:"max_distracting_hours"`
	}

	// NotificationConfig holds desktop notification settings.
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.1"

var (
	configDir      = "tempo"
	configFileName = "config.yml"
	dbFileName     = "tempo.db"
	rulesFileName  = "rules.yml"
	logFileName    = "tempo.log"
	pidFileName    = "tempo.pid"
	dbFilePath     string
	configFilePath string
	rulesFilePath  string
	logFilePath    string
	pidFilePath    string
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func RulesFilePath() string {
	return rulesFilePath
}

func LogFilePath() string {
	return logFilePath
}

func PIDFilePath() string {
	return pidFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

func InitializePaths() {
	tempoEnv := strings.TrimSpace(os.Getenv("TEMPO_ENV"))
	if tempoEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", tempoEnv)
		dbFileName = fmt.Sprintf("tempo_%s.db", tempoEnv)
		rulesFileName = fmt.Sprintf("rules_%s.yml", tempoEnv)
		logFileName = fmt.Sprintf("tempo_%s.log", tempoEnv)
		pidFileName = fmt.Sprintf("tempo_%s.pid", tempoEnv)
	}

	var err error

	configFilePath, err = xdg.ConfigFile(filepath.Join(configDir, configFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	rulesFilePath, err = xdg.ConfigFile(filepath.Join(configDir, rulesFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	pidFilePath = filepath.Join(dataDir, pidFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}

// New creates a new Config with default values and applies options.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Tracking.SampleInterval <= 0 {
		return errInvalidSampleInterval
	}

	switch c.Export.DefaultFormat {
	case "csv", "json":
	default:
		return fmt.Errorf(
			"%w: %q",
			errInvalidExportFormat,
			c.Export.DefaultFormat,
		)
	}

	return nil
}
