package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"gorm.io/gorm/logger"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Export
		ExportSync
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		Seed     bool
		LogLevel string // silent, error, warn or info
		Workers  int    // bound on concurrent storage calls
	}
	Export struct {
		Dir string // Directory for markdown exports
	}
	ExportSync struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

// GormLogLevel maps the configured level name onto gorm's logger levels.
// Unrecognised names fall back to warn.
func (d Database) GormLogLevel() logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(d.LogLevel)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_seed", true)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("dispatch_workers", DefaultDispatchWorkers)
	v.SetDefault("export_dir", DefaultExportDir)
	v.SetDefault("export_sync_enabled", false)
	v.SetDefault("export_sync_schedule", "0 * * * *") // Hourly at :00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "10m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			Seed:     v.GetBool("DATABASE_SEED"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
			Workers:  v.GetInt("DISPATCH_WORKERS"),
		},
		Export: Export{
			Dir: v.GetString("EXPORT_DIR"),
		},
		ExportSync: ExportSync{
			Enabled:  v.GetBool("EXPORT_SYNC_ENABLED"),
			Schedule: v.GetString("EXPORT_SYNC_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
