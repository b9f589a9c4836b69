package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/reeflog/reeflog/internal/backend"
)

type (
	Config struct {
		App
		Database
		API
		Queue
		Session
		Global
	}

	App struct {
		Mode backend.Mode
	}
	Database struct {
		Path string
	}
	API struct {
		BaseURL string
		Timeout time.Duration
	}
	Queue struct {
		Path          string // defaults to the main DB path with a -queue suffix
		DrainSchedule string // cron format, e.g. "@every 1m"
	}
	Session struct {
		TokenPath string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("reeflog_mode", string(backend.ModeLocal))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("api_base_url", "https://api.reeflog.app")
	v.SetDefault("api_timeout", "30s")
	v.SetDefault("queue_path", "")
	v.SetDefault("queue_drain_schedule", "@every 1m")
	v.SetDefault("session_token_path", DefaultTokenPath)
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	cfg := &Config{
		App: App{
			Mode: parseMode(v.GetString("REEFLOG_MODE")),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		API: API{
			BaseURL: v.GetString("API_BASE_URL"),
			Timeout: v.GetDuration("API_TIMEOUT"),
		},
		Queue: Queue{
			Path:          v.GetString("QUEUE_PATH"),
			DrainSchedule: v.GetString("QUEUE_DRAIN_SCHEDULE"),
		},
		Session: Session{
			TokenPath: v.GetString("SESSION_TOKEN_PATH"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}

	if cfg.Queue.Path == "" {
		cfg.Queue.Path = QueuePathFor(cfg.Database.Path)
	}

	return cfg
}

func parseMode(s string) backend.Mode {
	if strings.EqualFold(s, string(backend.ModeRemote)) {
		return backend.ModeRemote
	}
	return backend.ModeLocal
}

// QueuePathFor derives the offline queue database path from the main
// database path: reeflog.db -> reeflog-queue.db.
func QueuePathFor(dbPath string) string {
	dir := filepath.Dir(dbPath)
	base := filepath.Base(dbPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	return filepath.Join(dir, name+"-queue"+ext)
}
