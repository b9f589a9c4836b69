package config

const (
	DefaultDatabasePath = "./reeflog.db"
	DefaultTokenPath    = "./.reeflog-session"
)
