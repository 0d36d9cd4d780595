package constants

import "time"

const (
	AppName            = "lifedash"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/lifedash/lifedash.db"
	Version            = "v0.3.0"

	// EnvDBConnection overrides the configured store with a connection string.
	EnvDBConnection = "LIFEDASH_DB_CONNECTION"
	// KeyringConfigValue selects the PostgreSQL connection string stored in the OS keyring.
	KeyringConfigValue = "keyring"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lifedash-"
	BackupFileSuffix = ".db"

	// Log file constants
	LogDirName     = "logs"
	LogFileName    = "lifedash.log"
	LogMaxSizeMB   = 10
	LogMaxBackups  = 3
	LogMaxAgeDays  = 28
	LogCompression = true

	// Postgres pool settings
	PostgresMaxOpenConns    = 25
	PostgresMaxIdleConns    = 25
	PostgresConnMaxLifetime = 5 * time.Minute

	// MoodMovingAverageWindow is the number of trailing entries in the mood moving average.
	MoodMovingAverageWindow = 7

	// Mood rating bounds
	MinMoodRating = 1
	MaxMoodRating = 5
)
