package constants

const (
	AppName            = "moodlog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/moodlog"
	DefaultConfigPath  = "~/.config/moodlog/moodlog.db"
	DefaultConfigFile  = "config.yaml"
	Version            = "v0.1.0"

	// StorageKey is the single key holding the serialized mood store
	StorageKey = "moodData"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Store schema versions
	SchemaVersionLegacy  = 1
	SchemaVersionCurrent = 2

	// MaxWriteAttempts bounds compare-and-swap retries when recording an entry
	MaxWriteAttempts = 5

	// Backup constants
	MaxBackups    = 14
	BackupDirName = "backups"

	// Environment variables
	EnvConfigFile     = "MOODLOG_CONFIG_FILE"
	EnvStorage        = "MOODLOG_STORAGE"
	EnvStorageKey     = "MOODLOG_STORAGE_KEY"
	EnvTimezone       = "MOODLOG_TIMEZONE"
	EnvDateBasis      = "MOODLOG_DATE_BASIS"
	EnvResetScope     = "MOODLOG_RESET_SCOPE"
	EnvLegacyLayout   = "MOODLOG_LEGACY_LAYOUT"
	EnvDebug          = "MOODLOG_DEBUG"
	EnvDBConnection   = "MOODLOG_DB_CONNECTION"
	EnvTestPostgres   = "MOODLOG_TEST_POSTGRES"
	MemoryStorageName = ":memory:"

	// PostgresConfigPath is the non-sensitive identifier reported by the PostgreSQL provider
	PostgresConfigPath = "postgresql"
)

// ChartPalette is the cyclic palette used for chart segments, assigned by
// first-appearance index.
var ChartPalette = []string{"#facc15", "#60a5fa", "#f87171", "#34d399", "#c084fc", "#fb923c"}
