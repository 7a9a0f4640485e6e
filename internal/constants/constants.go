package constants

const (
	AppName            = "habitgrid"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habitgrid"
	Version            = "v0.1.0"

	// StorageKey is the fixed key the whole application state is stored under
	StorageKey = "habitgrid-data"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backend names
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	// Environment overrides
	EnvDBConnection = "HABITGRID_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitgrid-"

	// Notify constants
	NotifierLockfileName   = "habitgrid-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.habitgrid"
)
