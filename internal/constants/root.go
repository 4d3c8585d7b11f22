package constants

import "time"

const (
	AppName           = "pulse"
	DefaultConfigPath = "~/.config/pulse/pulse.db"
	Version           = "v0.2.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "pulse-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "pulse-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.pulse"

	// DefaultTickInterval is how often the reminder scheduler checks for due
	// reminders. Minute granularity is the contract: a reminder matches any
	// tick that lands inside its HH:MM minute.
	DefaultTickInterval = 60 * time.Second
)
