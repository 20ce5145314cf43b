package constants

const (
	AppName           = "tarefitas"
	DefaultConfigPath = "~/.config/tarefitas"
	DBFileName        = "tarefitas.db"
	Version           = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Key-value storage keys for persisted JSON blobs
	KeySettings   = "settings"
	KeyAvatarURI  = "avatar_uri"
	KeyOnboarding = "onboarding"

	// Settings defaults
	DefaultTheme           = "light"
	DefaultTintColor       = "#6200ee"
	DefaultForegroundColor = "#ffffff"
)
