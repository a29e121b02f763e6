package constants

const (
	AppName           = "ownit"
	DefaultConfigPath = "~/.config/ownit/ownit.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date-key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultMaxLookbackDays bounds the backward walk of the streak calculator
	DefaultMaxLookbackDays = 365

	// Agent constants
	AgentLockfileName  = "ownit-agent.lock"
	AgentProcessName   = "ownit-agent"
	AgentAppIdentifier = "com.ownitapp.ownit"
)
