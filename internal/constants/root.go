package constants

import "time"

const (
	AppName           = "dennyzen"
	Version           = "v0.3.0"
	DefaultConfigPath = "~/.config/dennyzen/dennyzen.db"

	// DateFormat is the standard date key format used throughout the application (YYYY-MM-DD).
	// All per-day state is partitioned by the viewer's local calendar date in this format.
	DateFormat = "2006-01-02"

	// KeyringUser is the account name under which the Gemini API key is stored
	// in the OS keyring (service = AppName).
	KeyringUser = "gemini-api-key"

	// APIKeyEnvVar is checked before the keyring when resolving the API key.
	APIKeyEnvVar = "GEMINI_API_KEY"

	// LockfileName guards the storage file against concurrent sessions.
	LockfileName = "dennyzen.lock"

	// DefaultRetentionDays is how many days of cached day states `prune` keeps.
	DefaultRetentionDays = 30
)

const (
	// Notify constants
	NotifyHour     = 8 // local clock hour at or after which a reminder may fire
	NotifyInterval = 60 * time.Second

	NotifyTitle = "Denný Zen"
	NotifyBody  = "Nájdite si chvíľku pre seba a prečítajte si dnešnú inšpiráciu."
)

func init() {
	// Runtime validation: a batch must hold at least the displayed item
	if BatchSize < 1 {
		panic("BatchSize must be at least 1")
	}
}
