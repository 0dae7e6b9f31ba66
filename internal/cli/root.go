package cli

import (
	"os"
	"time"

	"github.com/mbalaz/dennyzen/internal/constants"
	"github.com/mbalaz/dennyzen/internal/keyring"
	"github.com/mbalaz/dennyzen/internal/provider"
	"github.com/mbalaz/dennyzen/internal/session"
	"github.com/mbalaz/dennyzen/internal/storage"
)

type Context struct {
	Store    storage.Provider
	Provider provider.Client
}

// NewSession builds the session controller for a command invocation.
func (c *Context) NewSession() *session.Controller {
	return session.New(c.Store, c.Provider)
}

// ResolveAPIKey looks up the Gemini API key: environment first (which godotenv
// may have populated from a .env file), then the OS keyring.
func ResolveAPIKey() (string, error) {
	if key := os.Getenv(constants.APIKeyEnvVar); key != "" {
		return key, nil
	}
	return keyring.GetAPIKey()
}

// Today returns the current local date key.
func Today() string {
	return time.Now().Format(constants.DateFormat)
}
