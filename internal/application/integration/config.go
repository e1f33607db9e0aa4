// Package integration keeps the user's helpdesk and CRM credentials and saves
// them to the backend.
package integration

import (
	"strings"

	"supportdesk/internal/domain/user"
)

// Config is the credential set for the two external integrations.
type Config struct {
	HelpdeskAPIKey string
	HelpdeskDomain string
	CRMToken       string
}

// HelpdeskConfigured gates every ticket operation.
func (c Config) HelpdeskConfigured() bool {
	return strings.TrimSpace(c.HelpdeskAPIKey) != "" && strings.TrimSpace(c.HelpdeskDomain) != ""
}

func (c Config) CRMConfigured() bool {
	return strings.TrimSpace(c.CRMToken) != ""
}

// FromUser reads the credentials the backend echoes back on the user payload.
func FromUser(u *user.User) Config {
	if u == nil {
		return Config{}
	}
	return Config{
		HelpdeskAPIKey: u.HelpdeskAPIKey,
		HelpdeskDomain: u.HelpdeskDomain,
		CRMToken:       u.CRMToken,
	}
}
