// Package user models the signed-in identity and the session that carries it.
package user

// User is the backend's user payload. The integration credentials saved for
// the user come back with it, which is how a restored session knows which
// integrations are configured.
type User struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	HelpdeskAPIKey string `json:"freshdeskApiKey,omitempty"`
	HelpdeskDomain string `json:"freshdeskDomain,omitempty"`
	CRMToken       string `json:"hubspotToken,omitempty"`
}

// Session is the current authenticated identity. A zero Session is signed out.
type Session struct {
	Token string
	User  *User
}

func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}
