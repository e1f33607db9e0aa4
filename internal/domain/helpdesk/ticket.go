// Package helpdesk holds the helpdesk integration's entities as the backend
// returns them: tickets, their requesters and their conversation threads.
package helpdesk

import (
	"strconv"
	"strings"
	"time"
)

type Ticket struct {
	ID          int64     `json:"id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	RequesterID int64     `json:"requester_id"`
	Type        string    `json:"type,omitempty"`
	Source      int       `json:"source,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Filled in by enrichment, never by the ticket source. nil means unknown.
	RequesterName  *string `json:"requester_name,omitempty"`
	RequesterEmail *string `json:"requester_email,omitempty"`
}

// DisplayRequester is the requester's name when known, otherwise the raw
// requester id. It is never blank.
func (t *Ticket) DisplayRequester() string {
	if t.RequesterName != nil && strings.TrimSpace(*t.RequesterName) != "" {
		return *t.RequesterName
	}
	return strconv.FormatInt(t.RequesterID, 10)
}

// Email returns the resolved requester email or "".
func (t *Ticket) Email() string {
	if t.RequesterEmail == nil {
		return ""
	}
	return *t.RequesterEmail
}

// ApplyContact replaces the requester fields with the contact's values.
// Empty values become absent rather than empty strings.
func (t *Ticket) ApplyContact(c *Contact) {
	if c == nil {
		t.ClearRequester()
		return
	}
	t.RequesterName = optional(c.Name)
	t.RequesterEmail = optional(c.Email)
}

// ClearRequester marks both requester fields absent.
func (t *Ticket) ClearRequester() {
	t.RequesterName = nil
	t.RequesterEmail = nil
}

// Clone returns a copy that shares no mutable state with t.
func (t *Ticket) Clone() *Ticket {
	c := *t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.RequesterName != nil {
		c.RequesterName = optional(*t.RequesterName)
	}
	if t.RequesterEmail != nil {
		c.RequesterEmail = optional(*t.RequesterEmail)
	}
	return &c
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Contact is the helpdesk-side identity of a ticket requester.
type Contact struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
