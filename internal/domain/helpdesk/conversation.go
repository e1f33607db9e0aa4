package helpdesk

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

var plainTextPolicy = bluemonday.StrictPolicy()

// Conversation is one message in a ticket thread. A nil UserID means the
// message came from the customer rather than an agent.
type Conversation struct {
	ID          int64        `json:"id"`
	TicketID    int64        `json:"ticket_id"`
	BodyText    string       `json:"body_text"`
	Body        string       `json:"body,omitempty"`
	UserID      *int64       `json:"user_id"`
	FromEmail   string       `json:"from_email,omitempty"`
	ToEmails    []string     `json:"to_emails,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at,omitempty"`
}

type Attachment struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	URL         string `json:"attachment_url,omitempty"`
}

func (c *Conversation) IsCustomer() bool {
	return c.UserID == nil
}

// Author is "Customer" or "Agent", with the sender address when known.
func (c *Conversation) Author() string {
	who := "Agent"
	if c.IsCustomer() {
		who = "Customer"
	}
	if c.FromEmail != "" {
		return who + " <" + c.FromEmail + ">"
	}
	return who
}

// PlainText prefers the backend's text body and falls back to the HTML body
// with all markup stripped.
func (c *Conversation) PlainText() string {
	if strings.TrimSpace(c.BodyText) != "" {
		return c.BodyText
	}
	return StripHTML(c.Body)
}

// StripHTML removes all markup from an HTML fragment and unescapes entities.
func StripHTML(fragment string) string {
	return strings.TrimSpace(html.UnescapeString(plainTextPolicy.Sanitize(fragment)))
}
