// Package webhook holds inbound webhook events recorded by the backend.
package webhook

import (
	"encoding/json"
	"time"
)

// LogEntry is read-only; the payload is kept exactly as received.
type LogEntry struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Source    string          `json:"source"`
}
