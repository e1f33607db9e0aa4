package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"supportdesk/internal/application/ticket/usecases"
	"supportdesk/internal/domain/crm"
	"supportdesk/internal/domain/helpdesk"
)

func TestWriteTicketDetail_CRMStates(t *testing.T) {
	tests := []struct {
		name    string
		lookup  usecases.CRMLookup
		want    string
		notWant string
	}{
		{
			name:    "found",
			lookup:  usecases.CRMLookup{State: usecases.CRMFound, Contact: &crm.Contact{Email: "ana@example.com", Name: "Ana", Company: "Acme"}},
			want:    "Company:",
			notWant: "Unavailable",
		},
		{
			name:    "not found",
			lookup:  usecases.CRMLookup{State: usecases.CRMNotFound, Message: "No CRM contact found for this email"},
			want:    "  No CRM contact found for this email",
			notWant: "Unavailable",
		},
		{
			name:   "failed",
			lookup: usecases.CRMLookup{State: usecases.CRMFailed, Message: "Failed to load CRM contact data"},
			want:   "  Unavailable: Failed to load CRM contact data",
		},
		{
			name:    "skipped",
			lookup:  usecases.CRMLookup{},
			want:    "No requester email to look up",
			notWant: "Unavailable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			writeTicketDetail(&out, &usecases.TicketDetail{
				Ticket: helpdesk.Ticket{ID: 7, Subject: "Hello"},
				CRM:    tt.lookup,
			})

			assert.Contains(t, out.String(), tt.want)
			if tt.notWant != "" {
				assert.NotContains(t, out.String(), tt.notWant)
			}
		})
	}
}
