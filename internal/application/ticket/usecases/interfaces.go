package usecases

import (
	"context"

	"supportdesk/internal/domain/helpdesk"
	"supportdesk/internal/infrastructure/gateway"
)

// TicketGateway is the slice of the backend client the ticket use cases need.
type TicketGateway interface {
	ListTickets(ctx context.Context) gateway.Result
	GetTicket(ctx context.Context, ticketID int64) gateway.Result
	GetTicketConversations(ctx context.Context, ticketID int64) gateway.Result
	GetContact(ctx context.Context, requesterID int64) gateway.Result
	GetCRMContactByEmail(ctx context.Context, email string) gateway.Result
}

// Notifier surfaces primary failures to the user.
type Notifier interface {
	Error(message string)
}

type LoadTicketsExecutor interface {
	Execute(ctx context.Context) ([]helpdesk.Ticket, error)
}

type LoadTicketDetailsExecutor interface {
	Execute(ctx context.Context, ticketID int64) (*TicketDetail, error)
}
