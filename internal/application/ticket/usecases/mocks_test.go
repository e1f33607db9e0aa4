package usecases

import (
	"context"
	"sync"
	"sync/atomic"

	"supportdesk/internal/infrastructure/gateway"
)

type mockTicketGateway struct {
	ListTicketsFunc            func(ctx context.Context) gateway.Result
	GetTicketFunc              func(ctx context.Context, ticketID int64) gateway.Result
	GetTicketConversationsFunc func(ctx context.Context, ticketID int64) gateway.Result
	GetContactFunc             func(ctx context.Context, requesterID int64) gateway.Result
	GetCRMContactByEmailFunc   func(ctx context.Context, email string) gateway.Result

	contactCalls atomic.Int32
	crmCalls     atomic.Int32
}

func (m *mockTicketGateway) ListTickets(ctx context.Context) gateway.Result {
	if m.ListTicketsFunc != nil {
		return m.ListTicketsFunc(ctx)
	}
	return okJSON(`[]`)
}

func (m *mockTicketGateway) GetTicket(ctx context.Context, ticketID int64) gateway.Result {
	if m.GetTicketFunc != nil {
		return m.GetTicketFunc(ctx, ticketID)
	}
	return gateway.Result{StatusCode: 404, Message: "Ticket not found"}
}

func (m *mockTicketGateway) GetTicketConversations(ctx context.Context, ticketID int64) gateway.Result {
	if m.GetTicketConversationsFunc != nil {
		return m.GetTicketConversationsFunc(ctx, ticketID)
	}
	return okJSON(`[]`)
}

func (m *mockTicketGateway) GetContact(ctx context.Context, requesterID int64) gateway.Result {
	m.contactCalls.Add(1)
	if m.GetContactFunc != nil {
		return m.GetContactFunc(ctx, requesterID)
	}
	return gateway.Result{StatusCode: 404, Message: "Contact not found"}
}

func (m *mockTicketGateway) GetCRMContactByEmail(ctx context.Context, email string) gateway.Result {
	m.crmCalls.Add(1)
	if m.GetCRMContactByEmailFunc != nil {
		return m.GetCRMContactByEmailFunc(ctx, email)
	}
	return gateway.Result{StatusCode: 404, Message: "not found"}
}

func okJSON(body string) gateway.Result {
	return gateway.Result{Success: true, StatusCode: 200, Data: []byte(body)}
}

type mockNotifier struct {
	mu     sync.Mutex
	errors []string
}

func (m *mockNotifier) Error(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, message)
}

func (m *mockNotifier) Errors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.errors...)
}

type mockDetailLoader struct {
	ExecuteFunc func(ctx context.Context, ticketID int64) (*TicketDetail, error)
}

func (m *mockDetailLoader) Execute(ctx context.Context, ticketID int64) (*TicketDetail, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, ticketID)
	}
	return &TicketDetail{}, nil
}
