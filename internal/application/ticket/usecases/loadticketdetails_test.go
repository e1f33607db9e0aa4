package usecases

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportdesk/internal/domain/crm"
	"supportdesk/internal/domain/helpdesk"
	"supportdesk/internal/domain/user"
	"supportdesk/internal/infrastructure/gateway"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
	"supportdesk/internal/testutil/fakebackend"
)

func newDetailBackend(t *testing.T) (*fakebackend.Backend, *gateway.Client) {
	be := fakebackend.New()
	token := be.AddUser(user.User{Name: "Agent", Email: "agent@example.com"}, "secret1")
	be.SetTickets([]helpdesk.Ticket{
		{ID: 42, Subject: "Billing question", Status: helpdesk.StatusOpen, Priority: helpdesk.PriorityHigh, RequesterID: 9},
	})
	be.Contacts[9] = helpdesk.Contact{ID: 9, Name: "Ana+Tag", Email: "ana+vip@example.com"}
	be.CRMContacts["ana+vip@example.com"] = crm.Contact{
		ID:             "501",
		Email:          "ana+vip@example.com",
		Name:           "Ana Tag",
		LifecycleStage: "salesQualifiedLead",
		Company:        "Acme",
	}
	agentID := int64(3)
	be.Conversations[42] = []helpdesk.Conversation{
		{ID: 1, TicketID: 42, BodyText: "I was charged twice", FromEmail: "ana+vip@example.com"},
		{ID: 2, TicketID: 42, Body: "<p>Refund issued</p>", UserID: &agentID},
	}
	return be, gateway.NewClient(be.Start(t), staticToken(token))
}

func TestLoadTicketDetailsUseCase_Success(t *testing.T) {
	be, gw := newDetailBackend(t)
	notifier := &mockNotifier{}
	uc := NewLoadTicketDetailsUseCase(gw, notifier, logger.NewNopLogger())

	detail, err := uc.Execute(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, "Billing question", detail.Ticket.Subject)
	assert.Equal(t, "Ana+Tag", detail.Ticket.DisplayRequester())
	assert.Equal(t, CRMFound, detail.CRM.State)
	require.NotNil(t, detail.CRM.Contact)
	assert.Equal(t, "Sales Qualified Lead", detail.CRM.Contact.LifecycleLabel())
	require.Len(t, detail.Conversations, 2)
	assert.True(t, detail.Conversations[0].IsCustomer())
	assert.Equal(t, "Refund issued", detail.Conversations[1].PlainText())
	assert.Empty(t, notifier.Errors())

	// Calls are strictly sequential in this order.
	assert.Equal(t, []string{
		"GET /api/freshdesk/tickets/42",
		"GET /api/freshdesk/contacts/9",
		"GET /api/hubspot/contact?email=ana%2Bvip%40example.com",
		"GET /api/freshdesk/tickets/42/conversations",
	}, be.Calls())
}

func TestLoadTicketDetailsUseCase_TicketNotFound(t *testing.T) {
	be, gw := newDetailBackend(t)
	notifier := &mockNotifier{}
	uc := NewLoadTicketDetailsUseCase(gw, notifier, logger.NewNopLogger())

	detail, err := uc.Execute(context.Background(), 404)

	require.Error(t, err)
	assert.Nil(t, detail)
	assert.Equal(t, http.StatusNotFound, errors.StatusCode(err))
	assert.True(t, errors.IsReported(err))
	assert.Equal(t, []string{"Failed to load ticket details: Ticket not found"}, notifier.Errors())
	assert.Len(t, be.Calls(), 1, "nothing after the ticket fetch")
}

func TestLoadTicketDetailsUseCase_CRMNotFoundUsesRemoteMessage(t *testing.T) {
	be, gw := newDetailBackend(t)
	delete(be.CRMContacts, "ana+vip@example.com")
	uc := NewLoadTicketDetailsUseCase(gw, &mockNotifier{}, logger.NewNopLogger())

	detail, err := uc.Execute(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, CRMNotFound, detail.CRM.State)
	assert.Nil(t, detail.CRM.Contact)
	assert.Equal(t, "No HubSpot contact found for ana+vip@example.com", detail.CRM.Message)
}

func TestLoadTicketDetailsUseCase_CRMLookupStates(t *testing.T) {
	ticketWithRequester := func(ctx context.Context, id int64) gateway.Result {
		return okJSON(`{"id":5,"subject":"s","status":2,"requester_id":50}`)
	}
	contactWithEmail := func(ctx context.Context, id int64) gateway.Result {
		return okJSON(`{"id":50,"name":"Lin","email":"lin@example.com"}`)
	}

	tests := []struct {
		name    string
		crm     func(ctx context.Context, email string) gateway.Result
		want    CRMState
		message string
	}{
		{
			name:    "transport failure",
			crm:     func(ctx context.Context, email string) gateway.Result { return gateway.Result{Message: "dial tcp: refused"} },
			want:    CRMFailed,
			message: "Failed to load CRM contact data",
		},
		{
			name:    "rejected without message",
			crm:     func(ctx context.Context, email string) gateway.Result { return gateway.Result{StatusCode: 404} },
			want:    CRMNotFound,
			message: "No CRM contact found for this email",
		},
		{
			name:    "success without data",
			crm:     func(ctx context.Context, email string) gateway.Result { return okJSON(`null`) },
			want:    CRMNotFound,
			message: "No CRM contact found for this email",
		},
		{
			name: "found",
			crm: func(ctx context.Context, email string) gateway.Result {
				return okJSON(`{"id":77,"email":"lin@example.com","name":"Lin"}`)
			},
			want: CRMFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockTicketGateway{
				GetTicketFunc:            ticketWithRequester,
				GetContactFunc:           contactWithEmail,
				GetCRMContactByEmailFunc: tt.crm,
			}
			uc := NewLoadTicketDetailsUseCase(gw, &mockNotifier{}, logger.NewNopLogger())

			detail, err := uc.Execute(context.Background(), 5)

			require.NoError(t, err)
			assert.Equal(t, tt.want, detail.CRM.State)
			assert.Equal(t, tt.message, detail.CRM.Message)
			assert.Equal(t, tt.want == CRMFound, detail.CRM.Contact != nil)
		})
	}
}

func TestLoadTicketDetailsUseCase_NoEmailSkipsCRM(t *testing.T) {
	gw := &mockTicketGateway{
		GetTicketFunc: func(ctx context.Context, id int64) gateway.Result {
			return okJSON(`{"id":5,"subject":"s","status":2,"requester_id":50}`)
		},
		GetContactFunc: func(ctx context.Context, id int64) gateway.Result {
			return okJSON(`{"id":50,"name":"Phone Only","email":""}`)
		},
	}
	uc := NewLoadTicketDetailsUseCase(gw, &mockNotifier{}, logger.NewNopLogger())

	detail, err := uc.Execute(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, CRMSkipped, detail.CRM.State)
	assert.Empty(t, detail.CRM.Message)
	assert.Zero(t, gw.crmCalls.Load())
	assert.Equal(t, "Phone Only", detail.Ticket.DisplayRequester())
}

func TestLoadTicketDetailsUseCase_RequesterFailureKeepsTicketFields(t *testing.T) {
	gw := &mockTicketGateway{
		GetTicketFunc: func(ctx context.Context, id int64) gateway.Result {
			return okJSON(`{"id":5,"subject":"s","status":2,"requester_id":50}`)
		},
	}
	uc := NewLoadTicketDetailsUseCase(gw, &mockNotifier{}, logger.NewNopLogger())

	detail, err := uc.Execute(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "50", detail.Ticket.DisplayRequester())
	assert.Equal(t, CRMSkipped, detail.CRM.State)
}

func TestLoadTicketDetailsUseCase_ConversationFailureLeavesEmptyList(t *testing.T) {
	gw := &mockTicketGateway{
		GetTicketFunc: func(ctx context.Context, id int64) gateway.Result {
			return okJSON(`{"id":5,"subject":"s","status":2,"requester_id":50}`)
		},
		GetTicketConversationsFunc: func(ctx context.Context, id int64) gateway.Result {
			return gateway.Result{StatusCode: 502, Message: "Bad gateway"}
		},
	}
	notifier := &mockNotifier{}
	uc := NewLoadTicketDetailsUseCase(gw, notifier, logger.NewNopLogger())

	detail, err := uc.Execute(context.Background(), 5)

	require.NoError(t, err)
	assert.NotNil(t, detail.Conversations)
	assert.Empty(t, detail.Conversations)
	assert.Empty(t, notifier.Errors())
}

func TestLoadTicketDetailsUseCase_CancelledIsSilent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gw := &mockTicketGateway{
		GetTicketFunc: func(context.Context, int64) gateway.Result {
			cancel()
			return gateway.Result{Message: "context canceled"}
		},
	}
	notifier := &mockNotifier{}
	uc := NewLoadTicketDetailsUseCase(gw, notifier, logger.NewNopLogger())

	_, err := uc.Execute(ctx, 5)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, notifier.Errors())
}
