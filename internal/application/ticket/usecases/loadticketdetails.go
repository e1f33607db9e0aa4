package usecases

import (
	"context"

	"supportdesk/internal/domain/crm"
	"supportdesk/internal/domain/helpdesk"
	"supportdesk/internal/infrastructure/gateway"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
)

type CRMState int

const (
	// CRMSkipped means no requester email was resolved, so no lookup was made.
	CRMSkipped CRMState = iota
	CRMFound
	CRMNotFound
	CRMFailed
)

func (s CRMState) String() string {
	switch s {
	case CRMFound:
		return "found"
	case CRMNotFound:
		return "not_found"
	case CRMFailed:
		return "failed"
	default:
		return "skipped"
	}
}

const (
	crmNotFoundMessage = "No CRM contact found for this email"
	crmFailedMessage   = "Failed to load CRM contact data"
)

// CRMLookup is the outcome of the CRM contact lookup. Contact is set only when
// State is CRMFound; Message only for CRMNotFound and CRMFailed.
type CRMLookup struct {
	State   CRMState
	Contact *crm.Contact
	Message string
}

type TicketDetail struct {
	Ticket        helpdesk.Ticket
	CRM           CRMLookup
	Conversations []helpdesk.Conversation
}

// LoadTicketDetailsUseCase loads one ticket with its requester, CRM contact
// and conversation thread. The calls run one after another.
type LoadTicketDetailsUseCase struct {
	gw       TicketGateway
	notifier Notifier
	logger   logger.Interface
}

func NewLoadTicketDetailsUseCase(
	gw TicketGateway,
	notifier Notifier,
	logger logger.Interface,
) *LoadTicketDetailsUseCase {
	return &LoadTicketDetailsUseCase{
		gw:       gw,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute fails only when the ticket itself cannot be loaded; that failure
// is shown through the notifier and returned marked as reported. A cancelled
// ctx returns ctx.Err() and shows nothing.
func (uc *LoadTicketDetailsUseCase) Execute(ctx context.Context, ticketID int64) (*TicketDetail, error) {
	uc.logger.Debugw("executing load ticket details use case", "ticket_id", ticketID)

	res := uc.gw.GetTicket(ctx, ticketID)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if !res.Success {
		return nil, uc.fail(ticketID, res.AsError("Request failed"))
	}
	t, err := gateway.Decode[helpdesk.Ticket](res)
	if err != nil {
		return nil, uc.fail(ticketID, errors.NewRemoteError(res.StatusCode, "Malformed ticket", err.Error()))
	}

	detail := &TicketDetail{Ticket: t}

	uc.resolveRequester(ctx, &detail.Ticket)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	detail.CRM = uc.lookupCRM(ctx, detail.Ticket.Email())
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	detail.Conversations = uc.loadConversations(ctx, ticketID)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	uc.logger.Infow("ticket details loaded",
		"ticket_id", ticketID,
		"crm", detail.CRM.State.String(),
		"conversations", len(detail.Conversations),
	)
	return detail, nil
}

func (uc *LoadTicketDetailsUseCase) fail(ticketID int64, err error) error {
	uc.logger.Errorw("failed to load ticket details", "ticket_id", ticketID, "error", err)
	uc.notifier.Error("Failed to load ticket details: " + err.Error())
	return errors.Reported(err)
}

// resolveRequester keeps the ticket's own requester fields when the lookup
// fails.
func (uc *LoadTicketDetailsUseCase) resolveRequester(ctx context.Context, t *helpdesk.Ticket) {
	res := uc.gw.GetContact(ctx, t.RequesterID)
	if !res.Success {
		uc.logger.Warnw("requester lookup failed", "ticket_id", t.ID, "requester_id", t.RequesterID, "message", res.Message)
		return
	}
	contact, err := gateway.Decode[helpdesk.Contact](res)
	if err != nil {
		uc.logger.Warnw("malformed requester contact", "ticket_id", t.ID, "error", err)
		return
	}
	t.ApplyContact(&contact)
}

func (uc *LoadTicketDetailsUseCase) lookupCRM(ctx context.Context, email string) CRMLookup {
	if email == "" {
		return CRMLookup{State: CRMSkipped}
	}

	res := uc.gw.GetCRMContactByEmail(ctx, email)
	switch {
	case res.TransportFailed():
		uc.logger.Warnw("crm lookup failed", "message", res.Message)
		return CRMLookup{State: CRMFailed, Message: crmFailedMessage}
	case !res.Success:
		msg := res.Message
		if msg == "" {
			msg = crmNotFoundMessage
		}
		return CRMLookup{State: CRMNotFound, Message: msg}
	case !res.HasData():
		return CRMLookup{State: CRMNotFound, Message: crmNotFoundMessage}
	}

	contact, err := gateway.Decode[crm.Contact](res)
	if err != nil {
		uc.logger.Warnw("malformed crm contact", "error", err)
		return CRMLookup{State: CRMFailed, Message: crmFailedMessage}
	}
	return CRMLookup{State: CRMFound, Contact: &contact}
}

func (uc *LoadTicketDetailsUseCase) loadConversations(ctx context.Context, ticketID int64) []helpdesk.Conversation {
	res := uc.gw.GetTicketConversations(ctx, ticketID)
	if !res.Success {
		uc.logger.Warnw("conversation lookup failed", "ticket_id", ticketID, "message", res.Message)
		return []helpdesk.Conversation{}
	}
	convs, err := gateway.Decode[[]helpdesk.Conversation](res)
	if err != nil {
		uc.logger.Warnw("malformed conversations", "ticket_id", ticketID, "error", err)
		return []helpdesk.Conversation{}
	}
	if convs == nil {
		convs = []helpdesk.Conversation{}
	}
	return convs
}
