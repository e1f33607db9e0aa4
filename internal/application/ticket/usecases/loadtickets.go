package usecases

import (
	"context"

	"supportdesk/internal/domain/helpdesk"
	"supportdesk/internal/infrastructure/gateway"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
)

// LoadTicketsUseCase fetches the ticket list, publishes it to the board right
// away and fills in requester names in the background.
type LoadTicketsUseCase struct {
	gw       TicketGateway
	board    *TicketBoard
	notifier Notifier
	logger   logger.Interface
}

func NewLoadTicketsUseCase(
	gw TicketGateway,
	board *TicketBoard,
	notifier Notifier,
	logger logger.Interface,
) *LoadTicketsUseCase {
	return &LoadTicketsUseCase{
		gw:       gw,
		board:    board,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute returns the list as published, before any enrichment. Failures are
// shown through the notifier once and returned marked as reported.
func (uc *LoadTicketsUseCase) Execute(ctx context.Context) ([]helpdesk.Ticket, error) {
	uc.logger.Debugw("executing load tickets use case")

	res := uc.gw.ListTickets(ctx)
	if !res.Success {
		return nil, uc.fail(ctx, res.AsError("Request failed"))
	}

	tickets, err := gateway.Decode[[]helpdesk.Ticket](res)
	if err != nil {
		uc.logger.Errorw("malformed ticket list", "error", err)
		return nil, uc.fail(ctx, errors.NewRemoteError(res.StatusCode, "Malformed ticket list", err.Error()))
	}

	uc.board.Publish(ctx, tickets, uc.enrichRequester)
	uc.logger.Infow("tickets loaded", "count", len(tickets))
	return tickets, nil
}

func (uc *LoadTicketsUseCase) fail(ctx context.Context, err error) error {
	uc.logger.Errorw("failed to load tickets", "error", err)
	uc.notifier.Error("Failed to load tickets: " + err.Error())
	uc.board.Publish(ctx, nil, nil)
	return errors.Reported(err)
}

// enrichRequester looks up one requester. A failed lookup clears the
// requester fields; it is logged and never shown to the user.
func (uc *LoadTicketsUseCase) enrichRequester(ctx context.Context, t helpdesk.Ticket) func(*helpdesk.Ticket) {
	res := uc.gw.GetContact(ctx, t.RequesterID)
	if !res.Success {
		uc.logger.Warnw("requester lookup failed",
			"ticket_id", t.ID,
			"requester_id", t.RequesterID,
			"status", res.StatusCode,
			"message", res.Message,
		)
		return (*helpdesk.Ticket).ClearRequester
	}

	contact, err := gateway.Decode[helpdesk.Contact](res)
	if err != nil {
		uc.logger.Warnw("malformed requester contact", "ticket_id", t.ID, "error", err)
		return (*helpdesk.Ticket).ClearRequester
	}
	return func(tk *helpdesk.Ticket) {
		tk.ApplyContact(&contact)
	}
}
