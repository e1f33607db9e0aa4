package cli

import (
	"context"
	"fmt"
	"io"

	"supportdesk/internal/application/dashboard"
	"supportdesk/internal/application/integration"
	"supportdesk/internal/application/session"
	"supportdesk/internal/application/ticket/usecases"
	webhookapp "supportdesk/internal/application/webhook"
	"supportdesk/internal/infrastructure/config"
	"supportdesk/internal/infrastructure/gateway"
	"supportdesk/internal/infrastructure/tokenstore"
	"supportdesk/internal/interfaces/notify"
	"supportdesk/internal/shared/logger"
)

// Container wires the application for one command invocation.
type Container struct {
	Config       *config.Config
	Log          logger.Interface
	Notifier     *notify.Notifier
	Session      *session.Manager
	Integrations *integration.Store
	Board        *usecases.TicketBoard
	Tickets      *usecases.LoadTicketsUseCase
	Details      *usecases.LoadTicketDetailsUseCase
	Detail       *usecases.DetailView
	WebhookLogs  *webhookapp.ListWebhookLogsUseCase
	Dashboard    *dashboard.Loader

	store tokenstore.Store
}

func NewContainer(cfg *config.Config, notifier *notify.Notifier, log logger.Interface) (*Container, error) {
	store, err := tokenstore.New(cfg.Session, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	state := session.NewState()
	gw := gateway.NewClient(cfg.API.BaseURL, state,
		gateway.WithTimeout(cfg.API.Timeout()),
		gateway.WithLogger(log.Named("gateway")),
		gateway.WithPaths(gateway.Paths{
			Helpdesk: cfg.Integrations.HelpdeskPath,
			CRM:      cfg.Integrations.CRMPath,
		}),
	)

	c := &Container{
		Config:       cfg,
		Log:          log,
		Notifier:     notifier,
		Session:      session.NewManager(gw, state, store, log),
		Integrations: integration.NewStore(gw, log),
		Board:        usecases.NewTicketBoard(log),
		store:        store,
	}
	c.Tickets = usecases.NewLoadTicketsUseCase(gw, c.Board, notifier, log.Named("load_tickets"))
	c.Details = usecases.NewLoadTicketDetailsUseCase(gw, notifier, log.Named("load_ticket_details"))
	c.Detail = usecases.NewDetailView(c.Details, log)
	c.WebhookLogs = webhookapp.NewListWebhookLogsUseCase(gw, notifier, log.Named("webhook_logs"))
	c.Dashboard = dashboard.NewLoader(c.Integrations, c.Tickets, c.WebhookLogs, log.Named("dashboard"))
	return c, nil
}

// Bootstrap restores the persisted token and, when there is one, asks the
// backend who it belongs to. A token the backend no longer accepts leaves
// the user signed out rather than failing the command.
func (c *Container) Bootstrap(ctx context.Context) error {
	if err := c.Session.Restore(ctx); err != nil {
		return err
	}
	if !c.Session.Session().IsAuthenticated() {
		return nil
	}

	u, err := c.Session.ProbeSession(ctx)
	if err != nil {
		c.Log.Debugw("stored session not usable", "error", err)
		return nil
	}
	c.Integrations.Replace(integration.FromUser(u))
	return nil
}

func (c *Container) Close() error {
	if closer, ok := c.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
