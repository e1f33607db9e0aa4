// Package dashboard loads what the dashboard's landing view shows.
package dashboard

import (
	"context"
	stderrors "errors"

	"golang.org/x/sync/errgroup"

	"supportdesk/internal/application/integration"
	"supportdesk/internal/domain/helpdesk"
	"supportdesk/internal/domain/webhook"
	"supportdesk/internal/shared/logger"
)

// ErrNotConfigured means the helpdesk has no credentials yet, so no ticket
// data may be requested.
var ErrNotConfigured = stderrors.New("Configuration required")

type ConfigSource interface {
	Config() integration.Config
}

type TicketsLoader interface {
	Execute(ctx context.Context) ([]helpdesk.Ticket, error)
}

type WebhookLogsLoader interface {
	Execute(ctx context.Context) ([]webhook.LogEntry, error)
}

type Summary struct {
	Total    int
	Open     int
	Webhooks int
}

type Dashboard struct {
	Tickets     []helpdesk.Ticket
	WebhookLogs []webhook.LogEntry
	Summary     Summary
}

type Loader struct {
	config   ConfigSource
	tickets  TicketsLoader
	webhooks WebhookLogsLoader
	logger   logger.Interface
}

func NewLoader(config ConfigSource, tickets TicketsLoader, webhooks WebhookLogsLoader, logger logger.Interface) *Loader {
	return &Loader{
		config:   config,
		tickets:  tickets,
		webhooks: webhooks,
		logger:   logger,
	}
}

// Load fetches tickets and webhook logs concurrently. One failing does not
// cancel the other: the returned Dashboard holds whatever loaded, alongside
// the first error.
func (l *Loader) Load(ctx context.Context) (*Dashboard, error) {
	if !l.config.Config().HelpdeskConfigured() {
		return nil, ErrNotConfigured
	}

	d := &Dashboard{}
	var g errgroup.Group
	g.Go(func() error {
		tickets, err := l.tickets.Execute(ctx)
		d.Tickets = tickets
		return err
	})
	g.Go(func() error {
		logs, err := l.webhooks.Execute(ctx)
		d.WebhookLogs = logs
		return err
	})
	err := g.Wait()

	d.Summary = Summarize(d.Tickets, d.WebhookLogs)
	l.logger.Debugw("dashboard loaded",
		"tickets", d.Summary.Total,
		"open", d.Summary.Open,
		"webhooks", d.Summary.Webhooks,
		"error", err,
	)
	return d, err
}

func Summarize(tickets []helpdesk.Ticket, logs []webhook.LogEntry) Summary {
	s := Summary{Total: len(tickets), Webhooks: len(logs)}
	for i := range tickets {
		if tickets[i].Status.IsOpen() {
			s.Open++
		}
	}
	return s
}
