package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportdesk/internal/application/integration"
	"supportdesk/internal/domain/helpdesk"
	"supportdesk/internal/domain/webhook"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
)

type staticConfig integration.Config

func (c staticConfig) Config() integration.Config { return integration.Config(c) }

type mockTicketsLoader struct {
	ExecuteFunc func(ctx context.Context) ([]helpdesk.Ticket, error)
	calls       int
}

func (m *mockTicketsLoader) Execute(ctx context.Context) ([]helpdesk.Ticket, error) {
	m.calls++
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx)
	}
	return nil, nil
}

type mockWebhookLogsLoader struct {
	ExecuteFunc func(ctx context.Context) ([]webhook.LogEntry, error)
	calls       int
}

func (m *mockWebhookLogsLoader) Execute(ctx context.Context) ([]webhook.LogEntry, error) {
	m.calls++
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx)
	}
	return nil, nil
}

var configured = staticConfig{HelpdeskAPIKey: "abcdefghij", HelpdeskDomain: "acme"}

func TestLoader_NotConfiguredMakesNoCalls(t *testing.T) {
	tickets := &mockTicketsLoader{}
	logs := &mockWebhookLogsLoader{}
	l := NewLoader(staticConfig{HelpdeskDomain: "acme"}, tickets, logs, logger.NewNopLogger())

	d, err := l.Load(context.Background())

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "Configuration required", err.Error())
	assert.Nil(t, d)
	assert.Zero(t, tickets.calls)
	assert.Zero(t, logs.calls)
}

func TestLoader_Load(t *testing.T) {
	tickets := &mockTicketsLoader{
		ExecuteFunc: func(ctx context.Context) ([]helpdesk.Ticket, error) {
			return []helpdesk.Ticket{
				{ID: 1, Status: helpdesk.StatusOpen},
				{ID: 2, Status: helpdesk.StatusPending},
				{ID: 3, Status: helpdesk.StatusOpen},
				{ID: 4, Status: helpdesk.Status(99)},
			}, nil
		},
	}
	logs := &mockWebhookLogsLoader{
		ExecuteFunc: func(ctx context.Context) ([]webhook.LogEntry, error) {
			return []webhook.LogEntry{{ID: "w1"}}, nil
		},
	}
	l := NewLoader(configured, tickets, logs, logger.NewNopLogger())

	d, err := l.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 4, Open: 2, Webhooks: 1}, d.Summary)
	assert.Len(t, d.Tickets, 4)
}

func TestLoader_PartialFailureKeepsOtherHalf(t *testing.T) {
	tickets := &mockTicketsLoader{
		ExecuteFunc: func(ctx context.Context) ([]helpdesk.Ticket, error) {
			return []helpdesk.Ticket{{ID: 1, Status: helpdesk.StatusOpen}}, nil
		},
	}
	logs := &mockWebhookLogsLoader{
		ExecuteFunc: func(ctx context.Context) ([]webhook.LogEntry, error) {
			return nil, errors.NewRemoteError(500, "boom")
		},
	}
	l := NewLoader(configured, tickets, logs, logger.NewNopLogger())

	d, err := l.Load(context.Background())

	require.Error(t, err)
	require.NotNil(t, d)
	assert.Equal(t, Summary{Total: 1, Open: 1}, d.Summary)
}
