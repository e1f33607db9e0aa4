// Package webhook reads the backend's log of received integration webhooks.
package webhook

import (
	"context"
	"sort"

	"supportdesk/internal/domain/webhook"
	"supportdesk/internal/infrastructure/gateway"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
)

type Gateway interface {
	GetWebhookLogs(ctx context.Context) gateway.Result
}

type Notifier interface {
	Error(message string)
}

type ListWebhookLogsUseCase struct {
	gw       Gateway
	notifier Notifier
	logger   logger.Interface
}

func NewListWebhookLogsUseCase(gw Gateway, notifier Notifier, logger logger.Interface) *ListWebhookLogsUseCase {
	return &ListWebhookLogsUseCase{
		gw:       gw,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute returns the logs newest first.
func (uc *ListWebhookLogsUseCase) Execute(ctx context.Context) ([]webhook.LogEntry, error) {
	res := uc.gw.GetWebhookLogs(ctx)
	if !res.Success {
		return nil, uc.fail(res.AsError("Request failed"))
	}

	entries, err := gateway.Decode[[]webhook.LogEntry](res)
	if err != nil {
		return nil, uc.fail(errors.NewRemoteError(res.StatusCode, "Malformed webhook logs", err.Error()))
	}
	if entries == nil {
		entries = []webhook.LogEntry{}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	uc.logger.Debugw("webhook logs loaded", "count", len(entries))
	return entries, nil
}

func (uc *ListWebhookLogsUseCase) fail(err error) error {
	uc.logger.Errorw("failed to load webhook logs", "error", err)
	uc.notifier.Error("Failed to load webhook logs: " + err.Error())
	return errors.Reported(err)
}
