package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"supportdesk/internal/application/dashboard"
	"supportdesk/internal/interfaces/tui"
	"supportdesk/internal/shared/errors"
)

func newDashboardCommand(app *App) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive ticket dashboard",
		Long:  `Open the interactive ticket dashboard. With --summary, print ticket and webhook counts instead.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.boot(cmd.Context(), true)
			if err != nil {
				return err
			}
			if err := requireSession(c); err != nil {
				return err
			}

			if summary {
				d, err := c.Dashboard.Load(cmd.Context())
				if stderrors.Is(err, dashboard.ErrNotConfigured) {
					return errors.NewNotConfiguredError(err.Error(), "run `supportdesk configure helpdesk` first")
				}
				if d != nil {
					fmt.Fprintf(app.out, "Tickets: %d (%d open)\n", d.Summary.Total, d.Summary.Open)
					fmt.Fprintf(app.out, "Webhook events: %d\n", d.Summary.Webhooks)
				}
				return err
			}

			return tui.Run(cmd.Context(), tui.Deps{
				Board:      c.Board,
				Tickets:    c.Tickets,
				Detail:     c.Detail,
				Webhooks:   c.WebhookLogs,
				Configured: func() bool { return c.Integrations.Config().HelpdeskConfigured() },
			}, c.Notifier)
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "Print counts instead of opening the dashboard")

	return cmd
}
