package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"supportdesk/internal/domain/webhook"
)

func newWebhooksCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "Inspect received integration webhooks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List webhook events, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.boot(cmd.Context(), true)
			if err != nil {
				return err
			}
			if err := requireSession(c); err != nil {
				return err
			}

			logs, err := c.WebhookLogs.Execute(cmd.Context())
			if err != nil {
				return err
			}
			writeWebhookLogs(app.out, logs)
			return nil
		},
	})

	return cmd
}

func writeWebhookLogs(w io.Writer, logs []webhook.LogEntry) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "No webhook events received yet")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RECEIVED\tSOURCE\tTYPE\tID")
	for _, l := range logs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.Timestamp.Local().Format("2006-01-02 15:04:05"), l.Source, l.Type, l.ID)
	}
	tw.Flush()
}
