package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"supportdesk/internal/application/ticket/usecases"
	"supportdesk/internal/domain/helpdesk"
	"supportdesk/internal/shared/errors"
)

func newTicketsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Browse helpdesk tickets",
	}

	cmd.AddCommand(
		newTicketsListCommand(app),
		newTicketsShowCommand(app),
	)

	return cmd
}

func newTicketsListCommand(app *App) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		Long:  `List tickets as soon as they arrive. With --follow, wait until requester names and emails have been filled in.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.boot(cmd.Context(), true)
			if err != nil {
				return err
			}
			if err := requireHelpdesk(c); err != nil {
				return err
			}

			tickets, err := c.Tickets.Execute(cmd.Context())
			if err != nil {
				return err
			}
			if follow {
				c.Board.Wait()
				_, tickets = c.Board.Snapshot()
			}

			writeTickets(app.out, tickets)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Wait for requester enrichment before printing")

	return cmd
}

func newTicketsShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a ticket with its requester, CRM contact and conversations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return errors.NewValidationError("Invalid ticket ID", args[0])
			}

			c, err := app.boot(cmd.Context(), true)
			if err != nil {
				return err
			}
			if err := requireHelpdesk(c); err != nil {
				return err
			}

			c.Detail.Open(cmd.Context(), id)
			c.Detail.Wait()

			snap := c.Detail.State()
			switch snap.State {
			case usecases.DetailLoaded:
				writeTicketDetail(app.out, snap.Detail)
				return nil
			case usecases.DetailNotFound, usecases.DetailErrored:
				return snap.Err
			default:
				return cmd.Context().Err()
			}
		},
	}
}

func writeTickets(w io.Writer, tickets []helpdesk.Ticket) {
	if len(tickets) == 0 {
		fmt.Fprintln(w, "No tickets found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSUBJECT\tREQUESTER\tSTATUS\tPRIORITY")
	for i := range tickets {
		t := &tickets[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Subject, t.DisplayRequester(), t.Status, t.Priority)
	}
	tw.Flush()
}

func writeTicketDetail(w io.Writer, d *usecases.TicketDetail) {
	t := &d.Ticket

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Ticket:\t#%d %s\n", t.ID, t.Subject)
	fmt.Fprintf(tw, "Status:\t%s\n", t.Status)
	fmt.Fprintf(tw, "Priority:\t%s\n", t.Priority)
	fmt.Fprintf(tw, "Requester:\t%s\n", t.DisplayRequester())
	if email := t.Email(); email != "" {
		fmt.Fprintf(tw, "Email:\t%s\n", email)
	}
	if !t.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Created:\t%s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(tw, "Tags:\t%s\n", strings.Join(t.Tags, ", "))
	}
	tw.Flush()

	if desc := helpdesk.StripHTML(t.Description); desc != "" {
		fmt.Fprintf(w, "\n%s\n", desc)
	}

	fmt.Fprintln(w, "\nCRM")
	switch d.CRM.State {
	case usecases.CRMFound:
		contact := d.CRM.Contact
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "  Name:\t%s\n", contact.DisplayName())
		fmt.Fprintf(tw, "  Email:\t%s\n", contact.Email)
		if stage := contact.LifecycleLabel(); stage != "" {
			fmt.Fprintf(tw, "  Stage:\t%s\n", stage)
		}
		if contact.Company != "" {
			fmt.Fprintf(tw, "  Company:\t%s\n", contact.Company)
		}
		if contact.Phone != "" {
			fmt.Fprintf(tw, "  Phone:\t%s\n", contact.Phone)
		}
		tw.Flush()
	case usecases.CRMNotFound:
		fmt.Fprintf(w, "  %s\n", d.CRM.Message)
	case usecases.CRMFailed:
		fmt.Fprintf(w, "  Unavailable: %s\n", d.CRM.Message)
	default:
		fmt.Fprintln(w, "  No requester email to look up")
	}

	fmt.Fprintf(w, "\nConversations (%d)\n", len(d.Conversations))
	for i := range d.Conversations {
		conv := &d.Conversations[i]
		header := conv.Author()
		if !conv.CreatedAt.IsZero() {
			header += "  " + conv.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "\n%s\n%s\n", header, conv.PlainText())
	}
}
