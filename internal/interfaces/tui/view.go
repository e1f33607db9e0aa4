package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"supportdesk/internal/application/ticket/usecases"
	"supportdesk/internal/domain/helpdesk"
	"supportdesk/internal/interfaces/notify"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(12)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	toastStyles = map[notify.Severity]lipgloss.Style{
		notify.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		notify.SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		notify.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		notify.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("SUPPORT DESK"))
	s.WriteString("\n")

	switch {
	case !m.configured():
		s.WriteString("Configuration required\n")
		s.WriteString(mutedStyle.Render("Run `supportdesk configure helpdesk` to connect your helpdesk."))
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("q: Quit"))
	case m.mode == viewDetail:
		s.WriteString(m.renderDetailView())
	default:
		s.WriteString(m.renderTabs())
		s.WriteString("\n\n")
		if m.mode == viewWebhooks {
			s.WriteString(m.renderWebhooks())
		} else {
			s.WriteString(m.renderTickets())
		}
	}

	if m.toast != nil {
		s.WriteString("\n")
		s.WriteString(toastStyles[m.toast.Severity].Render(m.toast.Message))
	}
	return s.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"Tickets", "Webhooks"}
	active := 0
	if m.mode == viewWebhooks {
		active = 1
	}
	var rendered []string
	for i, tab := range tabs {
		if i == active {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) tableHeight() int {
	if h := m.height - 10; h > 3 {
		return h
	}
	return 3
}

func (m Model) renderTickets() string {
	var s strings.Builder

	if m.loadingTickets {
		s.WriteString(mutedStyle.Render("Refreshing…"))
		s.WriteString("\n")
	}
	if len(m.tickets) == 0 {
		s.WriteString("No tickets found\n")
	} else {
		columns := []table.Column{
			{Title: "ID", Width: 8},
			{Title: "Subject", Width: 40},
			{Title: "Requester", Width: 24},
			{Title: "Status", Width: 20},
			{Title: "Priority", Width: 10},
		}
		rows := make([]table.Row, 0, len(m.tickets))
		for i := range m.tickets {
			t := &m.tickets[i]
			rows = append(rows, table.Row{
				strconv.FormatInt(t.ID, 10),
				t.Subject,
				t.DisplayRequester(),
				t.Status.String(),
				t.Priority.String(),
			})
		}
		tbl := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(true),
			table.WithHeight(m.tableHeight()),
		)
		tbl.SetCursor(m.cursor)
		s.WriteString(tbl.View())
		s.WriteString("\n")
	}

	help := []string{"↑/↓: Navigate", "Enter: View details", "r: Refresh", "Tab: Webhooks", "q: Quit"}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) renderWebhooks() string {
	var s strings.Builder

	switch {
	case m.loadingLogs:
		s.WriteString(mutedStyle.Render("Loading webhook logs…"))
		s.WriteString("\n")
	case m.logsErr != nil:
		s.WriteString(m.logsErr.Error())
		s.WriteString("\n")
	case len(m.logs) == 0:
		s.WriteString("No webhook events received yet\n")
	default:
		columns := []table.Column{
			{Title: "Received", Width: 20},
			{Title: "Source", Width: 12},
			{Title: "Type", Width: 28},
			{Title: "ID", Width: 24},
		}
		rows := make([]table.Row, 0, len(m.logs))
		for _, l := range m.logs {
			rows = append(rows, table.Row{
				l.Timestamp.Local().Format("2006-01-02 15:04:05"),
				l.Source,
				l.Type,
				l.ID,
			})
		}
		tbl := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithHeight(m.tableHeight()),
		)
		s.WriteString(tbl.View())
		s.WriteString("\n")
	}

	help := []string{"r: Refresh", "Tab/Esc: Tickets", "q: Quit"}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) renderDetailView() string {
	var s strings.Builder
	d := m.detail

	switch d.State {
	case usecases.DetailLoading:
		s.WriteString(fmt.Sprintf("Loading ticket #%d…\n", d.TicketID))
	case usecases.DetailNotFound:
		s.WriteString(fmt.Sprintf("Ticket #%d not found\n", d.TicketID))
	case usecases.DetailErrored:
		s.WriteString(fmt.Sprintf("Could not load ticket #%d: %v\n", d.TicketID, d.Err))
	case usecases.DetailLoaded:
		s.WriteString(m.renderDetailTabs())
		s.WriteString("\n\n")
		if m.pane == paneConversations {
			s.WriteString(renderConversations(d.Detail.Conversations))
		} else {
			s.WriteString(renderTicketDetail(d.Detail))
		}
	}

	help := []string{"Tab: Switch pane", "Esc: Back", "q: Quit"}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) renderDetailTabs() string {
	conversations := fmt.Sprintf("Conversations (%d)", len(m.detail.Detail.Conversations))
	if m.pane == paneConversations {
		return lipgloss.JoinHorizontal(lipgloss.Top, tabInactiveStyle.Render("Details"), tabActiveStyle.Render(conversations))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabActiveStyle.Render("Details"), tabInactiveStyle.Render(conversations))
}

func field(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}

func renderTicketDetail(d *usecases.TicketDetail) string {
	var s strings.Builder
	t := &d.Ticket

	s.WriteString(field("Ticket", fmt.Sprintf("#%d %s", t.ID, t.Subject)))
	s.WriteString(field("Status", t.Status.String()))
	s.WriteString(field("Priority", t.Priority.String()))
	s.WriteString(field("Requester", t.DisplayRequester()))
	if email := t.Email(); email != "" {
		s.WriteString(field("Email", email))
	}
	if !t.CreatedAt.IsZero() {
		s.WriteString(field("Created", t.CreatedAt.Local().Format("2006-01-02 15:04")))
	}
	if len(t.Tags) > 0 {
		s.WriteString(field("Tags", strings.Join(t.Tags, ", ")))
	}
	if t.Description != "" {
		s.WriteString("\n")
		s.WriteString(helpdesk.StripHTML(t.Description))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(titleStyle.Render("CRM"))
	s.WriteString("\n")
	s.WriteString(renderCRM(d.CRM))
	return s.String()
}

func renderCRM(l usecases.CRMLookup) string {
	switch l.State {
	case usecases.CRMFound:
		c := l.Contact
		var s strings.Builder
		s.WriteString(field("Name", c.DisplayName()))
		s.WriteString(field("Email", c.Email))
		if stage := c.LifecycleLabel(); stage != "" {
			s.WriteString(field("Stage", stage))
		}
		if c.Company != "" {
			s.WriteString(field("Company", c.Company))
		}
		if c.Phone != "" {
			s.WriteString(field("Phone", c.Phone))
		}
		return s.String()
	case usecases.CRMNotFound:
		return mutedStyle.Render(l.Message) + "\n"
	case usecases.CRMFailed:
		return toastStyles[notify.SeverityError].Render("✗ "+l.Message) + "\n"
	default:
		return mutedStyle.Render("No requester email to look up") + "\n"
	}
}

func renderConversations(convs []helpdesk.Conversation) string {
	if len(convs) == 0 {
		return "No conversations yet\n"
	}
	var s strings.Builder
	for i := range convs {
		c := &convs[i]
		header := c.Author()
		if !c.CreatedAt.IsZero() {
			header += "  " + c.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		s.WriteString(labelStyle.UnsetWidth().Render(header))
		s.WriteString("\n")
		s.WriteString(c.PlainText())
		s.WriteString("\n\n")
	}
	return s.String()
}
