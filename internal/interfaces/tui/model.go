// Package tui is the interactive ticket dashboard.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"supportdesk/internal/application/ticket/usecases"
	"supportdesk/internal/domain/helpdesk"
	"supportdesk/internal/domain/webhook"
	"supportdesk/internal/interfaces/notify"
)

type viewMode int

const (
	viewTickets viewMode = iota
	viewWebhooks
	viewDetail
)

type detailPane int

const (
	paneDetails detailPane = iota
	paneConversations
)

type TicketsLoader interface {
	Execute(ctx context.Context) ([]helpdesk.Ticket, error)
}

type WebhookLogsLoader interface {
	Execute(ctx context.Context) ([]webhook.LogEntry, error)
}

// Deps are the application pieces the dashboard drives.
type Deps struct {
	Board    *usecases.TicketBoard
	Tickets  TicketsLoader
	Detail   *usecases.DetailView
	Webhooks WebhookLogsLoader
	// Configured reports whether the helpdesk integration has credentials.
	Configured func() bool
}

// Messages delivered into the update loop.
type (
	boardMsg          usecases.BoardEvent
	detailMsg         usecases.DetailSnapshot
	toastMsg          notify.Notification
	ticketsLoadedMsg  struct{ err error }
	webhooksLoadedMsg struct {
		logs []webhook.LogEntry
		err  error
	}
)

type Model struct {
	ctx  context.Context
	deps Deps

	mode   viewMode
	cursor int

	tickets        []helpdesk.Ticket
	loadingTickets bool

	detail usecases.DetailSnapshot
	pane   detailPane

	logs          []webhook.LogEntry
	logsErr       error
	loadingLogs   bool
	logsRequested bool

	toast *notify.Notification

	width  int
	height int
}

func NewModel(ctx context.Context, deps Deps) Model {
	_, tickets := deps.Board.Snapshot()
	return Model{
		ctx:     ctx,
		deps:    deps,
		tickets: tickets,
		width:   100,
		height:  30,
	}
}

func (m Model) configured() bool {
	return m.deps.Configured == nil || m.deps.Configured()
}

func (m Model) Init() tea.Cmd {
	if !m.configured() {
		return nil
	}
	return m.loadTickets()
}

func (m Model) loadTickets() tea.Cmd {
	ctx, loader := m.ctx, m.deps.Tickets
	return func() tea.Msg {
		_, err := loader.Execute(ctx)
		return ticketsLoadedMsg{err: err}
	}
}

func (m Model) loadWebhooks() tea.Cmd {
	ctx, loader := m.ctx, m.deps.Webhooks
	return func() tea.Msg {
		logs, err := loader.Execute(ctx)
		return webhooksLoadedMsg{logs: logs, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case boardMsg:
		// Enrichment landed or a new list was published.
		_, m.tickets = m.deps.Board.Snapshot()
		m.clampCursor()
	case ticketsLoadedMsg:
		m.loadingTickets = false
		_, m.tickets = m.deps.Board.Snapshot()
		m.clampCursor()
	case webhooksLoadedMsg:
		m.loadingLogs = false
		m.logs, m.logsErr = msg.logs, msg.err
	case detailMsg:
		// A load may finish just after the pane was closed or switched.
		snap := usecases.DetailSnapshot(msg)
		if m.mode == viewDetail && snap.TicketID == m.detail.TicketID && m.deps.Detail.IsCurrent(snap) {
			m.detail = snap
		}
	case toastMsg:
		n := notify.Notification(msg)
		m.toast = &n
	}
	return m, nil
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.tickets) {
		m.cursor = len(m.tickets) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.mode {
	case viewTickets:
		return m.handleTicketKeys(msg)
	case viewWebhooks:
		return m.handleWebhookKeys(msg)
	case viewDetail:
		return m.handleDetailKeys(msg)
	}
	return m, nil
}

func (m Model) handleTicketKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.configured() {
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tickets)-1 {
			m.cursor++
		}
	case "r":
		m.loadingTickets = true
		return m, m.loadTickets()
	case "enter":
		if len(m.tickets) == 0 {
			return m, nil
		}
		m.mode = viewDetail
		m.pane = paneDetails
		id := m.tickets[m.cursor].ID
		m.detail = usecases.DetailSnapshot{State: usecases.DetailLoading, TicketID: id}
		m.deps.Detail.Open(m.ctx, id)
	case "tab":
		m.mode = viewWebhooks
		if !m.logsRequested {
			m.logsRequested = true
			m.loadingLogs = true
			return m, m.loadWebhooks()
		}
	}
	return m, nil
}

func (m Model) handleWebhookKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "esc":
		m.mode = viewTickets
	case "r":
		m.loadingLogs = true
		return m, m.loadWebhooks()
	}
	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.deps.Detail.Close()
		m.detail = usecases.DetailSnapshot{}
		m.mode = viewTickets
	case "tab":
		if m.pane == paneDetails {
			m.pane = paneConversations
		} else {
			m.pane = paneDetails
		}
	}
	return m, nil
}

// Run starts the dashboard and blocks until the user quits. notifier's toasts
// are shown in the status line while it runs.
func Run(ctx context.Context, deps Deps, notifier *notify.Notifier) error {
	p := tea.NewProgram(NewModel(ctx, deps), tea.WithContext(ctx), tea.WithAltScreen())

	unsubscribe := deps.Board.Subscribe(func(ev usecases.BoardEvent) { p.Send(boardMsg(ev)) })
	defer unsubscribe()
	deps.Detail.OnChange(func(s usecases.DetailSnapshot) {
		// Open and Close are called from Update, which applies their
		// transitions itself; sending from there would block the event loop.
		if s.State == usecases.DetailLoading || s.State == usecases.DetailClosed {
			return
		}
		p.Send(detailMsg(s))
	})
	defer deps.Detail.OnChange(nil)
	notifier.SetSink(func(n notify.Notification) { p.Send(toastMsg(n)) })
	defer notifier.SetSink(nil)

	_, err := p.Run()
	return err
}
