// Package notify shows short toast-style messages to the user.
package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is one toast. Toasts sharing a non-empty ID replace each other,
// so repeating the same message under the same ID shows it once.
type Notification struct {
	ID       string
	Severity Severity
	Message  string
}

// SessionToastID is shared by login, register and logout outcomes.
const SessionToastID = "session"

// LoginSeverity picks how a successful login's backend message is shown: as
// success when it mentions "Login", otherwise as a warning.
func LoginSeverity(message string) Severity {
	if strings.Contains(message, "Login") {
		return SeveritySuccess
	}
	return SeverityWarning
}

type styles struct {
	info, success, warning, failure lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	base := r.NewStyle().Bold(true)
	return styles{
		info:    base.Foreground(lipgloss.Color("39")),
		success: base.Foreground(lipgloss.Color("42")),
		warning: base.Foreground(lipgloss.Color("214")),
		failure: base.Foreground(lipgloss.Color("196")),
	}
}

// Notifier renders toasts to a writer, or hands them to a sink when one is
// set (the dashboard shows them in its status line).
type Notifier struct {
	mu     sync.Mutex
	w      io.Writer
	styles styles
	sink   func(Notification)
	last   map[string]string
}

func New(w io.Writer) *Notifier {
	return &Notifier{
		w:      w,
		styles: newStyles(lipgloss.NewRenderer(w)),
		last:   make(map[string]string),
	}
}

// SetSink redirects toasts to fn; nil restores writing to w.
func (n *Notifier) SetSink(fn func(Notification)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sink = fn
}

func (n *Notifier) Show(note Notification) {
	n.mu.Lock()
	if note.ID != "" {
		if prev, ok := n.last[note.ID]; ok && prev == note.Message {
			n.mu.Unlock()
			return
		}
		n.last[note.ID] = note.Message
	}
	sink := n.sink
	if sink == nil {
		fmt.Fprintln(n.w, n.Render(note))
	}
	n.mu.Unlock()

	if sink != nil {
		sink(note)
	}
}

// Render formats a toast as a single styled line.
func (n *Notifier) Render(note Notification) string {
	switch note.Severity {
	case SeveritySuccess:
		return n.styles.success.Render("✓ " + note.Message)
	case SeverityWarning:
		return n.styles.warning.Render("! " + note.Message)
	case SeverityError:
		return n.styles.failure.Render("✗ " + note.Message)
	default:
		return n.styles.info.Render("• " + note.Message)
	}
}

func (n *Notifier) Info(message string) {
	n.Show(Notification{Severity: SeverityInfo, Message: message})
}

func (n *Notifier) Success(message string) {
	n.Show(Notification{Severity: SeveritySuccess, Message: message})
}

func (n *Notifier) Warning(message string) {
	n.Show(Notification{Severity: SeverityWarning, Message: message})
}

func (n *Notifier) Error(message string) {
	n.Show(Notification{Severity: SeverityError, Message: message})
}
