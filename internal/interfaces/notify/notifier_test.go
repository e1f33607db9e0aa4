package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginSeverity(t *testing.T) {
	assert.Equal(t, SeveritySuccess, LoginSeverity("Login successful"))
	assert.Equal(t, SeverityWarning, LoginSeverity("Signed in, but your trial ends soon"))
	assert.Equal(t, SeverityWarning, LoginSeverity("login successful"), "match is case-sensitive")
}

func TestNotifier_WritesPlainLinesWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	n := New(&buf)

	n.Success("Saved")
	n.Error("Failed to load tickets: boom")
	n.Warning("Careful")
	n.Info("FYI")

	assert.Equal(t, "✓ Saved\n✗ Failed to load tickets: boom\n! Careful\n• FYI\n", buf.String())
}

func TestNotifier_DedupesByID(t *testing.T) {
	var buf bytes.Buffer
	n := New(&buf)

	n.Show(Notification{ID: SessionToastID, Severity: SeveritySuccess, Message: "Login successful"})
	n.Show(Notification{ID: SessionToastID, Severity: SeveritySuccess, Message: "Login successful"})
	n.Show(Notification{ID: SessionToastID, Severity: SeverityInfo, Message: "Logged out"})
	n.Error("same")
	n.Error("same")

	assert.Equal(t, "✓ Login successful\n• Logged out\n✗ same\n✗ same\n", buf.String())
}

func TestNotifier_Sink(t *testing.T) {
	var buf bytes.Buffer
	n := New(&buf)
	var got []Notification
	n.SetSink(func(note Notification) { got = append(got, note) })

	n.Error("boom")

	assert.Empty(t, buf.String())
	assert.Equal(t, []Notification{{Severity: SeverityError, Message: "boom"}}, got)
}
