package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// idleExpiredMsg fires when an armed idle window elapsed without input. The
// generation ties it to the arming that scheduled it; a reset or teardown in
// between makes the message stale.
type idleExpiredMsg struct {
	generation uint64
}

// idleMonitor enforces the hard inactivity timeout on a protected view. Each
// qualifying input event restarts the window from scratch. There is no way to
// cancel a scheduled tea.Tick, so every (re)arm advances a generation counter
// and expiry messages from earlier arms are ignored; disarming on view exit
// works the same way, which guarantees no timer outlives its view.
type idleMonitor struct {
	timeout    time.Duration
	generation uint64
	armed      bool
}

func newIdleMonitor(timeout time.Duration) *idleMonitor {
	return &idleMonitor{timeout: timeout}
}

// Arm starts (or restarts) the idle window.
func (m *idleMonitor) Arm() tea.Cmd {
	m.generation++
	m.armed = true
	gen := m.generation
	return tea.Tick(m.timeout, func(time.Time) tea.Msg {
		return idleExpiredMsg{generation: gen}
	})
}

// Reset restarts the window after a qualifying input event.
func (m *idleMonitor) Reset() tea.Cmd {
	if !m.armed {
		return nil
	}
	return m.Arm()
}

// Disarm invalidates any outstanding expiry. Called when the view unmounts.
func (m *idleMonitor) Disarm() {
	m.generation++
	m.armed = false
}

// Expired reports whether msg is the live expiry for the current arming.
func (m *idleMonitor) Expired(msg idleExpiredMsg) bool {
	return m.armed && msg.generation == m.generation
}
