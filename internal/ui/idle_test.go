package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIdleMonitorExpiresOnlyCurrentGeneration(t *testing.T) {
	m := newIdleMonitor(30 * time.Second)
	_ = m.Arm()
	first := m.generation

	require.True(t, m.Expired(idleExpiredMsg{generation: first}))

	// A qualifying event restarts the window; the earlier timer's expiry
	// no longer counts.
	_ = m.Reset()
	require.False(t, m.Expired(idleExpiredMsg{generation: first}))
	require.True(t, m.Expired(idleExpiredMsg{generation: m.generation}))
}

func TestIdleMonitorDisarmInvalidatesOutstandingTimer(t *testing.T) {
	m := newIdleMonitor(30 * time.Second)
	_ = m.Arm()
	gen := m.generation

	m.Disarm()
	require.False(t, m.Expired(idleExpiredMsg{generation: gen}))
	require.False(t, m.Expired(idleExpiredMsg{generation: m.generation}))
}

func TestIdleMonitorResetRequiresArm(t *testing.T) {
	m := newIdleMonitor(30 * time.Second)
	require.Nil(t, m.Reset())
}

func TestIdleMonitorTickCarriesGeneration(t *testing.T) {
	m := newIdleMonitor(time.Millisecond)
	cmd := m.Arm()

	msg, ok := cmd().(idleExpiredMsg)
	require.True(t, ok)
	require.Equal(t, m.generation, msg.generation)
	require.True(t, m.Expired(msg))
}
