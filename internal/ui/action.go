package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arunkumar231105/digital-wallet-client/internal/api"
	"github.com/arunkumar231105/digital-wallet-client/internal/session"
)

// actionDoneMsg is the resolution of one coordinated request. The epoch pins
// it to the session that launched it.
type actionDoneMsg struct {
	epoch   uint64
	payload any
	success string
	err     error
}

// outcome classifies how a resolved action should be applied.
type outcome int

const (
	// outcomeStale: the session that launched the request is gone; the
	// result must not be acted on at all.
	outcomeStale outcome = iota
	// outcomeSuccess: success message set; the view applies the payload and
	// resets the action's form fields.
	outcomeSuccess
	// outcomeFailure: error message set; dependent state untouched.
	outcomeFailure
	// outcomeAuthRejected: credentials no longer valid; the view must force
	// a logout to its category's login screen.
	outcomeAuthRejected
)

// coordinator serializes a view's mutating requests. While one request is in
// flight every new submission is dropped, not queued. It also owns the view's
// status line: after each resolution exactly one of success or error is set.
type coordinator struct {
	sessions session.Store
	busy     bool
	success  string
	errMsg   string
}

func newCoordinator(sessions session.Store) *coordinator {
	return &coordinator{sessions: sessions}
}

// Perform launches request unless one is already in flight, in which case it
// returns nil and the submission is discarded. Both status messages are
// cleared up front so nothing stale survives into the new attempt. The
// request runs off the event loop; its entire call sequence (mutation, then
// any dependent refresh) completes before the result message is delivered.
func (c *coordinator) Perform(request func() (any, error), successMsg string) tea.Cmd {
	if c.busy {
		return nil
	}
	c.busy = true
	c.success = ""
	c.errMsg = ""
	epoch := c.sessions.Epoch()
	return func() tea.Msg {
		payload, err := request()
		return actionDoneMsg{epoch: epoch, payload: payload, success: successMsg, err: err}
	}
}

// Resolve applies a finished action to the coordinator's state and classifies
// it for the view. fallback is shown when a failure carries no server detail;
// adminScoped widens auth rejection to 403 responses.
func (c *coordinator) Resolve(msg actionDoneMsg, fallback string, adminScoped bool) outcome {
	if msg.epoch != c.sessions.Epoch() {
		// The initiating session has been cleared or replaced since launch.
		return outcomeStale
	}
	c.busy = false

	if msg.err == nil {
		c.success = msg.success
		return outcomeSuccess
	}

	if apiErr, ok := api.AsError(msg.err); ok {
		if apiErr.AuthRejected(adminScoped) {
			return outcomeAuthRejected
		}
		if apiErr.Detail != "" {
			c.errMsg = apiErr.Detail
			return outcomeFailure
		}
	}
	c.errMsg = fallback
	return outcomeFailure
}

// Busy reports whether a request is in flight.
func (c *coordinator) Busy() bool {
	return c.busy
}

// errorDetail extracts the server's detail string, or the fallback when the
// failure carries none (transport errors included).
func errorDetail(err error, fallback string) string {
	if apiErr, ok := api.AsError(err); ok && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
