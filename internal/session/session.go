// Package session owns the client's credential state: the bearer token and
// role flag issued at login, persisted across restarts, and the view-admission
// rules derived from them.
package session

// Session is the credential snapshot for the current login. The token is an
// opaque bearer string; the client never inspects its contents. The admin flag
// is meaningful only while a token is present.
type Session struct {
	Token   string `json:"token"`
	IsAdmin bool   `json:"is_admin"`
}

// Authenticated reports whether any login is active.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// IsAdminSession reports whether an admin login is active. An admin flag
// without a token counts as unauthenticated.
func (s Session) IsAdminSession() bool {
	return s.Token != "" && s.IsAdmin
}

// Store captures the credential operations the rest of the client depends on.
// Writes are always full replacements: a store never exposes a token without
// its role flag or vice versa.
type Store interface {
	// Current returns the present session snapshot. It never fails; an
	// unreadable backing store reads as logged out.
	Current() Session
	// Set atomically replaces both credential fields.
	Set(s Session) error
	// Clear removes both credential fields. Idempotent.
	Clear() error
	// Epoch returns a counter that advances on every Set and Clear. Async
	// results tagged with the epoch at launch can detect that the session
	// which initiated them is no longer the active one.
	Epoch() uint64
}
