package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arunkumar231105/digital-wallet-client/internal/session"
)

// loginDoneMsg resolves a login attempt. Unlike dashboard actions the token
// is applied on the event loop, never from the request goroutine, so the
// credential store only ever sees full single-threaded writes.
type loginDoneMsg struct {
	admin bool
	token string
	err   error
}

type loginScreen struct {
	deps    Deps
	admin   bool
	email   field
	passwd  field
	focus   int
	busy    bool
	errMsg  string
	fallbck string
}

func newLogin(deps Deps, admin bool) screenModel {
	fallback := "Login failed"
	if admin {
		fallback = "Admin login failed"
	}
	return &loginScreen{
		deps:    deps,
		admin:   admin,
		email:   field{label: "Email", placeholder: "you@example.com"},
		passwd:  field{label: "Password", secret: true},
		fallbck: fallback,
	}
}

func (s *loginScreen) Init() tea.Cmd {
	return nil
}

func (s *loginScreen) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		switch v.Type {
		case tea.KeyTab, tea.KeyDown:
			s.focus = (s.focus + 1) % 2
			return s, nil
		case tea.KeyShiftTab, tea.KeyUp:
			s.focus = (s.focus + 1) % 2
			return s, nil
		case tea.KeyEnter:
			return s, s.submit()
		case tea.KeyCtrlR:
			if s.admin {
				return s, navigate(RouteAdminRegister)
			}
			return s, navigate(RouteRegister)
		case tea.KeyCtrlA:
			if s.admin {
				return s, navigate(session.RouteLogin)
			}
			return s, navigate(session.RouteAdminLogin)
		default:
			s.focused().handleKey(v)
			return s, nil
		}

	case loginDoneMsg:
		if v.admin != s.admin {
			return s, nil
		}
		s.busy = false
		if v.err != nil {
			s.errMsg = errorDetail(v.err, s.fallbck)
			return s, nil
		}
		if err := s.deps.Sessions.Set(session.Session{Token: v.token, IsAdmin: s.admin}); err != nil {
			s.errMsg = "Failed to save session"
			return s, nil
		}
		if s.admin {
			return s, navigate(RouteAdminDashboard)
		}
		return s, navigate(RouteDashboard)
	}
	return s, nil
}

func (s *loginScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	email := strings.TrimSpace(s.email.value)
	password := s.passwd.value
	if email == "" || password == "" {
		s.errMsg = "Email and password are required"
		return nil
	}

	s.busy = true
	s.errMsg = ""
	admin := s.admin
	client := s.deps.Client
	return func() tea.Msg {
		if admin {
			tok, err := client.AdminLogin(context.Background(), email, password)
			return loginDoneMsg{admin: true, token: tok.AccessToken, err: err}
		}
		tok, err := client.Login(context.Background(), email, password)
		return loginDoneMsg{admin: false, token: tok.AccessToken, err: err}
	}
}

func (s *loginScreen) focused() *field {
	if s.focus == 1 {
		return &s.passwd
	}
	return &s.email
}

func (s *loginScreen) View() string {
	title := "Sign In"
	subtitle := "Choose your access mode"
	hint := "enter: login • tab: next field • ctrl+r: register • ctrl+a: admin login • ctrl+c: quit"
	if s.admin {
		title = "Admin Login"
		subtitle = "Access admin controls"
		hint = "enter: login • tab: next field • ctrl+r: admin register • ctrl+a: user login • ctrl+c: quit"
	}

	button := "Login"
	if s.busy {
		button = "Signing in..."
	}

	lines := []string{
		titleStyle.Render(title),
		subtleStyle.Render(subtitle),
		"",
		renderField(&s.email, s.focus == 0),
		renderField(&s.passwd, s.focus == 1),
		"",
		"[ " + button + " ]",
	}
	if msg := statusLine("", s.errMsg); msg != "" {
		lines = append(lines, "", msg)
	}
	lines = append(lines, "", subtleStyle.Render(hint))
	return cardStyle.Render(strings.Join(lines, "\n"))
}
