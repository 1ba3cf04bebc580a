package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arunkumar231105/digital-wallet-client/internal/session"
)

type registerDoneMsg struct {
	admin bool
	err   error
}

type registerScreen struct {
	deps    Deps
	admin   bool
	name    field
	email   field
	passwd  field
	focus   int
	busy    bool
	success string
	errMsg  string
}

func newRegister(deps Deps, admin bool) screenModel {
	return &registerScreen{
		deps:   deps,
		admin:  admin,
		name:   field{label: "Name", placeholder: "Full name"},
		email:  field{label: "Email", placeholder: "you@example.com"},
		passwd: field{label: "Password", secret: true},
	}
}

func (s *registerScreen) Init() tea.Cmd {
	return nil
}

func (s *registerScreen) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		switch v.Type {
		case tea.KeyTab, tea.KeyDown:
			s.focus = (s.focus + 1) % 3
			return s, nil
		case tea.KeyShiftTab, tea.KeyUp:
			s.focus = (s.focus + 2) % 3
			return s, nil
		case tea.KeyEnter:
			return s, s.submit()
		case tea.KeyEsc:
			if s.admin {
				return s, navigate(session.RouteAdminLogin)
			}
			return s, navigate(session.RouteLogin)
		default:
			s.focused().handleKey(v)
			return s, nil
		}

	case registerDoneMsg:
		if v.admin != s.admin {
			return s, nil
		}
		s.busy = false
		if v.err != nil {
			fallback := "Registration failed"
			if s.admin {
				fallback = "Admin registration failed"
			}
			s.errMsg = errorDetail(v.err, fallback)
			return s, nil
		}
		// Registration does not log in; hand off to the login screen.
		if s.admin {
			s.success = "Admin registered successfully. Continue to admin login."
			return s, navigate(session.RouteAdminLogin)
		}
		s.success = "Registration successful. Please log in."
		return s, navigate(session.RouteLogin)
	}
	return s, nil
}

func (s *registerScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	name := strings.TrimSpace(s.name.value)
	email := strings.TrimSpace(s.email.value)
	password := s.passwd.value
	if name == "" || email == "" || password == "" {
		s.errMsg = "All fields are required"
		return nil
	}

	s.busy = true
	s.success = ""
	s.errMsg = ""
	admin := s.admin
	client := s.deps.Client
	return func() tea.Msg {
		if admin {
			return registerDoneMsg{admin: true, err: client.AdminRegister(context.Background(), name, email, password)}
		}
		return registerDoneMsg{admin: false, err: client.Register(context.Background(), name, email, password)}
	}
}

func (s *registerScreen) focused() *field {
	switch s.focus {
	case 1:
		return &s.email
	case 2:
		return &s.passwd
	default:
		return &s.name
	}
}

func (s *registerScreen) View() string {
	title := "Create Account"
	if s.admin {
		title = "Create Admin Account"
	}

	button := "Register"
	if s.busy {
		button = "Registering..."
	}

	lines := []string{
		titleStyle.Render(title),
		"",
		renderField(&s.name, s.focus == 0),
		renderField(&s.email, s.focus == 1),
		renderField(&s.passwd, s.focus == 2),
		"",
		"[ " + button + " ]",
	}
	if msg := statusLine(s.success, s.errMsg); msg != "" {
		lines = append(lines, "", msg)
	}
	lines = append(lines, "", subtleStyle.Render("enter: register • tab: next field • esc: back to login • ctrl+c: quit"))
	return cardStyle.Render(strings.Join(lines, "\n"))
}
