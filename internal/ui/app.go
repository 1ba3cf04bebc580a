// Package ui is the terminal front end: one screen per page of the original
// wallet app, routed through the session guard, with the inactivity monitor
// and action coordinator enforcing the client's session rules.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/arunkumar231105/digital-wallet-client/internal/api"
	"github.com/arunkumar231105/digital-wallet-client/internal/session"
)

// Routes beyond the two login targets the guard knows about.
const (
	RouteRegister       session.Route = "/register"
	RouteAdminRegister  session.Route = "/admin-register"
	RouteDashboard      session.Route = "/dashboard"
	RouteAdminDashboard session.Route = "/admin/dashboard"
)

// navigateMsg asks the root model to switch screens.
type navigateMsg struct {
	to session.Route
}

func navigate(to session.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

// forcedLogoutMsg asks the root model to clear the session and land on the
// given login screen. Emitted on auth rejections and self-deactivation.
type forcedLogoutMsg struct {
	to session.Route
}

func forceLogout(to session.Route) tea.Cmd {
	return func() tea.Msg { return forcedLogoutMsg{to: to} }
}

// screenModel is one routed screen. Update returns the replacement screen so
// screens stay value-typed like the root model's children in Bubble Tea.
type screenModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screenModel, tea.Cmd)
	View() string
}

// Deps bundles what every screen needs.
type Deps struct {
	Sessions    session.Store
	Client      *api.Client
	IdleTimeout time.Duration
	Log         *zap.Logger
}

// App is the root model. It owns routing, the guard check on every
// navigation, and the per-view inactivity monitor.
type App struct {
	deps   Deps
	route  session.Route
	screen screenModel
	idle   *idleMonitor
	width  int
}

// NewApp starts at the user login screen, or straight on a dashboard when a
// persisted session admits it.
func NewApp(deps Deps) *App {
	a := &App{deps: deps}
	start := session.RouteLogin
	if s := deps.Sessions.Current(); s.IsAdminSession() {
		start = RouteAdminDashboard
	} else if s.Authenticated() {
		start = RouteDashboard
	}
	a.mount(start)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.screen.Init(), a.armIdle())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = v.Width
		return a, nil

	case tea.KeyMsg:
		if v.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		var cmds []tea.Cmd
		if a.idle != nil {
			cmds = append(cmds, a.idle.Reset())
		}
		var cmd tea.Cmd
		a.screen, cmd = a.screen.Update(msg)
		return a, tea.Batch(append(cmds, cmd)...)

	case tea.MouseMsg:
		// Pointer movement, presses, and wheel scrolling all qualify as
		// activity; the screens themselves do not consume the mouse.
		if a.idle != nil {
			return a, a.idle.Reset()
		}
		return a, nil

	case idleExpiredMsg:
		if a.idle == nil || !a.idle.Expired(v) {
			return a, nil
		}
		// Hard expiry: drop the whole session and land on the user login
		// screen no matter which dashboard was active.
		if err := a.deps.Sessions.Clear(); err != nil {
			a.deps.Log.Warn("clear session", zap.Error(err))
		}
		a.deps.Log.Info("session expired from inactivity")
		return a, a.goTo(session.RouteLogin)

	case navigateMsg:
		return a, a.goTo(v.to)

	case forcedLogoutMsg:
		if err := a.deps.Sessions.Clear(); err != nil {
			a.deps.Log.Warn("clear session", zap.Error(err))
		}
		return a, a.goTo(v.to)
	}

	var cmd tea.Cmd
	a.screen, cmd = a.screen.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	return a.screen.View()
}

// goTo mounts the screen for a route and returns its startup commands.
func (a *App) goTo(to session.Route) tea.Cmd {
	a.mount(to)
	return tea.Batch(a.screen.Init(), a.armIdle())
}

// mount runs the guard for protected routes and swaps the active screen. The
// previous view's idle monitor is always released first so no timer survives
// the switch.
func (a *App) mount(to session.Route) {
	if a.idle != nil {
		a.idle.Disarm()
		a.idle = nil
	}

	snapshot := a.deps.Sessions.Current()
	switch to {
	case RouteDashboard:
		if d := session.Check(session.ViewUser, snapshot); !d.Admit {
			a.mountPublic(d.RedirectTo)
			return
		}
		a.route = to
		a.screen = newDashboard(a.deps)
		a.idle = newIdleMonitor(a.deps.IdleTimeout)
	case RouteAdminDashboard:
		if d := session.Check(session.ViewAdmin, snapshot); !d.Admit {
			a.mountPublic(d.RedirectTo)
			return
		}
		a.route = to
		a.screen = newAdminDashboard(a.deps)
		a.idle = newIdleMonitor(a.deps.IdleTimeout)
	default:
		a.mountPublic(to)
	}
}

func (a *App) mountPublic(to session.Route) {
	a.route = to
	switch to {
	case RouteRegister:
		a.screen = newRegister(a.deps, false)
	case RouteAdminRegister:
		a.screen = newRegister(a.deps, true)
	case session.RouteAdminLogin:
		a.screen = newLogin(a.deps, true)
	default:
		a.route = session.RouteLogin
		a.screen = newLogin(a.deps, false)
	}
}

func (a *App) armIdle() tea.Cmd {
	if a.idle == nil {
		return nil
	}
	return a.idle.Arm()
}

// Route exposes the active route for tests.
func (a *App) Route() session.Route {
	return a.route
}

// Run launches the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(NewApp(deps), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
