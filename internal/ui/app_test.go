package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arunkumar231105/digital-wallet-client/internal/api"
	"github.com/arunkumar231105/digital-wallet-client/internal/session"
)

func newTestDeps(t *testing.T, handler http.Handler, s session.Session) Deps {
	t.Helper()
	baseURL := ""
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}

	store := session.NewMemoryStore()
	if s.Authenticated() {
		require.NoError(t, store.Set(s))
	}
	return Deps{
		Sessions:    store,
		Client:      api.New(baseURL, store),
		IdleTimeout: 30 * time.Second,
		Log:         zap.NewNop(),
	}
}

func TestAppStartsAtLoginWithoutSession(t *testing.T) {
	app := NewApp(newTestDeps(t, nil, session.Session{}))
	require.Equal(t, session.RouteLogin, app.Route())
}

func TestAppResumesPersistedSession(t *testing.T) {
	app := NewApp(newTestDeps(t, nil, session.Session{Token: "tok"}))
	require.Equal(t, RouteDashboard, app.Route())

	app = NewApp(newTestDeps(t, nil, session.Session{Token: "tok", IsAdmin: true}))
	require.Equal(t, RouteAdminDashboard, app.Route())
}

func TestAppDeniesAdminRouteToNonAdmin(t *testing.T) {
	app := NewApp(newTestDeps(t, nil, session.Session{Token: "tok"}))

	model, _ := app.Update(navigateMsg{to: RouteAdminDashboard})
	app = model.(*App)
	require.Equal(t, session.RouteAdminLogin, app.Route())
}

func TestAppIdleExpiryClearsSessionAndLandsOnLogin(t *testing.T) {
	deps := newTestDeps(t, nil, session.Session{Token: "tok", IsAdmin: true})
	app := NewApp(deps)
	_ = app.Init()
	require.Equal(t, RouteAdminDashboard, app.Route())
	require.NotNil(t, app.idle)

	model, _ := app.Update(idleExpiredMsg{generation: app.idle.generation})
	app = model.(*App)

	// Even an admin session expires to the user login screen, fully cleared.
	require.Equal(t, session.RouteLogin, app.Route())
	require.Equal(t, session.Session{}, deps.Sessions.Current())
}

func TestAppKeyPressRestartsIdleWindow(t *testing.T) {
	app := NewApp(newTestDeps(t, nil, session.Session{Token: "tok"}))
	_ = app.Init()
	require.NotNil(t, app.idle)
	stale := app.idle.generation

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	app = model.(*App)

	// The pre-keypress timer no longer expires the session.
	model, _ = app.Update(idleExpiredMsg{generation: stale})
	app = model.(*App)
	require.Equal(t, RouteDashboard, app.Route())
	require.True(t, app.deps.Sessions.Current().Authenticated())
}

func TestAppStaleExpiryAfterNavigationIsIgnored(t *testing.T) {
	app := NewApp(newTestDeps(t, nil, session.Session{Token: "tok"}))
	_ = app.Init()
	stale := app.idle.generation

	// Normal logout releases the dashboard's monitor.
	model, _ := app.Update(forcedLogoutMsg{to: session.RouteLogin})
	app = model.(*App)
	require.Equal(t, session.RouteLogin, app.Route())

	model, _ = app.Update(idleExpiredMsg{generation: stale})
	app = model.(*App)
	require.Equal(t, session.RouteLogin, app.Route())
}

func TestAdminDepositSuccessScenario(t *testing.T) {
	depositCalls := 0
	var depositBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/deposit", func(w http.ResponseWriter, r *http.Request) {
		depositCalls++
		json.NewDecoder(r.Body).Decode(&depositBody)
		json.NewEncoder(w).Encode(api.Message{Message: "Deposit successful"})
	})
	mux.HandleFunc("/admin/users", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.User{
			{ID: 1, Name: "User", Email: "user@example.com", IsActive: true},
		})
	})

	deps := newTestDeps(t, mux, session.Session{Token: "tok", IsAdmin: true})
	screen := newAdminDashboard(deps).(*adminScreen)
	screen.loading = false
	screen.depositEmail.value = "user@example.com"
	screen.depositAmount.value = "25.00"
	screen.statusEmail.value = "keep@example.com"

	cmd := screen.submitDeposit()
	require.NotNil(t, cmd)

	// A second submission while the first is in flight is dropped.
	require.Nil(t, screen.submitDeposit())

	model, _ := screen.Update(cmd())
	screen = model.(*adminScreen)

	require.Equal(t, 1, depositCalls)
	require.Equal(t, "25", depositBody["amount"])
	require.Equal(t, "Deposit successful", screen.coord.success)
	require.Empty(t, screen.coord.errMsg)
	require.Len(t, screen.users, 1)

	// The deposit form resets; the status email field is untouched.
	require.Empty(t, screen.depositEmail.value)
	require.Empty(t, screen.depositAmount.value)
	require.Equal(t, "keep@example.com", screen.statusEmail.value)
}

func TestDashboardWithdrawClearsAmountsKeepsRecipient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wallet/withdraw", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"balance": "70.00"})
	})
	mux.HandleFunc("/wallet/transactions", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.Transaction{})
	})

	deps := newTestDeps(t, mux, session.Session{Token: "tok"})
	screen := newDashboard(deps).(*dashboardScreen)
	screen.loading = false
	screen.withdrawAmount.value = "30"
	screen.transferEmail.value = "friend@example.com"
	screen.transferAmount.value = "5"

	cmd := screen.submitWithdraw()
	require.NotNil(t, cmd)
	model, _ := screen.Update(cmd())
	screen = model.(*dashboardScreen)

	require.Equal(t, "Withdraw successful", screen.coord.success)
	require.Empty(t, screen.withdrawAmount.value)
	require.Empty(t, screen.transferAmount.value)
	require.Equal(t, "friend@example.com", screen.transferEmail.value)
}

func TestDashboardAuthRejectionForcesLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wallet/withdraw", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(api.ErrorBody{Detail: "Could not validate credentials"})
	})

	deps := newTestDeps(t, mux, session.Session{Token: "stale"})
	screen := newDashboard(deps).(*dashboardScreen)
	screen.loading = false
	screen.withdrawAmount.value = "30"

	cmd := screen.submitWithdraw()
	require.NotNil(t, cmd)
	_, next := screen.Update(cmd())
	require.NotNil(t, next)
	require.Equal(t, forcedLogoutMsg{to: session.RouteLogin}, next())
}
