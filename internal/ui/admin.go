package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/arunkumar231105/digital-wallet-client/internal/api"
	"github.com/arunkumar231105/digital-wallet-client/internal/session"
	"github.com/arunkumar231105/digital-wallet-client/internal/wallet"
)

type usersLoadedMsg struct {
	epoch uint64
	users []api.User
	err   error
}

// adminActionResult carries the refreshed user listing after a successful
// admin mutation.
type adminActionResult struct {
	users []api.User
}

// historyResult carries another user's ledger after a lookup.
type historyResult struct {
	txs []api.Transaction
}

type adminScreen struct {
	deps    Deps
	coord   *coordinator
	loading bool

	users   []api.User
	userTxs []api.Transaction
	// The original clears the loaded history when a lookup fails; remember
	// whether the in-flight action was a lookup so failure can do the same.
	historyPending bool
	// pendingReset clears the in-flight action's own form fields on success.
	// Only those fields: a successful deposit leaves the status email alone.
	pendingReset func()

	depositEmail  field
	depositAmount field
	statusEmail   field
	freezeEmail   field
	txEmail       field
	focus         int
}

func newAdminDashboard(deps Deps) screenModel {
	return &adminScreen{
		deps:          deps,
		coord:         newCoordinator(deps.Sessions),
		loading:       true,
		depositEmail:  field{label: "User email", placeholder: "user@example.com"},
		depositAmount: field{label: "Amount", placeholder: "0.00"},
		statusEmail:   field{label: "User email", placeholder: "user@example.com"},
		freezeEmail:   field{label: "User email", placeholder: "user@example.com"},
		txEmail:       field{label: "User email", placeholder: "user@example.com"},
	}
}

func (s *adminScreen) Init() tea.Cmd {
	epoch := s.deps.Sessions.Epoch()
	client := s.deps.Client
	return func() tea.Msg {
		users, err := client.ListUsers(context.Background())
		return usersLoadedMsg{epoch: epoch, users: users, err: err}
	}
}

func (s *adminScreen) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch v := msg.(type) {
	case usersLoadedMsg:
		if v.epoch != s.deps.Sessions.Epoch() {
			return s, nil
		}
		s.loading = false
		if v.err != nil {
			if apiErr, ok := api.AsError(v.err); ok && apiErr.AuthRejected(true) {
				return s, forceLogout(session.RouteAdminLogin)
			}
			s.coord.errMsg = errorDetail(v.err, "Failed to load users")
			return s, nil
		}
		s.users = v.users
		return s, nil

	case actionDoneMsg:
		historyPending, reset := s.historyPending, s.pendingReset
		s.historyPending, s.pendingReset = false, nil
		switch s.coord.Resolve(v, "Request failed", true) {
		case outcomeAuthRejected:
			return s, forceLogout(session.RouteAdminLogin)
		case outcomeSuccess:
			switch payload := v.payload.(type) {
			case adminActionResult:
				s.users = payload.users
			case historyResult:
				s.userTxs = payload.txs
			}
			if reset != nil {
				reset()
			}
		case outcomeFailure:
			if historyPending {
				s.userTxs = nil
			}
		case outcomeStale:
			s.historyPending, s.pendingReset = historyPending, reset
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(v)
	}
	return s, nil
}

func (s *adminScreen) handleKey(k tea.KeyMsg) (screenModel, tea.Cmd) {
	switch k.Type {
	case tea.KeyTab, tea.KeyDown:
		s.focus = (s.focus + 1) % 5
		return s, nil
	case tea.KeyShiftTab, tea.KeyUp:
		s.focus = (s.focus + 4) % 5
		return s, nil
	case tea.KeyEnter:
		switch s.focus {
		case 0, 1:
			return s, s.submitDeposit()
		case 2:
			return s, s.submitStatus(false)
		case 3:
			return s, s.submitFreeze(true)
		default:
			return s, s.submitHistory()
		}
	case tea.KeyCtrlA:
		if s.focus == 2 {
			return s, s.submitStatus(true)
		}
		return s, nil
	case tea.KeyCtrlU:
		if s.focus == 3 {
			return s, s.submitFreeze(false)
		}
		return s, nil
	case tea.KeyCtrlL:
		return s, forceLogout(session.RouteAdminLogin)
	default:
		s.focused().handleKey(k)
		return s, nil
	}
}

// refreshUsers wraps an admin mutation so the listing is replayed only after
// the mutation itself succeeded.
func (s *adminScreen) refreshUsers(mutate func(ctx context.Context) error) func() (any, error) {
	client := s.deps.Client
	return func() (any, error) {
		ctx := context.Background()
		if err := mutate(ctx); err != nil {
			return nil, err
		}
		users, err := client.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		return adminActionResult{users: users}, nil
	}
}

func (s *adminScreen) submitDeposit() tea.Cmd {
	email := strings.TrimSpace(s.depositEmail.value)
	amount, err := decimal.NewFromString(strings.TrimSpace(s.depositAmount.value))
	if err != nil || email == "" {
		s.coord.success = ""
		s.coord.errMsg = "Enter a user email and a valid amount"
		return nil
	}
	client := s.deps.Client
	cmd := s.coord.Perform(s.refreshUsers(func(ctx context.Context) error {
		return client.AdminDeposit(ctx, email, amount)
	}), "Deposit successful")
	if cmd != nil {
		// Only the deposit form resets on success; see resolveDeposit below.
		s.pendingReset = func() {
			s.depositEmail.reset()
			s.depositAmount.reset()
		}
	}
	return cmd
}

func (s *adminScreen) submitStatus(activate bool) tea.Cmd {
	email := strings.TrimSpace(s.statusEmail.value)
	if email == "" {
		s.coord.success = ""
		s.coord.errMsg = "Enter a user email"
		return nil
	}
	client := s.deps.Client
	action, success := client.DeactivateUser, "User deactivated"
	if activate {
		action, success = client.ActivateUser, "User activated"
	}
	cmd := s.coord.Perform(s.refreshUsers(func(ctx context.Context) error {
		return action(ctx, email)
	}), success)
	if cmd != nil {
		s.pendingReset = s.statusEmail.reset
	}
	return cmd
}

func (s *adminScreen) submitFreeze(freeze bool) tea.Cmd {
	email := strings.TrimSpace(s.freezeEmail.value)
	if email == "" {
		s.coord.success = ""
		s.coord.errMsg = "Enter a user email"
		return nil
	}
	client := s.deps.Client
	action, success := client.UnfreezeUser, "User unfrozen"
	if freeze {
		action, success = client.FreezeUser, "User frozen"
	}
	cmd := s.coord.Perform(s.refreshUsers(func(ctx context.Context) error {
		return action(ctx, email)
	}), success)
	if cmd != nil {
		s.pendingReset = s.freezeEmail.reset
	}
	return cmd
}

func (s *adminScreen) submitHistory() tea.Cmd {
	email := strings.TrimSpace(s.txEmail.value)
	if email == "" {
		s.coord.success = ""
		s.coord.errMsg = "Enter a user email"
		return nil
	}
	client := s.deps.Client
	cmd := s.coord.Perform(func() (any, error) {
		txs, err := client.UserTransactions(context.Background(), email)
		if err != nil {
			return nil, err
		}
		return historyResult{txs: txs}, nil
	}, "Loaded user transaction history")
	if cmd != nil {
		s.historyPending = true
		s.pendingReset = nil
	}
	return cmd
}

func (s *adminScreen) focused() *field {
	switch s.focus {
	case 1:
		return &s.depositAmount
	case 2:
		return &s.statusEmail
	case 3:
		return &s.freezeEmail
	case 4:
		return &s.txEmail
	default:
		return &s.depositEmail
	}
}

func (s *adminScreen) View() string {
	if s.loading {
		return cardStyle.Render("Loading admin dashboard...")
	}

	working := ""
	if s.coord.Busy() {
		working = subtleStyle.Render(" (processing...)")
	}

	lines := []string{
		titleStyle.Render("Admin Dashboard") + working,
		subtleStyle.Render("Manage users and balances"),
		"",
		headerStyle.Render("Deposit"),
		renderField(&s.depositEmail, s.focus == 0),
		renderField(&s.depositAmount, s.focus == 1),
		"",
		headerStyle.Render("Account Status") + subtleStyle.Render("  enter: deactivate • ctrl+a: activate"),
		renderField(&s.statusEmail, s.focus == 2),
		"",
		headerStyle.Render("Freeze") + subtleStyle.Render("  enter: freeze • ctrl+u: unfreeze"),
		renderField(&s.freezeEmail, s.focus == 3),
		"",
		headerStyle.Render("User Transactions") + subtleStyle.Render("  enter: load history"),
		renderField(&s.txEmail, s.focus == 4),
	}
	if msg := statusLine(s.coord.success, s.coord.errMsg); msg != "" {
		lines = append(lines, "", msg)
	}
	lines = append(lines, "", headerStyle.Render("Users"), s.userTable())
	if len(s.userTxs) > 0 {
		lines = append(lines, "", headerStyle.Render("User Transaction History"), s.historyTable())
	}
	lines = append(lines, "", subtleStyle.Render("tab: next field • ctrl+l: logout • ctrl+c: quit"))
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (s *adminScreen) userTable() string {
	if len(s.users) == 0 {
		return subtleStyle.Render("No users found")
	}
	rows := make([]string, 0, len(s.users)+1)
	rows = append(rows, fmt.Sprintf("%-6s %-20s %-28s %-7s %-6s %-6s", "ID", "Name", "Email", "Active", "Admin", "Frozen"))
	for _, u := range s.users {
		rows = append(rows, fmt.Sprintf("%-6d %-20s %-28s %-7s %-6s %-6s",
			u.ID, u.Name, u.Email, yesNo(u.IsActive), yesNo(u.IsAdmin), yesNo(u.IsFrozen)))
	}
	return strings.Join(rows, "\n")
}

func (s *adminScreen) historyTable() string {
	rows := make([]string, 0, len(s.userTxs))
	for _, tx := range s.userTxs {
		rows = append(rows, fmt.Sprintf("%-6d %-14s %12s  %s",
			tx.ID, tx.Type, "$"+wallet.FormatAmount(tx.Amount), tx.Timestamp.Local().Format("2006-01-02 15:04:05")))
	}
	return strings.Join(rows, "\n")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
