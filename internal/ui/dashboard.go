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

// walletLoadedMsg resolves the initial read of the wallet view: the
// authoritative balance first, then the ledger, in that order.
type walletLoadedMsg struct {
	epoch   uint64
	balance decimal.Decimal
	txs     []api.Transaction
	err     error
}

// userActionResult is the payload of a successful dashboard mutation: the
// balance the server reported, plus the replayed ledger.
type userActionResult struct {
	balance *decimal.Decimal
	txs     []api.Transaction
}

// deactivatedPayload marks a successful self-deactivation, which ends the
// session instead of refreshing it.
type deactivatedPayload struct{}

type dashboardScreen struct {
	deps    Deps
	coord   *coordinator
	loading bool

	authoritative decimal.Decimal
	txs           []api.Transaction

	withdrawAmount field
	transferEmail  field
	transferAmount field
	focus          int
}

func newDashboard(deps Deps) screenModel {
	return &dashboardScreen{
		deps:           deps,
		coord:          newCoordinator(deps.Sessions),
		loading:        true,
		withdrawAmount: field{label: "Amount", placeholder: "0.00"},
		transferEmail:  field{label: "Recipient", placeholder: "user@example.com"},
		transferAmount: field{label: "Amount", placeholder: "0.00"},
	}
}

func (s *dashboardScreen) Init() tea.Cmd {
	epoch := s.deps.Sessions.Epoch()
	client := s.deps.Client
	return func() tea.Msg {
		ctx := context.Background()
		wal, err := client.CreateOrFetchWallet(ctx)
		if err != nil {
			return walletLoadedMsg{epoch: epoch, err: err}
		}
		txs, err := client.ListTransactions(ctx)
		if err != nil {
			return walletLoadedMsg{epoch: epoch, err: err}
		}
		return walletLoadedMsg{epoch: epoch, balance: wal.Balance, txs: txs}
	}
}

func (s *dashboardScreen) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch v := msg.(type) {
	case walletLoadedMsg:
		if v.epoch != s.deps.Sessions.Epoch() {
			return s, nil
		}
		s.loading = false
		if v.err != nil {
			if apiErr, ok := api.AsError(v.err); ok && apiErr.AuthRejected(false) {
				return s, forceLogout(session.RouteLogin)
			}
			s.coord.errMsg = errorDetail(v.err, "Failed to load wallet")
			return s, nil
		}
		s.authoritative = v.balance
		s.txs = v.txs
		return s, nil

	case actionDoneMsg:
		switch s.coord.Resolve(v, "Action failed", false) {
		case outcomeAuthRejected:
			return s, forceLogout(session.RouteLogin)
		case outcomeSuccess:
			switch payload := v.payload.(type) {
			case deactivatedPayload:
				return s, forceLogout(session.RouteLogin)
			case userActionResult:
				if payload.balance != nil {
					s.authoritative = *payload.balance
				}
				s.txs = payload.txs
				s.withdrawAmount.reset()
				s.transferAmount.reset()
			}
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(v)
	}
	return s, nil
}

func (s *dashboardScreen) handleKey(k tea.KeyMsg) (screenModel, tea.Cmd) {
	switch k.Type {
	case tea.KeyTab, tea.KeyDown:
		s.focus = (s.focus + 1) % 3
		return s, nil
	case tea.KeyShiftTab, tea.KeyUp:
		s.focus = (s.focus + 2) % 3
		return s, nil
	case tea.KeyEnter:
		if s.focus == 0 {
			return s, s.submitWithdraw()
		}
		return s, s.submitTransfer()
	case tea.KeyCtrlL:
		// Normal logout; full clear plus the login screen.
		return s, forceLogout(session.RouteLogin)
	case tea.KeyCtrlD:
		return s, s.submitDeactivate()
	default:
		s.focused().handleKey(k)
		return s, nil
	}
}

func (s *dashboardScreen) submitWithdraw() tea.Cmd {
	amount, err := decimal.NewFromString(strings.TrimSpace(s.withdrawAmount.value))
	if err != nil {
		s.coord.success = ""
		s.coord.errMsg = "Enter a valid amount"
		return nil
	}
	client := s.deps.Client
	return s.coord.Perform(func() (any, error) {
		ctx := context.Background()
		bal, err := client.Withdraw(ctx, amount)
		if err != nil {
			return nil, err
		}
		txs, err := client.ListTransactions(ctx)
		if err != nil {
			return nil, err
		}
		return userActionResult{balance: &bal.Balance, txs: txs}, nil
	}, "Withdraw successful")
}

func (s *dashboardScreen) submitTransfer() tea.Cmd {
	email := strings.TrimSpace(s.transferEmail.value)
	amount, err := decimal.NewFromString(strings.TrimSpace(s.transferAmount.value))
	if err != nil || email == "" {
		s.coord.success = ""
		s.coord.errMsg = "Enter a recipient and a valid amount"
		return nil
	}
	client := s.deps.Client
	return s.coord.Perform(func() (any, error) {
		ctx := context.Background()
		bal, err := client.Transfer(ctx, email, amount)
		if err != nil {
			return nil, err
		}
		txs, err := client.ListTransactions(ctx)
		if err != nil {
			return nil, err
		}
		return userActionResult{balance: &bal.Balance, txs: txs}, nil
	}, "Transfer successful")
}

func (s *dashboardScreen) submitDeactivate() tea.Cmd {
	client := s.deps.Client
	return s.coord.Perform(func() (any, error) {
		if err := client.DeactivateSelf(context.Background()); err != nil {
			return nil, err
		}
		return deactivatedPayload{}, nil
	}, "Account deactivated")
}

func (s *dashboardScreen) focused() *field {
	switch s.focus {
	case 1:
		return &s.transferEmail
	case 2:
		return &s.transferAmount
	default:
		return &s.withdrawAmount
	}
}

func (s *dashboardScreen) View() string {
	if s.loading {
		return cardStyle.Render("Loading wallet...")
	}

	balance := wallet.DisplayBalance(s.authoritative, s.txs)

	working := ""
	if s.coord.Busy() {
		working = subtleStyle.Render(" (processing...)")
	}

	lines := []string{
		titleStyle.Render("Wallet Dashboard") + working,
		subtleStyle.Render("Manage your funds securely"),
		"",
		"Current Balance  " + balanceStyle.Render("$"+wallet.FormatAmount(balance)),
		"",
		headerStyle.Render("Withdraw"),
		renderField(&s.withdrawAmount, s.focus == 0),
		"",
		headerStyle.Render("Transfer"),
		renderField(&s.transferEmail, s.focus == 1),
		renderField(&s.transferAmount, s.focus == 2),
	}
	if msg := statusLine(s.coord.success, s.coord.errMsg); msg != "" {
		lines = append(lines, "", msg)
	}
	lines = append(lines, "", headerStyle.Render("Transaction History"), s.historyTable())
	lines = append(lines, "", subtleStyle.Render("enter: submit • tab: next field • ctrl+l: logout • ctrl+d: deactivate account • ctrl+c: quit"))
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (s *dashboardScreen) historyTable() string {
	if len(s.txs) == 0 {
		return subtleStyle.Render("No transactions found")
	}
	rows := make([]string, 0, len(s.txs))
	for _, tx := range s.txs {
		rows = append(rows, fmt.Sprintf("%-6d %-32s %12s  %s",
			tx.ID, describeTx(tx), "$"+wallet.FormatAmount(tx.Amount), tx.Timestamp.Local().Format("2006-01-02 15:04:05")))
	}
	return strings.Join(rows, "\n")
}

// describeTx labels ledger rows the way the web dashboard did.
func describeTx(tx api.Transaction) string {
	switch tx.Type {
	case api.TxTransferOut:
		return "Transferred to " + tx.CounterpartyName
	case api.TxTransferIn:
		return "Received from " + tx.CounterpartyName
	default:
		return tx.Type
	}
}
