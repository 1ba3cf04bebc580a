// Package devserver is an in-memory implementation of the wallet service API,
// used for local development and end-to-end tests of the client. It enforces
// the same business rules and error details as the real backend but keeps no
// durable state.
package devserver

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arunkumar231105/digital-wallet-client/internal/api"
)

type user struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	IsFrozen     bool
}

type walletRecord struct {
	ID      int64
	UserID  int64
	Balance decimal.Decimal
}

type transaction struct {
	ID               int64
	WalletID         int64
	Type             string
	Amount           decimal.Decimal
	Timestamp        time.Time
	CounterpartyName string
}

// state holds all records behind a single mutex. The HTTP server serves
// requests concurrently, unlike the client's event loop.
type state struct {
	mu      sync.Mutex
	users   map[string]*user // keyed by lowercased email
	wallets map[int64]*walletRecord
	txs     []transaction
	nextID  int64
	now     func() time.Time
}

func newState(now func() time.Time) *state {
	if now == nil {
		now = time.Now
	}
	return &state{
		users:   make(map[string]*user),
		wallets: make(map[int64]*walletRecord),
		now:     now,
	}
}

func (st *state) id() int64 {
	st.nextID++
	return st.nextID
}

func (st *state) userByEmail(email string) *user {
	return st.users[strings.ToLower(strings.TrimSpace(email))]
}

func (st *state) userByID(id int64) *user {
	for _, u := range st.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (st *state) walletFor(userID int64) *walletRecord {
	return st.wallets[userID]
}

func (st *state) addUser(name, email, passwordHash string, isAdmin bool) *user {
	u := &user{
		ID:           st.id(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		IsActive:     true,
		IsAdmin:      isAdmin,
	}
	st.users[u.Email] = u
	// Every account gets a wallet at registration, as the backend does.
	st.wallets[u.ID] = &walletRecord{ID: st.id(), UserID: u.ID, Balance: decimal.Zero}
	return u
}

func (st *state) record(walletID int64, txType string, amount decimal.Decimal, counterparty string) {
	st.txs = append(st.txs, transaction{
		ID:               st.id(),
		WalletID:         walletID,
		Type:             txType,
		Amount:           amount,
		Timestamp:        st.now().UTC(),
		CounterpartyName: counterparty,
	})
}

// ledger returns a wallet's transactions newest first.
func (st *state) ledger(walletID int64) []api.Transaction {
	out := make([]api.Transaction, 0)
	for i := len(st.txs) - 1; i >= 0; i-- {
		tx := st.txs[i]
		if tx.WalletID != walletID {
			continue
		}
		out = append(out, api.Transaction{
			ID:               tx.ID,
			WalletID:         tx.WalletID,
			Type:             tx.Type,
			Amount:           tx.Amount,
			Timestamp:        tx.Timestamp,
			CounterpartyName: tx.CounterpartyName,
		})
	}
	return out
}

// dailyTotal sums today's successful transactions of one type for a wallet.
func (st *state) dailyTotal(walletID int64, txType string) decimal.Decimal {
	dayStart := st.now().UTC().Truncate(24 * time.Hour)
	total := decimal.Zero
	for _, tx := range st.txs {
		if tx.WalletID == walletID && tx.Type == txType && !tx.Timestamp.Before(dayStart) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}
