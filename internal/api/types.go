package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type values as the wallet service reports them.
const (
	TxDeposit     = "deposit"
	TxWithdraw    = "withdraw"
	TxTransferIn  = "transfer_in"
	TxTransferOut = "transfer_out"
)

// TokenResponse is the payload of a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Wallet is the authoritative wallet record returned by the create-or-fetch
// call. Balance may lag the transaction ledger; see wallet.DisplayBalance.
type Wallet struct {
	ID      int64           `json:"id"`
	UserID  int64           `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

// Balance is the payload of a successful balance-mutating call.
type Balance struct {
	Balance decimal.Decimal `json:"balance"`
}

// Transaction is one immutable ledger entry. Ordering is server-defined and
// must be preserved as received.
type Transaction struct {
	ID               int64           `json:"id"`
	WalletID         int64           `json:"wallet_id"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Timestamp        time.Time       `json:"timestamp"`
	CounterpartyName string          `json:"counterparty_name,omitempty"`
}

// User is one row of the administrative user listing.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
	IsFrozen bool   `json:"is_frozen"`
}

// Message is the generic acknowledgement payload.
type Message struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	Email  string          `json:"email"`
	Amount decimal.Decimal `json:"amount"`
}

type adminDepositRequest struct {
	Email  string          `json:"email"`
	Amount decimal.Decimal `json:"amount"`
}

type userStatusRequest struct {
	Email string `json:"email"`
}

type freezeUserRequest struct {
	UserEmail string `json:"user_email"`
}

// ErrorBody is the error envelope every endpoint uses for failures.
type ErrorBody struct {
	Detail string `json:"detail"`
}
