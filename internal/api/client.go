// Package api is the typed HTTP client for the wallet service. It owns wire
// shapes and error classification; it holds no view state and performs no
// retries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arunkumar231105/digital-wallet-client/internal/session"
)

// Error is a failure response from the wallet service carrying the
// human-readable detail string the server attached, if any.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("wallet api: status %d", e.Status)
	}
	return e.Detail
}

// AuthRejected reports whether the failure means the current credentials are
// no longer acceptable. A 403 counts only for admin-scoped calls, where it
// signals a session that lacks the admin role rather than a business rule.
func (e *Error) AuthRejected(adminScoped bool) bool {
	if e.Status == http.StatusUnauthorized {
		return true
	}
	return adminScoped && e.Status == http.StatusForbidden
}

// Client issues requests against the wallet service, injecting the bearer
// token from the session store on every call.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions session.Store
}

// New creates a client for the service at baseURL.
func New(baseURL string, sessions session.Store) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 15 * time.Second},
		sessions: sessions,
	}
}

// Login authenticates a regular user. The caller stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &out)
	return out, err
}

// Register creates a regular user account.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, nil)
}

// AdminLogin authenticates an administrator.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/admin/login", loginRequest{Email: email, Password: password}, &out)
	return out, err
}

// AdminRegister creates an administrator account.
func (c *Client) AdminRegister(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, "/admin/register", registerRequest{Name: name, Email: email, Password: password}, nil)
}

// CreateOrFetchWallet returns the caller's wallet, creating it on first use.
func (c *Client) CreateOrFetchWallet(ctx context.Context) (Wallet, error) {
	var out Wallet
	err := c.do(ctx, http.MethodPost, "/wallet/create", nil, &out)
	return out, err
}

// ListTransactions returns the caller's ledger in server order.
func (c *Client) ListTransactions(ctx context.Context) ([]Transaction, error) {
	var out []Transaction
	err := c.do(ctx, http.MethodGet, "/wallet/transactions", nil, &out)
	return out, err
}

// Withdraw removes funds from the caller's wallet.
func (c *Client) Withdraw(ctx context.Context, amount decimal.Decimal) (Balance, error) {
	var out Balance
	err := c.do(ctx, http.MethodPost, "/wallet/withdraw", amountRequest{Amount: amount}, &out)
	return out, err
}

// Transfer moves funds to the wallet of the user with the given email.
func (c *Client) Transfer(ctx context.Context, email string, amount decimal.Decimal) (Balance, error) {
	var out Balance
	err := c.do(ctx, http.MethodPost, "/wallet/transfer", transferRequest{Email: email, Amount: amount}, &out)
	return out, err
}

// DeactivateSelf disables the caller's own account.
func (c *Client) DeactivateSelf(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/users/deactivate", nil, nil)
}

// ListUsers returns every user record. Admin-scoped.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := c.do(ctx, http.MethodGet, "/admin/users", nil, &out)
	return out, err
}

// AdminDeposit credits a user's wallet. Admin-scoped.
func (c *Client) AdminDeposit(ctx context.Context, email string, amount decimal.Decimal) error {
	return c.do(ctx, http.MethodPost, "/admin/deposit", adminDepositRequest{Email: email, Amount: amount}, nil)
}

// DeactivateUser disables a user account. Admin-scoped.
func (c *Client) DeactivateUser(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/admin/deactivate-user", userStatusRequest{Email: email}, nil)
}

// ActivateUser re-enables a user account. Admin-scoped.
func (c *Client) ActivateUser(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/admin/activate-user", userStatusRequest{Email: email}, nil)
}

// FreezeUser blocks a user's balance mutations. Admin-scoped.
func (c *Client) FreezeUser(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/admin/freeze-user", freezeUserRequest{UserEmail: email}, nil)
}

// UnfreezeUser lifts a freeze. Admin-scoped.
func (c *Client) UnfreezeUser(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/admin/unfreeze-user", freezeUserRequest{UserEmail: email}, nil)
}

// UserTransactions returns another user's ledger in server order. Admin-scoped.
func (c *Client) UserTransactions(ctx context.Context, email string) ([]Transaction, error) {
	var out []Transaction
	path := "/admin/user-transactions?email=" + url.QueryEscape(email)
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s := c.sessions.Current(); s.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("wallet api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var eb ErrorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Detail = eb.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// AsError unwraps err into an *Error when the failure came from the service.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
