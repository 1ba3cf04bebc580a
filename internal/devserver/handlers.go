package devserver

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arunkumar231105/digital-wallet-client/internal/api"
	"github.com/arunkumar231105/digital-wallet-client/internal/config"
)

type handler struct {
	state  *state
	tokens *tokenManager
	cfg    config.ServerConfig
	log    *zap.Logger
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

func (h *handler) register(asAdmin bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.detail(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
			h.detail(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		if len(req.Password) > 72 {
			h.detail(w, http.StatusUnprocessableEntity, "Password cannot be longer than 72 bytes")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.detail(w, http.StatusInternalServerError, "Failed to register")
			return
		}

		h.state.mu.Lock()
		defer h.state.mu.Unlock()
		if h.state.userByEmail(req.Email) != nil {
			h.detail(w, http.StatusBadRequest, "Email already registered")
			return
		}
		u := h.state.addUser(req.Name, req.Email, string(hash), asAdmin)

		h.log.Info("registered user", zap.Int64("id", u.ID), zap.Bool("admin", asAdmin))
		msg := "User registered successfully"
		if asAdmin {
			msg = "Admin registered successfully"
		}
		h.json(w, http.StatusCreated, api.Message{Message: msg})
	}
}

func (h *handler) login(asAdmin bool) http.HandlerFunc {
	badCredentials := "Invalid email or password"
	if asAdmin {
		badCredentials = "Invalid admin credentials"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.detail(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		h.state.mu.Lock()
		u := h.state.userByEmail(req.Email)
		h.state.mu.Unlock()

		if u == nil || !u.IsActive || (asAdmin && !u.IsAdmin) {
			h.detail(w, http.StatusUnauthorized, badCredentials)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			h.detail(w, http.StatusUnauthorized, badCredentials)
			return
		}

		token, err := h.tokens.generate(u.ID)
		if err != nil {
			h.detail(w, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		h.json(w, http.StatusOK, api.TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}

func (h *handler) createWallet(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	wal := h.state.walletFor(u.ID)
	if wal == nil {
		wal = &walletRecord{ID: h.state.id(), UserID: u.ID, Balance: h.cfg.InitialBalance}
		h.state.wallets[u.ID] = wal
	}
	h.json(w, http.StatusOK, api.Wallet{ID: wal.ID, UserID: wal.UserID, Balance: wal.Balance})
}

func (h *handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	wal := h.state.walletFor(u.ID)
	if wal == nil {
		h.detail(w, http.StatusNotFound, "Wallet not found")
		return
	}
	h.json(w, http.StatusOK, h.state.ledger(wal.ID))
}

func (h *handler) withdraw(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	wal := h.state.walletFor(u.ID)
	if wal == nil {
		h.detail(w, http.StatusNotFound, "Wallet not found")
		return
	}
	if !req.Amount.IsPositive() {
		h.detail(w, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}
	if u.IsFrozen {
		h.detail(w, http.StatusForbidden, "Account is frozen")
		return
	}
	if h.state.dailyTotal(wal.ID, api.TxWithdraw).Add(req.Amount).GreaterThan(h.cfg.DailyWithdrawLimit) {
		h.detail(w, http.StatusBadRequest, "Daily withdraw limit exceeded")
		return
	}
	if wal.Balance.LessThan(req.Amount) {
		h.detail(w, http.StatusBadRequest, "Insufficient funds")
		return
	}

	wal.Balance = wal.Balance.Sub(req.Amount)
	h.state.record(wal.ID, api.TxWithdraw, req.Amount, "")
	h.log.Info("withdraw", zap.Int64("user", u.ID), zap.String("amount", req.Amount.String()))
	h.json(w, http.StatusOK, api.Balance{Balance: wal.Balance})
}

func (h *handler) transfer(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	if !req.Amount.IsPositive() {
		h.detail(w, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}
	if u.IsFrozen {
		h.detail(w, http.StatusForbidden, "Account is frozen")
		return
	}
	receiver := h.state.userByEmail(req.Email)
	if receiver == nil || !receiver.IsActive {
		h.detail(w, http.StatusNotFound, "Recipient not found")
		return
	}
	if receiver.IsFrozen {
		h.detail(w, http.StatusForbidden, "Account is frozen")
		return
	}
	if receiver.ID == u.ID {
		h.detail(w, http.StatusBadRequest, "Cannot transfer to self")
		return
	}

	senderWallet := h.state.walletFor(u.ID)
	if senderWallet == nil {
		h.detail(w, http.StatusNotFound, "Wallet not found")
		return
	}
	receiverWallet := h.state.walletFor(receiver.ID)
	if receiverWallet == nil {
		h.detail(w, http.StatusNotFound, "Recipient wallet not found")
		return
	}
	if h.state.dailyTotal(senderWallet.ID, api.TxTransferOut).Add(req.Amount).GreaterThan(h.cfg.DailyTransferLimit) {
		h.detail(w, http.StatusBadRequest, "Daily transfer limit exceeded")
		return
	}
	if senderWallet.Balance.LessThan(req.Amount) {
		h.detail(w, http.StatusBadRequest, "Insufficient funds")
		return
	}

	senderWallet.Balance = senderWallet.Balance.Sub(req.Amount)
	receiverWallet.Balance = receiverWallet.Balance.Add(req.Amount)
	h.state.record(senderWallet.ID, api.TxTransferOut, req.Amount, receiver.Name)
	h.state.record(receiverWallet.ID, api.TxTransferIn, req.Amount, u.Name)
	h.log.Info("transfer",
		zap.Int64("from", u.ID),
		zap.Int64("to", receiver.ID),
		zap.String("amount", req.Amount.String()))
	h.json(w, http.StatusOK, api.Balance{Balance: senderWallet.Balance})
}

func (h *handler) deactivateSelf(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	h.state.mu.Lock()
	u.IsActive = false
	h.state.mu.Unlock()

	h.log.Info("account deactivated", zap.Int64("user", u.ID))
	h.json(w, http.StatusOK, api.Message{Message: "Account deactivated"})
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	out := make([]api.User, 0, len(h.state.users))
	for _, u := range h.state.users {
		out = append(out, api.User{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			IsActive: u.IsActive,
			IsAdmin:  u.IsAdmin,
			IsFrozen: u.IsFrozen,
		})
	}
	// Map iteration order is random; present a stable listing.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	h.json(w, http.StatusOK, out)
}

func (h *handler) adminDeposit(w http.ResponseWriter, r *http.Request) {
	admin := currentUser(r)
	var req adminDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	if !req.Amount.IsPositive() {
		h.detail(w, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}
	if admin.IsFrozen {
		h.detail(w, http.StatusForbidden, "Account is frozen")
		return
	}
	target := h.state.userByEmail(req.Email)
	if target == nil || !target.IsActive {
		h.detail(w, http.StatusNotFound, "User not found")
		return
	}
	if target.IsFrozen {
		h.detail(w, http.StatusForbidden, "Account is frozen")
		return
	}
	wal := h.state.walletFor(target.ID)
	if wal == nil {
		h.detail(w, http.StatusNotFound, "Wallet not found")
		return
	}

	wal.Balance = wal.Balance.Add(req.Amount)
	h.state.record(wal.ID, api.TxDeposit, req.Amount, "")
	h.log.Info("admin deposit",
		zap.Int64("admin", admin.ID),
		zap.Int64("user", target.ID),
		zap.String("amount", req.Amount.String()))
	h.json(w, http.StatusOK, api.Message{Message: "Deposit successful"})
}

func (h *handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	admin := currentUser(r)
	var req userStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	target := h.state.userByEmail(req.Email)
	if target == nil {
		h.detail(w, http.StatusNotFound, "User not found")
		return
	}
	if target.ID == admin.ID {
		h.detail(w, http.StatusBadRequest, "Admin cannot deactivate themselves")
		return
	}
	target.IsActive = false
	h.json(w, http.StatusOK, api.Message{Message: "User deactivated"})
}

func (h *handler) activateUser(w http.ResponseWriter, r *http.Request) {
	var req userStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	target := h.state.userByEmail(req.Email)
	if target == nil {
		h.detail(w, http.StatusNotFound, "User not found")
		return
	}
	target.IsActive = true
	h.json(w, http.StatusOK, api.Message{Message: "User activated"})
}

func (h *handler) freezeUser(w http.ResponseWriter, r *http.Request) {
	admin := currentUser(r)
	var req freezeUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	target := h.state.userByEmail(req.UserEmail)
	if target == nil {
		h.detail(w, http.StatusNotFound, "User not found")
		return
	}
	if target.ID == admin.ID {
		h.detail(w, http.StatusBadRequest, "Admin cannot freeze themselves")
		return
	}
	target.IsFrozen = true
	h.json(w, http.StatusOK, api.Message{Message: "User frozen"})
}

func (h *handler) unfreezeUser(w http.ResponseWriter, r *http.Request) {
	var req freezeUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	target := h.state.userByEmail(req.UserEmail)
	if target == nil {
		h.detail(w, http.StatusNotFound, "User not found")
		return
	}
	target.IsFrozen = false
	h.json(w, http.StatusOK, api.Message{Message: "User unfrozen"})
}

func (h *handler) userTransactions(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	target := h.state.userByEmail(email)
	if target == nil {
		h.detail(w, http.StatusNotFound, "User not found")
		return
	}
	wal := h.state.walletFor(target.ID)
	if wal == nil {
		h.detail(w, http.StatusNotFound, "Wallet not found")
		return
	}
	h.json(w, http.StatusOK, h.state.ledger(wal.ID))
}

func (h *handler) json(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Warn("encode response", zap.Error(err))
	}
}

// detail writes the {"detail": "..."} error envelope the client parses.
func (h *handler) detail(w http.ResponseWriter, status int, message string) {
	h.json(w, status, api.ErrorBody{Detail: message})
}
