package devserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arunkumar231105/digital-wallet-client/internal/config"
)

// Server wraps an http.Server with the wallet API routes.
type Server struct {
	inner *http.Server
	h     *handler
}

// New wires up routes and returns a ready server. When the config names an
// admin email and password, that account is created up front so a fresh
// server is administrable.
func New(cfg config.ServerConfig, logger *zap.Logger) (*Server, error) {
	h := &handler{
		state:  newState(nil),
		tokens: newTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL),
		cfg:    cfg,
		log:    logger,
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h.state.addUser("Administrator", cfg.AdminEmail, string(hash), true)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           h.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer, h: h}, nil
}

// Handler exposes the routed handler directly, for httptest-based callers.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

func (h *handler) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/auth/register", h.register(false))
	r.Post("/auth/login", h.login(false))
	r.Post("/admin/register", h.register(true))
	r.Post("/admin/login", h.login(true))

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/wallet/create", h.createWallet)
		r.Get("/wallet/transactions", h.listTransactions)
		r.Post("/wallet/withdraw", h.withdraw)
		r.Post("/wallet/transfer", h.transfer)
		r.Post("/users/deactivate", h.deactivateSelf)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth, h.requireAdmin)
		r.Get("/admin/users", h.listUsers)
		r.Post("/admin/deposit", h.adminDeposit)
		r.Post("/admin/deactivate-user", h.deactivateUser)
		r.Post("/admin/activate-user", h.activateUser)
		r.Post("/admin/freeze-user", h.freezeUser)
		r.Post("/admin/unfreeze-user", h.unfreezeUser)
		r.Get("/admin/user-transactions", h.userTransactions)
	})

	return r
}
