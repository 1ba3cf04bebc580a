package devserver

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userKey contextKey = "current-user"

// requireAuth verifies the bearer token and loads the active user behind it.
// Tokens for deactivated accounts are rejected the same way as bad ones.
func (h *handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			h.detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		userID, err := h.tokens.verify(parts[1])
		if err != nil {
			h.detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		h.state.mu.Lock()
		u := h.state.userByID(userID)
		h.state.mu.Unlock()
		if u == nil || !u.IsActive {
			h.detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

// requireAdmin restricts a route to admin users. Must run after requireAuth.
func (h *handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := currentUser(r)
		if u == nil || !u.IsAdmin {
			h.detail(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentUser(r *http.Request) *user {
	u, _ := r.Context().Value(userKey).(*user)
	return u
}
