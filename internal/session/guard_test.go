package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckUserView(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		admit   bool
	}{
		{"token present", Session{Token: "tok"}, true},
		{"admin token", Session{Token: "tok", IsAdmin: true}, true},
		{"no token", Session{}, false},
		{"admin flag without token", Session{IsAdmin: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Check(ViewUser, tt.session)
			require.Equal(t, tt.admit, d.Admit)
			if !tt.admit {
				require.Equal(t, RouteLogin, d.RedirectTo)
			}
		})
	}
}

func TestCheckAdminView(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		admit   bool
	}{
		{"admin token", Session{Token: "tok", IsAdmin: true}, true},
		{"non-admin token", Session{Token: "tok"}, false},
		{"no token", Session{}, false},
		{"admin flag without token", Session{IsAdmin: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Check(ViewAdmin, tt.session)
			require.Equal(t, tt.admit, d.Admit)
			if !tt.admit {
				// Unauthenticated and unauthorized share the target.
				require.Equal(t, RouteAdminLogin, d.RedirectTo)
			}
		})
	}
}

func TestLoginRouteFor(t *testing.T) {
	require.Equal(t, RouteLogin, LoginRouteFor(ViewUser))
	require.Equal(t, RouteAdminLogin, LoginRouteFor(ViewAdmin))
}
