package session

// ViewClass distinguishes the two protected view categories.
type ViewClass int

const (
	// ViewUser covers views any authenticated user may enter.
	ViewUser ViewClass = iota
	// ViewAdmin covers views that additionally require the admin role.
	ViewAdmin
)

// Route names a navigable screen. The guard only ever redirects to a login
// screen; the full set lives with the UI.
type Route string

const (
	RouteLogin      Route = "/login"
	RouteAdminLogin Route = "/admin/login"
)

// Decision is the outcome of a guard check.
type Decision struct {
	Admit bool
	// RedirectTo is the login screen to land on when Admit is false.
	RedirectTo Route
}

// Check gates entry to a protected view category. It is pure and synchronous:
// only the given snapshot is consulted, never the network. A non-admin token
// on an admin view is denied to the same target as no token at all; the app
// has no separate forbidden screen.
func Check(class ViewClass, s Session) Decision {
	switch class {
	case ViewAdmin:
		if s.IsAdminSession() {
			return Decision{Admit: true}
		}
		return Decision{RedirectTo: RouteAdminLogin}
	default:
		if s.Authenticated() {
			return Decision{Admit: true}
		}
		return Decision{RedirectTo: RouteLogin}
	}
}

// LoginRouteFor returns the login screen matching a view category, used when
// an in-flight call comes back with a credential rejection.
func LoginRouteFor(class ViewClass) Route {
	if class == ViewAdmin {
		return RouteAdminLogin
	}
	return RouteLogin
}
