package client

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	LoginPath          = "/login"
	AdminDashboardPath = "/dashboard/admin"
	UserDashboardPath  = "/dashboard/user"
)

// DecisionKind is the outcome of a route authorization check.
type DecisionKind int

const (
	// DecisionLoading suspends routing while a session resolution is in
	// flight.
	DecisionLoading DecisionKind = iota
	// DecisionRedirectToLogin sends an anonymous visitor to sign-in.
	DecisionRedirectToLogin
	// DecisionUnauthorized blocks a role-mismatched visitor.
	DecisionUnauthorized
	// DecisionAllow renders the protected view.
	DecisionAllow
)

// Decision is the gate's verdict for one route request. From carries the
// originally requested path on a login redirect so sign-in can return there.
type Decision struct {
	Kind DecisionKind
	From string
}

// Authorize decides whether the session may enter the requested path.
// requiredRole == "" admits any authenticated identity. A degraded session
// (resolution errors, missing role) counts as the weakest case it matches:
// no identity means login, identity without the required role means
// unauthorized.
func Authorize(s Session, requestedPath, requiredRole string) Decision {
	if !s.Ready {
		return Decision{Kind: DecisionLoading}
	}
	if s.Identity == nil {
		return Decision{Kind: DecisionRedirectToLogin, From: requestedPath}
	}
	if requiredRole != "" && s.Role != requiredRole {
		return Decision{Kind: DecisionUnauthorized}
	}
	return Decision{Kind: DecisionAllow}
}

// DashboardPath selects the dashboard variant for the session. Anything but
// an explicit admin role gets the user variant.
func DashboardPath(s Session) string {
	if s.Role == RoleAdmin {
		return AdminDashboardPath
	}
	return UserDashboardPath
}
