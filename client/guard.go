package client

// DecisionKind says what the UI should do before entering a role-gated view.
type DecisionKind int

const (
	// DecisionWait renders a neutral waiting state while the session cache
	// is still loading; redirecting here would flicker.
	DecisionWait DecisionKind = iota
	// DecisionRender admits the caller to the protected view.
	DecisionRender
	// DecisionRedirectLogin sends an unauthenticated caller to the login
	// route matching the view's role requirement.
	DecisionRedirectLogin
	// DecisionRedirectHome sends an authenticated caller with the wrong
	// role to the safe default route.
	DecisionRedirectHome
)

// Decision is the guard's verdict, including the target route for the
// redirect kinds.
type Decision struct {
	Kind  DecisionKind
	Route string
}

const homeRoute = "/"

// Decide is the client-side complement of the server's role gate. It is
// advisory only: a UX convenience, fully bypassable, never a security
// boundary.
func Decide(state State, principal *Principal, required ...Role) Decision {
	if state == StateLoading {
		return Decision{Kind: DecisionWait}
	}
	if principal == nil {
		return Decision{Kind: DecisionRedirectLogin, Route: LoginRoute(required...)}
	}
	if len(required) > 0 && !roleAllowed(principal.Role, required) {
		return Decision{Kind: DecisionRedirectHome, Route: homeRoute}
	}
	return Decision{Kind: DecisionRender}
}

// LoginRoute picks the login page matching a view's role requirement.
func LoginRoute(required ...Role) string {
	for _, role := range required {
		switch role {
		case RoleAdmin:
			return "/admin/login"
		case RoleSeller:
			return "/seller/login"
		}
	}
	return "/login"
}

func roleAllowed(role Role, required []Role) bool {
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}
