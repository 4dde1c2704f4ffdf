// Package navigation holds the console's route table and the guard that
// decides whether a route may be entered.
package navigation

// Route names the guard redirects to.
const (
	RouteLogin     = "login"
	RouteDashboard = "dashboard"
)

// Route is one entry of the navigation surface.
type Route struct {
	Name          string
	Path          string
	Title         string
	RequiresAuth  bool
	RequiresAdmin bool
	// Redirect is the path a static redirect route forwards to.
	Redirect string
}

// Viewer is the session state the guard consults.
type Viewer interface {
	IsLoggedIn() bool
	IsAdmin() bool
}

// Outcome is the guard's verdict.
type Outcome int

const (
	Proceed Outcome = iota
	RedirectLogin
	RedirectDefault
)

func (o Outcome) String() string {
	switch o {
	case Proceed:
		return "proceed"
	case RedirectLogin:
		return "redirect_login"
	case RedirectDefault:
		return "redirect_default"
	default:
		return "unknown"
	}
}

// Decision is the result of evaluating one navigation attempt.
type Decision struct {
	Outcome Outcome
	// Target is the route name to go to instead. Empty when proceeding.
	Target string
}

// Allowed reports whether navigation may continue to the requested route.
func (d Decision) Allowed() bool {
	return d.Outcome == Proceed
}

// Evaluate decides a navigation attempt. The authentication check runs
// first; the admin check is only reached when it passes. Nothing is
// remembered between calls.
func Evaluate(route Route, viewer Viewer) Decision {
	if route.RequiresAuth && !viewer.IsLoggedIn() {
		return Decision{Outcome: RedirectLogin, Target: RouteLogin}
	}
	if route.RequiresAdmin && !viewer.IsAdmin() {
		return Decision{Outcome: RedirectDefault, Target: RouteDashboard}
	}
	return Decision{Outcome: Proceed}
}
