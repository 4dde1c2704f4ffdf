package navigation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrUnknownRoute is returned for paths and names not in the table.
var ErrUnknownRoute = errors.New("unknown route")

// maxRedirects bounds static redirect chains.
const maxRedirects = 8

// Router owns the route table and the current location.
type Router struct {
	viewer Viewer
	logger *zap.Logger

	byName map[string]Route
	byPath map[string]Route

	mu      sync.RWMutex
	current Route
	// forced counts redirects to login that bypassed the guard.
	forced int
}

// NewRouter creates a Router over routes. Names and paths must be unique.
func NewRouter(routes []Route, viewer Viewer, logger *zap.Logger) (*Router, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		viewer: viewer,
		logger: logger,
		byName: make(map[string]Route, len(routes)),
		byPath: make(map[string]Route, len(routes)),
	}
	for _, route := range routes {
		if _, dup := r.byName[route.Name]; dup {
			return nil, fmt.Errorf("duplicate route name %q", route.Name)
		}
		if _, dup := r.byPath[route.Path]; dup {
			return nil, fmt.Errorf("duplicate route path %q", route.Path)
		}
		r.byName[route.Name] = route
		r.byPath[route.Path] = route
	}
	for _, name := range []string{RouteLogin, RouteDashboard} {
		if _, ok := r.byName[name]; !ok {
			return nil, fmt.Errorf("route table is missing %q", name)
		}
	}
	r.current = r.byName[RouteLogin]
	return r, nil
}

// Resolve finds a route by path or by name and follows static redirects.
func (r *Router) Resolve(target string) (Route, error) {
	route, ok := r.byPath[normalizePath(target)]
	if !ok {
		route, ok = r.byName[target]
	}
	if !ok {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, target)
	}

	for i := 0; route.Redirect != ""; i++ {
		if i == maxRedirects {
			return Route{}, fmt.Errorf("redirect loop at %s", route.Path)
		}
		next, ok := r.byPath[route.Redirect]
		if !ok {
			return Route{}, fmt.Errorf("%w: %s redirects to %s", ErrUnknownRoute, route.Path, route.Redirect)
		}
		route = next
	}
	return route, nil
}

// Route returns the route registered under name.
func (r *Router) Route(name string) (Route, bool) {
	route, ok := r.byName[name]
	return route, ok
}

// Navigate resolves target, runs the guard and moves to wherever the guard
// sends it. It returns the route landed on and the decision taken.
func (r *Router) Navigate(target string) (Route, Decision, error) {
	route, err := r.Resolve(target)
	if err != nil {
		return Route{}, Decision{}, err
	}

	decision := Evaluate(route, r.viewer)
	landed := route
	if !decision.Allowed() {
		landed = r.byName[decision.Target]
		r.logger.Debug("navigation redirected",
			zap.String("requested", route.Name),
			zap.String("outcome", decision.Outcome.String()),
			zap.String("target", landed.Name),
		)
	}

	r.mu.Lock()
	r.current = landed
	r.mu.Unlock()
	return landed, decision, nil
}

// RedirectToLogin moves to the login route without consulting the guard.
// The request pipeline calls it after the session expires.
func (r *Router) RedirectToLogin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = r.byName[RouteLogin]
	r.forced++
	r.logger.Info("session expired, redirected to login")
}

// Current returns the route the console is on.
func (r *Router) Current() Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// ForcedRedirects returns how many times RedirectToLogin ran.
func (r *Router) ForcedRedirects() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.forced
}

// Routes returns the table ordered by path.
func (r *Router) Routes() []Route {
	out := make([]Route, 0, len(r.byName))
	for _, route := range r.byName {
		out = append(out, route)
	}
	slices.SortFunc(out, func(a, b Route) int { return strings.Compare(a.Path, b.Path) })
	return out
}

// Title composes the page title for route.
func Title(route Route) string {
	if route.Title == "" {
		return AppTitle
	}
	return route.Title + " - " + AppTitle
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		return p
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
