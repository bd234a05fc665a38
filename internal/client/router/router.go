// Package router holds the navigation table and the pre-navigation
// guard: views marked as requiring authentication are reachable only
// while the session holds a token; otherwise the navigation is replaced
// with a redirect to the login view.
package router

import "errors"

// ErrNoRoute is returned for paths outside the route table.
var ErrNoRoute = errors.New("no such route")

// Route names.
const (
	NameHome     = "home"
	NameLogin    = "login"
	NameRegister = "register"
)

// Route paths.
const (
	PathHome     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"
)

// Route is one entry of the navigation table.
type Route struct {
	Path         string
	Name         string
	RequiresAuth bool
}

// TokenSource exposes the one session fact the guard consults. The
// guard deliberately checks token presence only, not the full
// authenticated predicate, matching the behavior users of this API
// already rely on.
type TokenSource interface {
	Token() string
}

// Navigation is the outcome of resolving one navigation attempt. When
// Redirected is true the pending target was replaced (not pushed) with
// the login route, so back-navigation does not return to the guarded
// page.
type Navigation struct {
	Route      Route
	Redirected bool
}

// Router evaluates the guard once per navigation attempt.
type Router struct {
	routes  []Route
	session TokenSource
}

// New builds a Router over the standard route table: login and register
// are public, home requires authentication.
func New(session TokenSource) *Router {
	return &Router{
		routes: []Route{
			{Path: PathLogin, Name: NameLogin},
			{Path: PathRegister, Name: NameRegister},
			{Path: PathHome, Name: NameHome, RequiresAuth: true},
		},
		session: session,
	}
}

// Routes returns a copy of the route table.
func (r *Router) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

// Resolve evaluates a navigation attempt to target. Unknown paths yield
// ErrNoRoute. A guarded route without a token resolves to the login
// route with Redirected set; everything else resolves to the target
// itself.
func (r *Router) Resolve(target string) (Navigation, error) {
	route, ok := r.lookup(target)
	if !ok {
		return Navigation{}, ErrNoRoute
	}

	if route.RequiresAuth && r.session.Token() == "" {
		login, _ := r.lookup(PathLogin)
		return Navigation{Route: login, Redirected: true}, nil
	}
	return Navigation{Route: route}, nil
}

func (r *Router) lookup(path string) (Route, bool) {
	for _, route := range r.routes {
		if route.Path == path {
			return route, true
		}
	}
	return Route{}, false
}
