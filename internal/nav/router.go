// Package nav is a small navigation router: a table of named destinations
// and an ordered chain of guards consulted before every transition.
package nav

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// MaxRedirects bounds how many guard redirects a single navigation follows.
const MaxRedirects = 10

var (
	ErrNoRoute       = errors.New("no route matches path")
	ErrRedirectLoop  = errors.New("too many navigation redirects")
	ErrGuardRejected = errors.New("navigation rejected by guard")
)

type Route struct {
	Name string
	Path string
}

// Location is a resolved destination.
type Location struct {
	Name string
	Path string
}

func (l Location) IsZero() bool {
	return l.Path == ""
}

// GuardFunc runs before a transition from `from` to `to`. It returns an
// empty redirect to let the navigation proceed, a path to send it
// elsewhere, or an error to abort it. It may block; the transition waits.
type GuardFunc func(ctx context.Context, to, from Location) (redirect string, err error)

type Router struct {
	routes []Route
	byPath map[string]Route

	mu      sync.RWMutex
	guards  []GuardFunc
	current Location
}

func New(routes ...Route) *Router {
	r := &Router{byPath: make(map[string]Route, len(routes))}
	for _, rt := range routes {
		r.routes = append(r.routes, rt)
		r.byPath[rt.Path] = rt
	}
	return r
}

// BeforeEach appends a guard. Guards run in registration order.
func (r *Router) BeforeEach(g GuardFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards = append(r.guards, g)
}

func (r *Router) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

// Match returns the route registered for path, ignoring any query string
// and a trailing slash.
func (r *Router) Match(path string) (Route, bool) {
	rt, ok := r.byPath[CleanPath(path)]
	return rt, ok
}

func (r *Router) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Resolve runs the guard chain for path and returns where the navigation
// ends up, without changing Current. When it ends at a path no route
// matches, the error wraps ErrNoRoute and the Location still carries that
// cleaned path.
func (r *Router) Resolve(ctx context.Context, path string) (Location, error) {
	r.mu.RLock()
	guards := append([]GuardFunc(nil), r.guards...)
	from := r.current
	r.mu.RUnlock()

	target := path
	for hops := 0; hops <= MaxRedirects; hops++ {
		// Guards see unknown destinations too, so a path nobody registered
		// is still redirected when a guard says so.
		to := Location{Path: CleanPath(target)}
		rt, known := r.Match(target)
		if known {
			to = Location{Name: rt.Name, Path: rt.Path}
		}
		redirect, err := runGuards(ctx, guards, to, from)
		if err != nil {
			return Location{}, err
		}
		if redirect == "" || CleanPath(redirect) == to.Path {
			if !known {
				return to, fmt.Errorf("%w: %s", ErrNoRoute, to.Path)
			}
			return to, nil
		}
		target = redirect
	}
	return Location{}, fmt.Errorf("%w: navigating to %s", ErrRedirectLoop, path)
}

// Navigate resolves path and records the result as the current location.
func (r *Router) Navigate(ctx context.Context, path string) (Location, error) {
	loc, err := r.Resolve(ctx, path)
	if err != nil {
		return Location{}, err
	}
	r.mu.Lock()
	r.current = loc
	r.mu.Unlock()
	return loc, nil
}

func runGuards(ctx context.Context, guards []GuardFunc, to, from Location) (string, error) {
	for _, g := range guards {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		redirect, err := g(ctx, to, from)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrGuardRejected, err)
		}
		if redirect != "" {
			return redirect, nil
		}
	}
	return "", nil
}

// CleanPath drops the query string and a trailing slash, so "/users/?a=1"
// and "/users" name the same destination.
func CleanPath(path string) string {
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	return path
}
