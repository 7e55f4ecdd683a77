// Package dispatch routes requests to handlers by exact path match.
//
// Routes are registered once at startup, either one by one with
// [Dispatcher.Register] or in bulk from any [RouteProvider] passed to [New].
// The route table is only read while serving, so registration must finish
// before the Dispatcher is handed to an http.Server.
package dispatch

import (
	"errors"
	"net/http"
	"net/url"
	"sort"

	"github.com/rs/zerolog"
)

// Route binds a path to a handler.
type Route struct {
	Path    string
	Handler http.Handler
}

// RouteProvider is implemented by types that group related handlers and
// declare the path of each one.
type RouteProvider interface {
	Routes() []Route
}

// Dispatcher is an http.Handler that invokes the handler registered for the
// exact request path and answers 404 with an empty body otherwise.
type Dispatcher struct {
	routes map[string]http.Handler
	log    zerolog.Logger
}

// New returns a Dispatcher with the routes of every provider registered in
// order.
func New(log zerolog.Logger, providers ...RouteProvider) *Dispatcher {
	d := &Dispatcher{
		routes: map[string]http.Handler{},
		log:    log.With().Str("component", "dispatch").Logger(),
	}
	for _, p := range providers {
		for _, r := range p.Routes() {
			d.Register(r.Path, r.Handler)
		}
	}
	return d
}

// Register binds h to path. A later registration for the same path
// replaces the earlier one.
func (d *Dispatcher) Register(path string, h http.Handler) {
	if _, ok := d.routes[path]; ok {
		d.log.Debug().Str("path", path).Msg("replacing route")
	}
	d.routes[path] = h
}

// RegisterFunc is Register for a handler function.
func (d *Dispatcher) RegisterFunc(path string, f http.HandlerFunc) {
	d.Register(path, f)
}

// Has reports whether a handler is registered for path.
func (d *Dispatcher) Has(path string) bool {
	_, ok := d.routes[path]
	return ok
}

// Paths returns the registered paths, sorted.
func (d *Dispatcher) Paths() []string {
	paths := make([]string, 0, len(d.routes))
	for p := range d.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path, err := requestPath(r)
	if err != nil {
		d.log.Warn().Err(err).Str("target", r.RequestURI).Msg("malformed request target")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	h, ok := d.routes[path]
	if !ok {
		d.log.Debug().Str("method", r.Method).Str("path", path).Msg("no route")
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.ServeHTTP(w, r)
}

var errNoTarget = errors.New("request has no target")

// requestPath returns the path component of the request target.
func requestPath(r *http.Request) (string, error) {
	if r.RequestURI != "" {
		u, err := url.ParseRequestURI(r.RequestURI)
		if err != nil {
			return "", err
		}
		return u.Path, nil
	}
	if r.URL == nil {
		return "", errNoTarget
	}
	return r.URL.Path, nil
}
