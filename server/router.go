package server

import (
	"io"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/yext/hellod/common"
)

// HelloBody is the response body served for GET /
const HelloBody = "Hello, world!\n"

// Route describes a single entry in the routing table
type Route struct {
	Method  string
	Pattern string
}

// NewRouter builds the routing table. Unmatched paths get chi's default 404,
// unmatched methods on a known path get its default 405.
func NewRouter(logger common.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(LogRequests(logger))
	r.Use(middleware.Recoverer)
	r.Get("/", index)
	return r
}

func index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, HelloBody)
}

// Routes lists the routes registered on r, sorted by pattern then method.
func Routes(r chi.Routes) ([]Route, error) {
	var routes []Route
	err := chi.Walk(r, func(method string, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: pattern})
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Pattern != routes[j].Pattern {
			return routes[i].Pattern < routes[j].Pattern
		}
		return routes[i].Method < routes[j].Method
	})
	return routes, nil
}
