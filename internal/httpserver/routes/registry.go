package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/showcasehub/gallery/internal/httpserver/deps"
)

// Registrar mounts one group of routes on the router.
type Registrar func(r chi.Router, d deps.Deps)

type Middleware = func(http.Handler) http.Handler

type registration struct {
	mount Registrar
	mws   []Middleware
}

var registrations []registration

// Register is called from each route file's init. Per-group middlewares
// wrap only that group's routes.
func Register(mount Registrar, mws ...Middleware) {
	registrations = append(registrations, registration{mount: mount, mws: mws})
}

// RegisterAll mounts every registered group. Called once from
// httpserver.New.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, reg := range registrations {
		target := chi.Router(r)
		if len(reg.mws) > 0 {
			target = r.With(reg.mws...)
		}
		reg.mount(target, d)
	}
}
