package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/showcasehub/gallery/internal/httpserver/deps"
	"github.com/showcasehub/gallery/internal/httpserver/handlers"
	"github.com/showcasehub/gallery/internal/httpserver/mw"
)

func init() { Register(registerTags) }

func registerTags(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger), mw.RateLimit(d.RateLimit)).Get("/tags", handlers.Tags(d))
}
