package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/showcasehub/gallery/internal/httpserver/deps"
	"github.com/showcasehub/gallery/internal/httpserver/handlers"
	"github.com/showcasehub/gallery/internal/httpserver/mw"
)

func init() { Register(registerEntries) }

func registerEntries(r chi.Router, d deps.Deps) {
	public := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger), mw.RateLimit(d.RateLimit))
	public.Get("/entries", handlers.Entries(d))
	public.Get("/entries/{slug}", handlers.Entry(d))
	public.Post("/entries/{slug}/click", handlers.Click(d))
}
