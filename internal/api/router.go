package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/skald/internal/auth"
	"github.com/starford/skald/internal/authservice"
	"github.com/starford/skald/internal/noteservice"
)

// NewRouter creates a chi router with all API routes mounted. Login is the
// only public route; everything else sits behind the auth gate.
// eventsHandler, if non-nil, is mounted at GET /events inside the
// protected group.
func NewRouter(authSvc *authservice.Service, noteSvc *noteservice.Service, codec *auth.Codec, cookieName string, eventsHandler http.Handler) chi.Router {
	h := NewHandler(authSvc, noteSvc, cookieName, codec.Lifetime())

	r := chi.NewRouter()

	// Public.
	r.Post("/auth/login", h.Login)

	// Protected.
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(codec, cookieName))

		r.Get("/auth/logout", h.Logout)
		r.Get("/notes", h.ListNotes)
		r.Post("/notes", h.CreateNote)

		if eventsHandler != nil {
			r.Get("/events", eventsHandler.ServeHTTP)
		}
	})

	return r
}
