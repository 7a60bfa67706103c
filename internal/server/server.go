package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rkcl/league-api/internal/auction"
	"github.com/rkcl/league-api/internal/kv"
	"github.com/rkcl/league-api/internal/quiz"
	"github.com/rkcl/league-api/internal/registrations"
)

// Deps holds everything the HTTP layer needs. All fields except SPADir
// are required.
type Deps struct {
	Logger        *slog.Logger
	Store         kv.Store
	Auction       *auction.Service
	Quiz          *quiz.Service
	Registrations *registrations.Service
	Auth          *AdminAuth
	SPADir        string
}

// New builds the full HTTP handler: middleware, API routes, docs and
// the optional SPA fallback.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(d.Logger))
	r.Use(middleware.Recoverer)

	addRoutes(r, d)
	return r
}
