package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, d Deps) {
	broker := NewBroker()

	r.Get("/healthz", handleHealth(d.Logger, d.Store))
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("League API", "/openapi.json", "/docs"))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auction", func(r chi.Router) {
			r.Get("/state", handleAuctionState(d.Auction))
			r.Get("/events", handleAuctionEvents(broker))
			r.With(adminOnly(d.Auth)).Post("/state", handleAuctionAction(d.Auction, broker))
		})

		r.Route("/quizzes", func(r chi.Router) {
			r.Get("/", handleQuizIndex(d.Quiz))
			r.Get("/{id}", handleQuiz(d.Quiz))
			r.Get("/{id}/answers", handleQuizAnswers(d.Quiz, d.Auth))
			r.Post("/{id}/submit", handleQuizSubmit(d.Quiz))
			r.Get("/{id}/leaderboard", handleQuizLeaderboard(d.Quiz))
			r.Get("/{id}/active", handleQuizActive(d.Quiz))
			r.With(adminOnly(d.Auth)).Post("/{id}/active", handleQuizSetActive(d.Quiz))
		})

		r.Get("/registrations", handleRegistrations(d.Registrations))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", handleAdminLogin(d.Logger, d.Auth))
			r.Post("/logout", handleAdminLogout(d.Auth))
			r.Get("/me", handleAdminMe(d.Auth))
		})
	})

	if d.SPADir != "" {
		r.NotFound(handleSPA(d.SPADir))
	}
}
