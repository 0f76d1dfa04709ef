package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/playwise/tournament-engine/handlers"
	"github.com/playwise/tournament-engine/middleware"
)

// SetupRoutes assembles the API. Reads are public; anything that mutates a
// tournament requires an organizer token.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Post("/auth/token", authHandler.IssueTokenHandler)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListTournamentsHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetTournamentHandler)
		r.Get("/{tournamentID}/standings", tournamentHandler.GetStandingsHandler)
		r.Get("/{tournamentID}/matches", matchHandler.ListMatchesHandler)
		r.Get("/{tournamentID}/state", matchHandler.GetStateHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireOrganizer(jwtSecret))

			r.Post("/", tournamentHandler.CreateTournamentHandler)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteTournamentHandler)
			r.Post("/{tournamentID}/fixtures", matchHandler.GenerateFixturesHandler)
			r.Post("/{tournamentID}/matches/{matchID}/result", matchHandler.ReportResultHandler)
			r.Post("/{tournamentID}/undo", matchHandler.UndoLastResultHandler)
			r.Post("/{tournamentID}/advance", matchHandler.AdvanceRoundHandler)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.SubscribeHandler)
}
