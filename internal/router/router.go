package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/vserve-support/server/internal/agent/dialogue"
	"github.com/vserve-support/server/internal/config"
	"github.com/vserve-support/server/internal/handlers"
	"github.com/vserve-support/server/internal/middleware"
	"github.com/vserve-support/server/internal/repository"
)

// New assembles the request pipeline: log -> recover -> cors -> rate limit ->
// authenticate -> validate -> dispatch. Ordering and short-circuit behavior
// stay visible here rather than hidden in handler decoration.
func New(log zerolog.Logger, engine *dialogue.Engine, tickets repository.TicketRepository, srv config.Server, auth config.Auth) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{srv.Origin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))

	r.Get("/healthz", handlers.Health())

	ch := handlers.NewChatHTTP(engine)
	th := handlers.NewTicketHTTP(tickets)

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithAuth(log, auth.Secret))
		r.Use(middleware.RequireAuth)

		r.Post("/chat", ch.Chat())
		r.Get("/history", ch.History())
		r.Get("/tickets", th.List())

		r.With(middleware.RequireRoles("admin")).
			Post("/api/update-ticket-status", th.UpdateStatus())
	})

	return r
}
