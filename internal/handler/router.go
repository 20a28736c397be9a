/*
Package handler provides the HTTP handlers and routing setup for the classroom server.

This file defines the main Router, applying middleware for logging, CORS, identity
extraction and IP-based rate limiting before delegating to the API and WebSocket handlers.
*/
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"classroom/internal/pkg/auth/jwt"
	"classroom/internal/pkg/limiter"
	"classroom/internal/pkg/logx"
	"classroom/internal/pkg/resp"
)

const (
	JoinRate  = 0.2
	JoinBurst = 5
	WSRate    = 0.5
	WSBurst   = 10
)

// Router builds the routing table. ctx bounds the lifetime of the rate limiters' sweepers.
func Router(ctx context.Context, deps *AppDeps) http.Handler {
	joinLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(JoinRate), JoinBurst)
	wsLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(WSRate), WSBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Classroom Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	teacherOnly := jwt.RequireRole(jwt.RoleTeacher)
	studentOnly := jwt.RequireRole(jwt.RoleStudent)

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.With(joinLimiter.Middleware).Post("/session/join", HandleJoin(deps))

		api.Group(func(authed chi.Router) {
			authed.Use(jwt.RequireRole())

			authed.Get("/session/me", HandleSessionMe(deps))

			authed.Route("/roster", func(roster chi.Router) {
				roster.Get("/", HandleGetRoster(deps))
				roster.Get("/users", HandleGetDirectory(deps))
				roster.With(teacherOnly).Post("/move", HandleMove(deps))
				roster.With(teacherOnly).Post("/random-assign", HandleRandomAssign(deps))
			})

			authed.Route("/console", func(console chi.Router) {
				console.Get("/", HandleGetConsole(deps))
				console.With(teacherOnly).Post("/tab", HandleSelectTab(deps))
				console.With(teacherOnly).Post("/leave", HandleLeaveRoom(deps))
			})

			authed.Route("/rooms/{id}", func(room chi.Router) {
				room.With(teacherOnly).Post("/screenshare", HandleSetScreenshare(deps))
				room.Get("/notes", HandleGetNotes(deps))
				room.With(teacherOnly).Put("/notes", HandleSetNotes(deps))
			})

			authed.Route("/competition", func(comp chi.Router) {
				comp.Get("/", HandleGetCompetition(deps))
				comp.With(teacherOnly).Post("/start", HandleStartCompetition(deps))
				comp.With(teacherOnly).Post("/stop", HandleStopCompetition(deps))
				comp.With(studentOnly).Post("/answers", HandleSubmitAnswer(deps))
				comp.With(teacherOnly).Get("/leaderboard", HandleLeaderboard(deps))
			})
		})
	})

	r.With(wsLimiter.Middleware).Get("/ws", HandleWebSocket(wsUpgrader, deps))

	return r
}
