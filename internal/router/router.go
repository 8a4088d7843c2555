package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/studycircle-dev/studycircle/internal/metrics"
	"github.com/studycircle-dev/studycircle/internal/setup"
)

// New creates and configures the router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/auth/register", h.Register)
		v1.Post("/auth/login", h.Login)
		v1.Post("/auth/logout", h.Logout)

		// Logged-in routes
		v1.Group(func(authed chi.Router) {
			authed.Use(authMw.NeedAuth())

			authed.Get("/stream", h.Stream)

			authed.Post("/content", h.CreateContent)
			authed.Get("/content/{contentId}", h.GetContent)
			authed.Put("/content/{contentId}", h.EditContent)
			authed.Delete("/content/{contentId}", h.DeleteContent)
			authed.Get("/content/{contentId}/thread", h.GetThread)
			authed.Post("/content/{contentId}/comments", h.CreateComment)
			authed.Get("/feed/{scope}/{scopeId}", h.ListContent)

			authed.Put("/comments/{commentId}", h.EditComment)
			authed.Delete("/comments/{commentId}", h.DeleteComment)

			authed.Post("/reactions/toggle", h.ToggleReaction)
			authed.Get("/reactions/{targetKind}/{targetId}", h.GetReactionCounts)

			authed.Get("/sessions/{sessionId}/polls", h.ListPolls)
			authed.Get("/polls/{pollId}", h.GetPoll)
			authed.Post("/polls/{pollId}/vote", h.Vote)

			authed.Post("/connections", h.RequestConnection)
			authed.Get("/connections", h.ListConnections)
			authed.Get("/connections/{userId}", h.GetConnectionState)
			authed.Post("/connections/{userId}/accept", h.AcceptConnection)
			authed.Delete("/connections/{userId}", h.RemoveConnection)

			authed.Get("/notifications", h.ListNotifications)
			authed.Get("/notifications/unread_count", h.UnreadCount)
			authed.Post("/notifications/read_all", h.MarkAllNotificationsRead)
			authed.Post("/notifications/{notificationId}/read", h.MarkNotificationRead)
			authed.Delete("/notifications/{notificationId}", h.DeleteNotification)
		})

		// Admin routes
		v1.Group(func(admin chi.Router) {
			admin.Use(authMw.AdminOnly())

			admin.Post("/content/{contentId}/pin", h.PinContent)
			admin.Post("/sessions/{sessionId}/polls", h.CreatePoll)
			admin.Post("/polls/{pollId}/close", h.ClosePoll)
		})
	})

	return r
}
