package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/studycircle-dev/studycircle/internal/config"
	"github.com/studycircle-dev/studycircle/internal/logger"
	"github.com/studycircle-dev/studycircle/internal/markdown"
	"github.com/studycircle-dev/studycircle/internal/realtime"
	"github.com/studycircle-dev/studycircle/internal/service"
)

// HealthChecker is the storage surface the readiness probe needs.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth          service.AuthService
	content       service.ContentService
	comments      service.CommentService
	reactions     service.ReactionService
	polls         service.PollService
	connections   service.ConnectionService
	notifications service.NotificationService
	hub           *realtime.Hub
	markdown      *markdown.Renderer
	health        HealthChecker
	cfg           *config.Config
}

func New(
	auth service.AuthService,
	content service.ContentService,
	comments service.CommentService,
	reactions service.ReactionService,
	polls service.PollService,
	connections service.ConnectionService,
	notifications service.NotificationService,
	hub *realtime.Hub,
	markdown *markdown.Renderer,
	health HealthChecker,
	cfg *config.Config,
) *Handler {
	return &Handler{auth, content, comments, reactions, polls, connections, notifications, hub, markdown, health, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		logger.Log.Error("failed to encode response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
}
