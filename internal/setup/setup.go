package setup

import (
	"github.com/google/uuid"

	"github.com/studycircle-dev/studycircle/internal/config"
	"github.com/studycircle-dev/studycircle/internal/handler"
	"github.com/studycircle-dev/studycircle/internal/jwt"
	"github.com/studycircle-dev/studycircle/internal/markdown"
	"github.com/studycircle-dev/studycircle/internal/middleware"
	"github.com/studycircle-dev/studycircle/internal/realtime"
	"github.com/studycircle-dev/studycircle/internal/service"
	"github.com/studycircle-dev/studycircle/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Hub            *realtime.Hub
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Jwt            jwt.JwtService
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	hub := realtime.NewHub(cfg.Public.EventBufferSize)
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	notifications := service.NewNotification(storage, hub, uuid.NewString)
	auth := service.NewAuth(storage, jwtService)
	content := service.NewContent(storage, hub, notifications, cfg.Public.MaxBodyLen)
	comments := service.NewComment(storage, storage, storage, hub, notifications, cfg.Public.MaxBodyLen, cfg.Public.ReplyDepthCap)
	reactions := service.NewReaction(storage, hub, notifications, uuid.NewString)
	polls := service.NewPoll(storage, hub, uuid.NewString)
	connections := service.NewConnection(storage, notifications)

	h := handler.New(auth, content, comments, reactions, polls, connections, notifications, hub, markdown.New(), storage, cfg)

	return &Dependencies{
		Storage:        storage,
		Hub:            hub,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(jwtService),
		Jwt:            jwtService,
		Config:         cfg,
	}, nil
}
