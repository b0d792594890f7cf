package server

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"challenge-service/internal/api/handler"
	"challenge-service/internal/logger"
	"challenge-service/internal/service"
)

type Config struct {
	Host            string        `env:"HTTP_HOST" env-required:"true"`
	Port            int           `env:"HTTP_PORT" env-required:"true"`
	Timeout         time.Duration `env:"HTTP_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

func NewRouter(challenges *service.Challenge, commits *service.CommitApproval, log *zap.Logger, cfgLogger *logger.Config, srvTimeout time.Duration) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.MiddlewareLogger(log, cfgLogger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Post("/challenges", handler.CreateChallenge(challenges, srvTimeout, log))
	router.Get("/challenges/search", handler.SearchChallenges(challenges, srvTimeout, log))
	router.Get("/challenges/{id}", handler.GetChallenge(challenges, srvTimeout, log))
	router.Patch("/challenges/{id}", handler.UpdateChallenge(challenges, srvTimeout, log))
	router.Delete("/challenges/{id}", handler.DeleteChallenge(challenges, srvTimeout, log))
	router.Post("/challenges/{id}/join", handler.RequestJoin(challenges, srvTimeout, log))
	router.Post("/challenges/{id}/leave", handler.LeaveChallenge(challenges, srvTimeout, log))
	router.Get("/challenges/{id}/join-requests", handler.ListJoinRequests(challenges, srvTimeout, log))
	router.Get("/challenges/{id}/commits", handler.ListCommitApprovals(commits, srvTimeout, log))

	router.Post("/join-requests/{id}/approve", handler.ApproveJoinRequest(challenges, srvTimeout, log))
	router.Post("/join-requests/{id}/reject", handler.RejectJoinRequest(challenges, srvTimeout, log))

	router.Post("/commits", handler.CreateCommitApproval(commits, srvTimeout, log))
	router.Get("/commits/{id}", handler.GetCommitApproval(commits, srvTimeout, log))
	router.Delete("/commits/{id}", handler.DeleteCommitApproval(commits, srvTimeout, log))
	router.Post("/commit-entries/{id}/approve", handler.ApproveEntry(commits, srvTimeout, log))
	router.Post("/commit-entries/{id}/reject", handler.RejectEntry(commits, srvTimeout, log))

	return router
}
