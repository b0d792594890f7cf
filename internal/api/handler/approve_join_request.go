package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"challenge-service/internal/api"
	"challenge-service/internal/service"
)

func ApproveJoinRequest(svc *service.Challenge, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		actorID, ok := requireUserID(w, r, logger, "ApproveJoinRequest")
		if !ok {
			return
		}

		requestID := chi.URLParam(r, "id")

		challenge, err := svc.ApproveJoinRequest(ctx, requestID, actorID)
		if err != nil {
			writeServiceError(w, logger, "ApproveJoinRequest", err)
			return
		}

		resp := map[string]api.Challenge{"challenge": api.NewChallenge(challenge)}
		writeJSON(w, logger, http.StatusOK, resp)

		logger.Info("ApproveJoinRequest: successfully approved join request",
			zap.String("join_request_id", requestID))
	}
}
