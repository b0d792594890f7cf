package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"challenge-service/internal/service"
)

func RejectJoinRequest(svc *service.Challenge, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		actorID, ok := requireUserID(w, r, logger, "RejectJoinRequest")
		if !ok {
			return
		}

		requestID := chi.URLParam(r, "id")

		err := svc.RejectJoinRequest(ctx, requestID, actorID)
		if err != nil {
			writeServiceError(w, logger, "RejectJoinRequest", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)

		logger.Info("RejectJoinRequest: successfully rejected join request",
			zap.String("join_request_id", requestID))
	}
}
