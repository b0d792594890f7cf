package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"challenge-service/internal/service"
)

func LeaveChallenge(svc *service.Challenge, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		actorID, ok := requireUserID(w, r, logger, "LeaveChallenge")
		if !ok {
			return
		}

		challengeID := chi.URLParam(r, "id")

		err := svc.Leave(ctx, challengeID, actorID)
		if err != nil {
			writeServiceError(w, logger, "LeaveChallenge", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)

		logger.Info("LeaveChallenge: successfully left challenge",
			zap.String("challenge_id", challengeID), zap.String("user_id", actorID))
	}
}
