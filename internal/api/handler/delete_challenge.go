package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"challenge-service/internal/service"
)

func DeleteChallenge(svc *service.Challenge, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		actorID, ok := requireUserID(w, r, logger, "DeleteChallenge")
		if !ok {
			return
		}

		challengeID := chi.URLParam(r, "id")

		err := svc.Delete(ctx, challengeID, actorID)
		if err != nil {
			writeServiceError(w, logger, "DeleteChallenge", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)

		logger.Info("DeleteChallenge: successfully deleted challenge", zap.String("challenge_id", challengeID))
	}
}
