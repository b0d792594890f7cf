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

func RequestJoin(svc *service.Challenge, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		actorID, ok := requireUserID(w, r, logger, "RequestJoin")
		if !ok {
			return
		}

		challengeID := chi.URLParam(r, "id")

		challenge, err := svc.RequestJoin(ctx, challengeID, actorID)
		if err != nil {
			writeServiceError(w, logger, "RequestJoin", err)
			return
		}

		resp := map[string]api.Challenge{"challenge": api.NewChallenge(challenge)}
		writeJSON(w, logger, http.StatusOK, resp)

		logger.Info("RequestJoin: successfully processed join",
			zap.String("challenge_id", challengeID), zap.String("user_id", actorID))
	}
}
