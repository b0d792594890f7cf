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

func GetChallenge(svc *service.Challenge, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		challengeID := chi.URLParam(r, "id")

		challenge, err := svc.Get(ctx, challengeID)
		if err != nil {
			writeServiceError(w, logger, "GetChallenge", err)
			return
		}

		resp := map[string]api.Challenge{"challenge": api.NewChallenge(challenge)}
		writeJSON(w, logger, http.StatusOK, resp)

		logger.Info("GetChallenge: successfully give challenge", zap.String("challenge_id", challengeID))
	}
}
