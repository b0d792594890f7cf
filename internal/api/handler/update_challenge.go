package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"challenge-service/internal/api"
	"challenge-service/internal/service"
)

type updateChallengeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LeaderID    string `json:"leader_id"`
}

func UpdateChallenge(svc *service.Challenge, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		actorID, ok := requireUserID(w, r, logger, "UpdateChallenge")
		if !ok {
			return
		}

		challengeID := chi.URLParam(r, "id")

		var req updateChallengeRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Warn("UpdateChallenge: failed to decode body", zap.Error(err))
			WriteError(w, logger, "failed to decode body", http.StatusBadRequest)
			return
		}

		challenge, err := svc.Update(ctx, challengeID, service.UpdateChallengeInput{
			Name:        req.Name,
			Description: req.Description,
			LeaderID:    req.LeaderID,
		}, actorID)
		if err != nil {
			writeServiceError(w, logger, "UpdateChallenge", err)
			return
		}

		resp := map[string]api.Challenge{"challenge": api.NewChallenge(challenge)}
		writeJSON(w, logger, http.StatusOK, resp)

		logger.Info("UpdateChallenge: successfully updated challenge", zap.String("challenge_id", challengeID))
	}
}
