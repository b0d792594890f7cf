package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"challenge-service/internal/api"
	"challenge-service/internal/service"
)

type createChallengeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
}

func CreateChallenge(svc *service.Challenge, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		actorID, ok := requireUserID(w, r, logger, "CreateChallenge")
		if !ok {
			return
		}

		var req createChallengeRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Warn("CreateChallenge: failed to decode body", zap.Error(err))
			WriteError(w, logger, "failed to decode body", http.StatusBadRequest)
			return
		}

		challenge, err := svc.Create(ctx, service.CreateChallengeInput{
			Name:        req.Name,
			Description: req.Description,
			IsPrivate:   req.IsPrivate,
		}, actorID)
		if err != nil {
			writeServiceError(w, logger, "CreateChallenge", err)
			return
		}

		resp := map[string]api.Challenge{"challenge": api.NewChallenge(challenge)}
		writeJSON(w, logger, http.StatusCreated, resp)

		logger.Info("CreateChallenge: successfully created challenge",
			zap.String("challenge_id", challenge.ID))
	}
}
