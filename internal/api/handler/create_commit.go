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

type createCommitRequest struct {
	ChallengeID string `json:"challenge_id"`
	TargetDate  string `json:"target_date"`
	Content     string `json:"content"`
}

func CreateCommitApproval(svc *service.CommitApproval, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		actorID, ok := requireUserID(w, r, logger, "CreateCommitApproval")
		if !ok {
			return
		}

		var req createCommitRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Warn("CreateCommitApproval: failed to decode body", zap.Error(err))
			WriteError(w, logger, "failed to decode body", http.StatusBadRequest)
			return
		}

		approval, err := svc.Create(ctx, service.CreateCommitApprovalInput{
			ChallengeID: req.ChallengeID,
			TargetDate:  req.TargetDate,
			Content:     req.Content,
		}, actorID)
		if err != nil {
			writeServiceError(w, logger, "CreateCommitApproval", err)
			return
		}

		resp := map[string]api.CommitApproval{"commit_approval": api.NewCommitApproval(approval)}
		writeJSON(w, logger, http.StatusCreated, resp)

		logger.Info("CreateCommitApproval: successfully created commit approval",
			zap.String("commit_approval_id", approval.ID))
	}
}
