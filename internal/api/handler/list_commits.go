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

type listCommitsResponse struct {
	CommitApprovals []api.CommitApproval `json:"commit_approvals"`
	Page            api.Page             `json:"page"`
}

func ListCommitApprovals(svc *service.CommitApproval, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		actorID, ok := requireUserID(w, r, logger, "ListCommitApprovals")
		if !ok {
			return
		}

		challengeID := chi.URLParam(r, "id")
		page, size := pageParams(r)

		approvals, total, err := svc.ListForChallenge(ctx, challengeID, actorID, page, size)
		if err != nil {
			writeServiceError(w, logger, "ListCommitApprovals", err)
			return
		}

		apiApprovals := make([]api.CommitApproval, 0, len(approvals))
		for i := range approvals {
			apiApprovals = append(apiApprovals, api.NewCommitApproval(&approvals[i]))
		}

		resp := listCommitsResponse{
			CommitApprovals: apiApprovals,
			Page:            api.Page{Page: page, Size: size, Total: total},
		}
		writeJSON(w, logger, http.StatusOK, resp)

		logger.Info("ListCommitApprovals: successfully listed commit approvals",
			zap.String("challenge_id", challengeID), zap.Int("total", total))
	}
}
