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

func GetCommitApproval(svc *service.CommitApproval, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		approvalID := chi.URLParam(r, "id")

		approval, err := svc.Get(ctx, approvalID)
		if err != nil {
			writeServiceError(w, logger, "GetCommitApproval", err)
			return
		}

		resp := map[string]api.CommitApproval{"commit_approval": api.NewCommitApproval(approval)}
		writeJSON(w, logger, http.StatusOK, resp)

		logger.Info("GetCommitApproval: successfully give commit approval",
			zap.String("commit_approval_id", approvalID))
	}
}
