package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"challenge-service/internal/service"
)

func DeleteCommitApproval(svc *service.CommitApproval, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		actorID, ok := requireUserID(w, r, logger, "DeleteCommitApproval")
		if !ok {
			return
		}

		approvalID := chi.URLParam(r, "id")

		err := svc.Delete(ctx, approvalID, actorID)
		if err != nil {
			writeServiceError(w, logger, "DeleteCommitApproval", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)

		logger.Info("DeleteCommitApproval: successfully deleted commit approval",
			zap.String("commit_approval_id", approvalID))
	}
}
