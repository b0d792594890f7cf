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

func ApproveEntry(svc *service.CommitApproval, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return resolveEntry(svc, requestTimeout, logger, true, "ApproveEntry")
}

func RejectEntry(svc *service.CommitApproval, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return resolveEntry(svc, requestTimeout, logger, false, "RejectEntry")
}

func resolveEntry(svc *service.CommitApproval, requestTimeout time.Duration, logger *zap.Logger, approve bool, op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		actorID, ok := requireUserID(w, r, logger, op)
		if !ok {
			return
		}

		entryID := chi.URLParam(r, "id")

		entry, err := svc.Resolve(ctx, entryID, approve, actorID)
		if err != nil {
			writeServiceError(w, logger, op, err)
			return
		}

		resp := map[string]api.ApprovalEntry{"approval_entry": api.NewApprovalEntry(entry)}
		writeJSON(w, logger, http.StatusOK, resp)

		logger.Info(op+": successfully resolved approval entry",
			zap.String("approval_entry_id", entryID), zap.String("status", entry.Status))
	}
}
