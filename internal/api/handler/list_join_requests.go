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

type listJoinRequestsResponse struct {
	JoinRequests []api.JoinRequest `json:"join_requests"`
	Page         api.Page          `json:"page"`
}

func ListJoinRequests(svc *service.Challenge, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		actorID, ok := requireUserID(w, r, logger, "ListJoinRequests")
		if !ok {
			return
		}

		challengeID := chi.URLParam(r, "id")
		page, size := pageParams(r)

		requests, total, err := svc.ListJoinRequests(ctx, challengeID, actorID, page, size)
		if err != nil {
			writeServiceError(w, logger, "ListJoinRequests", err)
			return
		}

		apiRequests := make([]api.JoinRequest, 0, len(requests))
		for i := range requests {
			apiRequests = append(apiRequests, api.NewJoinRequest(&requests[i]))
		}

		resp := listJoinRequestsResponse{
			JoinRequests: apiRequests,
			Page:         api.Page{Page: page, Size: size, Total: total},
		}
		writeJSON(w, logger, http.StatusOK, resp)

		logger.Info("ListJoinRequests: successfully listed join requests",
			zap.String("challenge_id", challengeID), zap.Int("total", total))
	}
}
