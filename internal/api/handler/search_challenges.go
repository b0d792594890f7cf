package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"challenge-service/internal/api"
	"challenge-service/internal/repository"
	"challenge-service/internal/service"
)

type searchChallengesResponse struct {
	Challenges []api.Challenge `json:"challenges"`
	Page       api.Page        `json:"page"`
}

func SearchChallenges(svc *service.Challenge, requestTimeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		filter := repository.ChallengeFilter{
			Name:        r.URL.Query().Get("name"),
			Description: r.URL.Query().Get("description"),
			LeaderID:    r.URL.Query().Get("leader_id"),
		}
		page, size := pageParams(r)

		challenges, total, err := svc.Search(ctx, filter, page, size)
		if err != nil {
			writeServiceError(w, logger, "SearchChallenges", err)
			return
		}

		apiChallenges := make([]api.Challenge, 0, len(challenges))
		for i := range challenges {
			apiChallenges = append(apiChallenges, api.NewChallenge(&challenges[i]))
		}

		resp := searchChallengesResponse{
			Challenges: apiChallenges,
			Page:       api.Page{Page: page, Size: size, Total: total},
		}
		writeJSON(w, logger, http.StatusOK, resp)

		logger.Info("SearchChallenges: successfully searched challenges", zap.Int("total", total))
	}
}
