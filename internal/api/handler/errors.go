package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"challenge-service/internal/api"
	"challenge-service/internal/repository"
	"challenge-service/internal/service"
)

// writeServiceError maps the workflow error taxonomy onto the API error
// envelope. Anything outside the taxonomy is an infrastructure failure
// and surfaces as a plain 500.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrChallengeNotFound),
		errors.Is(err, repository.ErrJoinRequestNotFound),
		errors.Is(err, repository.ErrCommitApprovalNotFound),
		errors.Is(err, repository.ErrApprovalEntryNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		logger.Warn(op+": "+err.Error())
		api.WriteApiError(w, logger, err.Error(), api.CodeNotFound, http.StatusNotFound)

	case errors.Is(err, service.ErrNotLeader):
		logger.Warn(op + ": " + err.Error())
		api.WriteApiError(w, logger, err.Error(), api.CodeUnauthorized, http.StatusUnauthorized)

	case errors.Is(err, service.ErrForbidden):
		logger.Warn(op + ": " + err.Error())
		api.WriteApiError(w, logger, err.Error(), api.CodeForbidden, http.StatusForbidden)

	case errors.Is(err, repository.ErrAlreadyMember):
		logger.Warn(op + ": " + err.Error())
		api.WriteApiError(w, logger, err.Error(), api.CodeAlreadyMember, http.StatusConflict)

	case errors.Is(err, repository.ErrJoinRequestExists):
		logger.Warn(op + ": " + err.Error())
		api.WriteApiError(w, logger, err.Error(), api.CodeJoinRequestExists, http.StatusConflict)

	case errors.Is(err, service.ErrLeaderNotMember):
		logger.Warn(op + ": " + err.Error())
		api.WriteApiError(w, logger, err.Error(), api.CodeLeaderNotMember, http.StatusConflict)

	case errors.Is(err, service.ErrLeaderCannotLeave):
		logger.Warn(op + ": " + err.Error())
		api.WriteApiError(w, logger, err.Error(), api.CodeLeaderCannotLeave, http.StatusConflict)

	case errors.Is(err, repository.ErrEntryResolved):
		logger.Warn(op + ": " + err.Error())
		api.WriteApiError(w, logger, err.Error(), api.CodeEntryResolved, http.StatusConflict)

	case errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrEmptySearch),
		errors.Is(err, service.ErrInvalidTargetDate):
		logger.Warn(op + ": " + err.Error())
		api.WriteApiError(w, logger, err.Error(), api.CodeBadRequest, http.StatusBadRequest)

	default:
		logger.Error(op+": unexpected error", zap.Error(err))
		WriteError(w, logger, "internal error", http.StatusInternalServerError)
	}
}

func requireUserID(w http.ResponseWriter, r *http.Request, logger *zap.Logger, op string) (string, bool) {
	id := userID(r)
	if id == "" {
		logger.Warn(op + ": missing user identity")
		api.WriteApiError(w, logger, "user identity required", api.CodeUnauthorized, http.StatusUnauthorized)
		return "", false
	}
	return id, true
}
