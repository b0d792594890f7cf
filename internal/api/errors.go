package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const (
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeAlreadyMember     = "ALREADY_MEMBER"
	CodeJoinRequestExists = "JOIN_REQUEST_EXISTS"
	CodeLeaderNotMember   = "LEADER_NOT_MEMBER"
	CodeLeaderCannotLeave = "LEADER_CANNOT_LEAVE"
	CodeEntryResolved     = "ENTRY_RESOLVED"
	CodeBadRequest        = "BAD_REQUEST"
)

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func WriteApiError(w http.ResponseWriter, logger *zap.Logger, message string, code string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	e := apiError{}
	e.Error.Code = code
	e.Error.Message = message

	err := json.NewEncoder(w).Encode(e)
	if err != nil {
		logger.Error("WriteApiError: failed to encoding response", zap.Error(err))
	}
}
