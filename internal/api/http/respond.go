package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/logger"
)

type errorResponse struct {
	Error        string `json:"error"`
	Kind         string `json:"kind"`
	CurrentState string `json:"current_state,omitempty"`
}

type pagedResponse struct {
	Items    interface{} `json:"items"`
	Total    int32       `json:"total"`
	Page     int32       `json:"page"`
	PageSize int32       `json:"page_size"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError translates the error taxonomy into transport status codes.
// Unexpected errors are logged with their cause and reported opaquely.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)

	var status int
	switch kind {
	case domain.KindUnauthenticated:
		status = http.StatusUnauthorized
	case domain.KindForbidden, domain.KindPrivateKeyRequired, domain.KindPrivateKeyInvalid:
		status = http.StatusForbidden
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindInvalidTransition, domain.KindDuplicateApplication:
		status = http.StatusConflict
	case domain.KindValidationFailed:
		status = http.StatusBadRequest
	default:
		status = http.StatusServiceUnavailable
	}

	resp := errorResponse{Kind: string(kind)}
	var de *domain.Error
	if errors.As(err, &de) {
		resp.Error = de.Error()
		resp.CurrentState = de.CurrentState
	} else {
		logger.Get().Error("unexpected error serving request",
			"method", r.Method, "path", r.URL.Path, "error", err)
		resp.Error = "service unavailable"
	}

	respondJSON(w, status, resp)
}
