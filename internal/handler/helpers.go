package handler

import (
	"errors"
	"net/http"

	"docshelf/internal/domain"
	"docshelf/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrUnsupported):
		httputil.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrPersistence):
		// Surfaced so the client can offer a retry; hiding it would make
		// the write failure look like success.
		httputil.RespondError(w, http.StatusInternalServerError, "failed to persist changes")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
