package handlers

import (
	"errors"
	"net/http"

	"taskvault/internal/apperr"
)

// statusFromErr is the single place an error kind becomes a transport
// status. Unclassified errors become 500 with a generic message so no
// internal detail reaches the caller.
func statusFromErr(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusUnauthorized, apperr.ErrInvalidCredentials.Error()
	case errors.Is(err, apperr.ErrInvalidToken):
		return http.StatusUnauthorized, apperr.ErrInvalidToken.Error()
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
