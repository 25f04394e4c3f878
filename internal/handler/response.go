package handler

// Response helpers. Every error body this API produces goes through here,
// so the wire contract lives in one place:
//
//	400 → {"message": "Invalid <entity> data", "errors": [{field, message}]}
//	404 → {"message": "<Entity> not found"}
//	500 → {"message": "Failed to <operation>"}
//
// (401 is produced earlier, by the auth middleware, with its own uniform
// body.) Internal causes are logged server-side and never leaked: the 500
// message names the operation, not the failure.

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/taskflow/internal/apperror"
	"github.com/sakif/taskflow/internal/validation"
)

// errorResponse is the shape of every non-2xx body.
type errorResponse struct {
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

// writeJSON sends a JSON response. Headers and status must go out before the
// body — once Encode writes, the headers are sealed.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent; nothing left to do but log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeValidationErrors sends the 400 body for a payload that failed
// validation. entity is "project" or "task" — the message is part of the
// contract, clients switch on it.
func writeValidationErrors(w http.ResponseWriter, entity string, errs []validation.FieldError) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Message: fmt.Sprintf("Invalid %s data", entity),
		Errors:  errs,
	})
}

// writeError maps a service-layer error to HTTP.
//
//   - apperror.ErrNotFound  → 404 with the error's own message
//   - apperror.ErrValidation → 400, folded into the same shape as payload
//     validation failures
//   - anything else → 500 with the generic fallback; the cause goes to the
//     log only
func writeError(w http.ResponseWriter, logger *slog.Logger, err error, entity, fallback string) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Message: appErr.Message})
			return
		case errors.Is(err, apperror.ErrValidation):
			writeValidationErrors(w, entity, []validation.FieldError{
				{Field: appErr.Field, Message: appErr.Message},
			})
			return
		}
	}

	logger.Error(fallback, slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: fallback})
}
