// Package outcome renders operation results as the JSON envelope returned by
// every HTTP route.
package outcome

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/competitions/app/observability/attr"
	"github.com/Black-And-White-Club/competitions/app/shared/apperr"
	"github.com/Black-And-White-Club/competitions/app/shared/validation"
)

// Envelope is the response body. Only the fields relevant to an outcome are set.
type Envelope struct {
	Items           any                    `json:"items,omitempty"`
	Item            any                    `json:"item,omitempty"`
	Success         bool                   `json:"success,omitempty"`
	SignedUp        bool                   `json:"signed_up,omitempty"`
	AlreadySignedUp bool                   `json:"already_signed_up,omitempty"`
	ValidationError bool                   `json:"validation_error,omitempty"`
	Violations      []validation.Violation `json:"violations,omitempty"`
	DatabaseError   bool                   `json:"database_error,omitempty"`
	NotFound        bool                   `json:"not_found,omitempty"`
	AccessDenied    bool                   `json:"access_denied,omitempty"`
	Error           string                 `json:"error,omitempty"`
	DisplayForm     bool                   `json:"display_form,omitempty"`
}

// JSON writes env with the given status code.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// FromError maps a failed operation to a status code and envelope. Unknown
// errors become a generic 500 so internal details never reach the caller.
func FromError(err error) (int, Envelope) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, Envelope{ValidationError: true, Violations: verr.Violations, Error: verr.Error()}
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusUnprocessableEntity, Envelope{ValidationError: true, Error: err.Error()}
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized, Envelope{AccessDenied: true, Error: apperr.ErrUnauthenticated.Error()}
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, Envelope{AccessDenied: true, Error: apperr.ErrForbidden.Error()}
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, Envelope{NotFound: true, Error: err.Error()}
	case errors.Is(err, apperr.ErrPersistence):
		return http.StatusConflict, Envelope{DatabaseError: true, Error: apperr.ErrPersistence.Error()}
	default:
		return http.StatusInternalServerError, Envelope{Error: http.StatusText(http.StatusInternalServerError)}
	}
}

// WriteError logs err and writes the matching envelope.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, env := FromError(err)
	if logger == nil {
		logger = slog.Default()
	}
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
	} else {
		logger.InfoContext(r.Context(), "Request rejected",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Int("status", status),
			attr.Error(err),
		)
	}
	JSON(w, status, env)
}

// Redirect answers a successful mutation with 303 See Other.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}
