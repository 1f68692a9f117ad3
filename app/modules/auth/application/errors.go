package authservice

import "github.com/Black-And-White-Club/competitions/app/shared/apperr"

var (
	// ErrInvalidToken is returned when the token is invalid.
	ErrInvalidToken = apperr.New(apperr.ErrUnauthenticated, "invalid authentication token")

	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = apperr.New(apperr.ErrUnauthenticated, "authentication token has expired")

	// ErrMissingToken is returned when no token is provided.
	ErrMissingToken = apperr.New(apperr.ErrUnauthenticated, "missing authentication token")

	// ErrInvalidCapability is returned when an unknown capability is requested.
	ErrInvalidCapability = apperr.New(apperr.ErrValidation, "invalid capability specified")

	// ErrUnknownUser is returned when a token is requested for a user that does not exist.
	ErrUnknownUser = apperr.New(apperr.ErrNotFound, "user not found")
)
