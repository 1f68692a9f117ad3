package userservice

import "github.com/Black-And-White-Club/competitions/app/shared/apperr"

var (
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = apperr.New(apperr.ErrNotFound, "user not found")
)
