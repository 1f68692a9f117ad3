package participantdb

import "errors"

var (
	// ErrNotFound indicates the requested participant row does not exist.
	ErrNotFound = errors.New("participant not found")

	// ErrDuplicateEnrollment indicates the (user, competition) pair is already enrolled.
	ErrDuplicateEnrollment = errors.New("participant already enrolled")
)
