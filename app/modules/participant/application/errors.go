package participantservice

import "github.com/Black-And-White-Club/competitions/app/shared/apperr"

var (
	ErrCompetitionNotFound = apperr.New(apperr.ErrNotFound, "competition not found")
	ErrParticipantNotFound = apperr.New(apperr.ErrNotFound, "participant not found")

	// ErrEnrollmentNotSaved is returned when a signup insert stored no row for a reason other than a duplicate.
	ErrEnrollmentNotSaved = apperr.New(apperr.ErrPersistence, "enrollment was not saved")

	// ErrScoreNotSaved is returned when a score update matched no participant.
	ErrScoreNotSaved = apperr.New(apperr.ErrPersistence, "score was not saved")
)
