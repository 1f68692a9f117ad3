package competitionservice

import "github.com/Black-And-White-Club/competitions/app/shared/apperr"

var (
	// ErrCompetitionNotFound is returned when the referenced competition does not exist.
	ErrCompetitionNotFound = apperr.New(apperr.ErrNotFound, "competition not found")

	// ErrCompetitionNotSaved is returned when an insert did not store exactly one row.
	ErrCompetitionNotSaved = apperr.New(apperr.ErrPersistence, "competition was not saved")

	// ErrCompetitionNotUpdated is returned when an update matched no competition.
	ErrCompetitionNotUpdated = apperr.New(apperr.ErrPersistence, "competition was not updated")

	// ErrCompetitionNotDeleted is returned when a delete matched no competition.
	ErrCompetitionNotDeleted = apperr.New(apperr.ErrPersistence, "competition was not deleted")
)
