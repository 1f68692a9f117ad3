package participantdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for participants.
//
// Error semantics:
//   - ErrNotFound: Find*/Get* found no row
//   - ErrDuplicateEnrollment: Insert hit the (user_id, competition_id) unique constraint
//   - persistence.ErrNoRowsAffected: UpdatePoints matched no row
//   - other errors: infrastructure failures
type Repository interface {
	FindByUserAndCompetition(ctx context.Context, db bun.IDB, userID, competitionID int64) (*Participant, error)

	// Insert enrolls p, filling its id and appeared_at.
	Insert(ctx context.Context, db bun.IDB, p *Participant) error

	// ListAll returns every participant ordered by id.
	ListAll(ctx context.Context, db bun.IDB) ([]*ParticipantRow, error)

	// ListByCompetition returns the ranked rows of one competition: lowest
	// points first, unscored participants ahead of scored ones.
	ListByCompetition(ctx context.Context, db bun.IDB, competitionID int64) ([]*ParticipantRow, error)

	UpdatePoints(ctx context.Context, db bun.IDB, participantID int64, points int) error

	GetByID(ctx context.Context, db bun.IDB, participantID int64) (*ParticipantRow, error)
}
