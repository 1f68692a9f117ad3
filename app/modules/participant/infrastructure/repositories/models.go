package participantdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Participant is one user's enrollment in one competition.
type Participant struct {
	bun.BaseModel `bun:"table:participants,alias:p"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	CompetitionID int64     `bun:"competition_id,notnull" json:"competition_id"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	Points        *int      `bun:"points" json:"points"`
	AppearedAt    time.Time `bun:"appeared_at,nullzero,notnull,default:current_timestamp" json:"appeared_at"`
}

// ParticipantRow is a participant joined with the user and competition names.
type ParticipantRow struct {
	Participant     `bun:",extend"`
	UserName        string `bun:"user_name,scanonly" json:"user_name"`
	CompetitionName string `bun:"competition_name,scanonly" json:"competition_name"`
}
