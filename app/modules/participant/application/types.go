package participantservice

import (
	"time"

	participantdb "github.com/Black-And-White-Club/competitions/app/modules/participant/infrastructure/repositories"
)

// SignupStatus tells whether a signup created the enrollment.
type SignupStatus string

const (
	NewlyEnrolled   SignupStatus = "newly_enrolled"
	AlreadyEnrolled SignupStatus = "already_enrolled"
)

// SignupOutcome is the result of a successful signup call. Participant may be
// nil when a concurrent signup won the race and its row is not yet visible.
type SignupOutcome struct {
	Status      SignupStatus
	Participant *Participant
}

// Participant is one enrollment as returned to callers.
type Participant struct {
	ID            int64     `json:"id"`
	CompetitionID int64     `json:"competition_id"`
	UserID        int64     `json:"user_id"`
	UserName      string    `json:"user_name,omitempty"`
	Points        *int      `json:"points"`
	AppearedAt    time.Time `json:"appeared_at"`
}

// LeaderboardEntry is one ranked row of a competition.
type LeaderboardEntry struct {
	ID          int64     `json:"id"`
	Participant string    `json:"participant"`
	AppearedAt  time.Time `json:"appeared_at"`
	Points      *int      `json:"points"`
	Competition string    `json:"competition"`
}

// ScoreUpdate carries the raw inputs of a score change. BodyID is optional;
// when set it must name the same participant as PathID.
type ScoreUpdate struct {
	PathID   string
	BodyID   string
	RawScore string
}

func toParticipant(p *participantdb.Participant, userName string) Participant {
	return Participant{
		ID:            p.ID,
		CompetitionID: p.CompetitionID,
		UserID:        p.UserID,
		UserName:      userName,
		Points:        p.Points,
		AppearedAt:    p.AppearedAt,
	}
}

func toEntry(row *participantdb.ParticipantRow) LeaderboardEntry {
	return LeaderboardEntry{
		ID:          row.ID,
		Participant: row.UserName,
		AppearedAt:  row.AppearedAt,
		Points:      row.Points,
		Competition: row.CompetitionName,
	}
}
