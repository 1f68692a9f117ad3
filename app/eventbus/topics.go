package eventbus

import "time"

// Topics published by the service.
const (
	CompetitionCreated  = "competition.created"
	CompetitionUpdated  = "competition.updated"
	CompetitionDeleted  = "competition.deleted"
	ParticipantEnrolled = "participant.enrolled"
	ParticipantScoreSet = "participant.score_updated"
)

// CompetitionEvent is the payload of competition.* topics.
type CompetitionEvent struct {
	CompetitionID int64      `json:"competition_id"`
	Name          string     `json:"name,omitempty"`
	ApplyTill     *time.Time `json:"apply_till,omitempty"`
	ActorID       int64      `json:"actor_id,omitempty"`
}

// ParticipantEvent is the payload of participant.* topics.
type ParticipantEvent struct {
	ParticipantID int64 `json:"participant_id"`
	CompetitionID int64 `json:"competition_id,omitempty"`
	UserID        int64 `json:"user_id,omitempty"`
	Points        *int  `json:"points,omitempty"`
}
