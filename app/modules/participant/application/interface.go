package participantservice

import "context"

// Service covers enrollment and scoring.
type Service interface {
	Signup(ctx context.Context, userID int64, rawCompetitionID string) (SignupOutcome, error)
	ListParticipants(ctx context.Context) ([]Participant, error)
	Leaderboard(ctx context.Context, rawCompetitionID string) ([]LeaderboardEntry, error)
	UpdateScore(ctx context.Context, update ScoreUpdate) (*Participant, error)

	ExportLeaderboardXLSX(ctx context.Context, rawCompetitionID string) ([]byte, error)
	LeaderboardChartPNG(ctx context.Context, rawCompetitionID string) ([]byte, error)
}
