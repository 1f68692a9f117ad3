package participantrouter

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	authdomain "github.com/Black-And-White-Club/competitions/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/competitions/app/modules/auth/infrastructure/handlers"
	participantservice "github.com/Black-And-White-Club/competitions/app/modules/participant/application"
)

// ------------------------
// Fake Participant Service
// ------------------------

type FakeService struct {
	trace []string

	SignupFunc           func(ctx context.Context, userID int64, rawCompetitionID string) (participantservice.SignupOutcome, error)
	ListParticipantsFunc func(ctx context.Context) ([]participantservice.Participant, error)
	LeaderboardFunc      func(ctx context.Context, rawCompetitionID string) ([]participantservice.LeaderboardEntry, error)
	UpdateScoreFunc      func(ctx context.Context, update participantservice.ScoreUpdate) (*participantservice.Participant, error)
	ExportFunc           func(ctx context.Context, rawCompetitionID string) ([]byte, error)
	ChartFunc            func(ctx context.Context, rawCompetitionID string) ([]byte, error)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Signup(ctx context.Context, userID int64, rawCompetitionID string) (participantservice.SignupOutcome, error) {
	f.record("Signup")
	if f.SignupFunc != nil {
		return f.SignupFunc(ctx, userID, rawCompetitionID)
	}
	return participantservice.SignupOutcome{Status: participantservice.NewlyEnrolled}, nil
}

func (f *FakeService) ListParticipants(ctx context.Context) ([]participantservice.Participant, error) {
	f.record("ListParticipants")
	if f.ListParticipantsFunc != nil {
		return f.ListParticipantsFunc(ctx)
	}
	return []participantservice.Participant{}, nil
}

func (f *FakeService) Leaderboard(ctx context.Context, rawCompetitionID string) ([]participantservice.LeaderboardEntry, error) {
	f.record("Leaderboard")
	if f.LeaderboardFunc != nil {
		return f.LeaderboardFunc(ctx, rawCompetitionID)
	}
	return []participantservice.LeaderboardEntry{}, nil
}

func (f *FakeService) UpdateScore(ctx context.Context, update participantservice.ScoreUpdate) (*participantservice.Participant, error) {
	f.record("UpdateScore")
	if f.UpdateScoreFunc != nil {
		return f.UpdateScoreFunc(ctx, update)
	}
	return &participantservice.Participant{}, nil
}

func (f *FakeService) ExportLeaderboardXLSX(ctx context.Context, rawCompetitionID string) ([]byte, error) {
	f.record("ExportLeaderboardXLSX")
	if f.ExportFunc != nil {
		return f.ExportFunc(ctx, rawCompetitionID)
	}
	return []byte("PK"), nil
}

func (f *FakeService) LeaderboardChartPNG(ctx context.Context, rawCompetitionID string) ([]byte, error) {
	f.record("LeaderboardChartPNG")
	if f.ChartFunc != nil {
		return f.ChartFunc(ctx, rawCompetitionID)
	}
	return []byte("\x89PNG"), nil
}

var _ participantservice.Service = (*FakeService)(nil)

// ------------------------
// Test identity + gate
// ------------------------

// testUserHeader carries "<user id>:<capability>" in tests.
const testUserHeader = "X-Test-User"

func injectIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get(testUserHeader); raw != "" {
			idPart, capability, _ := strings.Cut(raw, ":")
			id, _ := strconv.ParseInt(idPart, 10, 64)
			r = r.WithContext(authdomain.WithIdentity(r.Context(), &authdomain.Identity{
				UserID:     id,
				Capability: authdomain.Capability(capability),
			}))
		}
		next.ServeHTTP(w, r)
	})
}

type gate struct{}

func (gate) Require(c authdomain.Capability) func(http.Handler) http.Handler {
	return authhandlers.RequireCapability(c, nil)
}
