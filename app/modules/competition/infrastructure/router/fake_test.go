package competitionrouter

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	authdomain "github.com/Black-And-White-Club/competitions/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/competitions/app/modules/auth/infrastructure/handlers"
	competitionservice "github.com/Black-And-White-Club/competitions/app/modules/competition/application"
	"github.com/Black-And-White-Club/competitions/app/shared/validation"
)

// ------------------------
// Fake Competition Service
// ------------------------

type FakeService struct {
	trace []string

	ListFunc   func(ctx context.Context) ([]competitionservice.Competition, error)
	GetFunc    func(ctx context.Context, rawID string) (*competitionservice.Competition, error)
	CreateFunc func(ctx context.Context, authorID int64, input validation.CompetitionInput) (*competitionservice.Competition, error)
	UpdateFunc func(ctx context.Context, rawID string, input validation.CompetitionInput) (*competitionservice.Competition, error)
	DeleteFunc func(ctx context.Context, rawID string) error
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) List(ctx context.Context) ([]competitionservice.Competition, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx)
	}
	return []competitionservice.Competition{}, nil
}

func (f *FakeService) Get(ctx context.Context, rawID string) (*competitionservice.Competition, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, rawID)
	}
	return nil, competitionservice.ErrCompetitionNotFound
}

func (f *FakeService) Create(ctx context.Context, authorID int64, input validation.CompetitionInput) (*competitionservice.Competition, error) {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, authorID, input)
	}
	return &competitionservice.Competition{ID: 1, Name: input.Name}, nil
}

func (f *FakeService) Update(ctx context.Context, rawID string, input validation.CompetitionInput) (*competitionservice.Competition, error) {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, rawID, input)
	}
	return &competitionservice.Competition{Name: input.Name}, nil
}

func (f *FakeService) Delete(ctx context.Context, rawID string) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, rawID)
	}
	return nil
}

var _ competitionservice.Service = (*FakeService)(nil)

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
