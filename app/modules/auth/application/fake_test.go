package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/competitions/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/competitions/app/modules/user/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake JWT Provider
// ------------------------

type FakeJWTProvider struct {
	trace []string

	GenerateTokenFunc func(identity *authdomain.Identity, ttl time.Duration) (string, error)
	ValidateTokenFunc func(tokenString string) (*authdomain.Identity, error)
}

func (f *FakeJWTProvider) Trace() []string {
	return f.trace
}

func (f *FakeJWTProvider) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeJWTProvider) GenerateToken(identity *authdomain.Identity, ttl time.Duration) (string, error) {
	f.record("GenerateToken")
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(identity, ttl)
	}
	return "fake-token", nil
}

func (f *FakeJWTProvider) ValidateToken(tokenString string) (*authdomain.Identity, error) {
	f.record("ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(tokenString)
	}
	return &authdomain.Identity{UserID: 1, Name: "test-user", Capability: authdomain.CapabilityParticipant}, nil
}

// ------------------------
// Fake User Repo
// ------------------------

type FakeUserRepo struct {
	GetByIDFunc func(ctx context.Context, db bun.IDB, id int64) (*userdb.User, error)
}

func (f *FakeUserRepo) GetByID(ctx context.Context, db bun.IDB, id int64) (*userdb.User, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) Upsert(ctx context.Context, db bun.IDB, user *userdb.User) error {
	return nil
}
