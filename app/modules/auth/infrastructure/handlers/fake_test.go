package authhandlers

import (
	"context"

	authservice "github.com/Black-And-White-Club/competitions/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/competitions/app/modules/auth/domain"
)

// ------------------------
// Fake Auth Service
// ------------------------

type FakeService struct {
	trace []string

	IssueTokenFunc   func(ctx context.Context, req authservice.IssueTokenRequest) (*authservice.IssueTokenResponse, error)
	AuthenticateFunc func(ctx context.Context, tokenString string) (*authdomain.Identity, error)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) IssueToken(ctx context.Context, req authservice.IssueTokenRequest) (*authservice.IssueTokenResponse, error) {
	f.record("IssueToken")
	if f.IssueTokenFunc != nil {
		return f.IssueTokenFunc(ctx, req)
	}
	return &authservice.IssueTokenResponse{Token: "fake-token"}, nil
}

func (f *FakeService) Authenticate(ctx context.Context, tokenString string) (*authdomain.Identity, error) {
	f.record("Authenticate:" + tokenString)
	if f.AuthenticateFunc != nil {
		return f.AuthenticateFunc(ctx, tokenString)
	}
	return nil, authservice.ErrMissingToken
}

var _ authservice.Service = (*FakeService)(nil)
