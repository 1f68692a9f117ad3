package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/competitions/app/modules/auth/domain"
)

// Service defines the authentication service interface.
type Service interface {
	// IssueToken signs a token for an existing user.
	IssueToken(ctx context.Context, req IssueTokenRequest) (*IssueTokenResponse, error)

	// Authenticate validates a token and returns the caller identity.
	Authenticate(ctx context.Context, tokenString string) (*authdomain.Identity, error)
}

// IssueTokenRequest names the user and capability to encode.
type IssueTokenRequest struct {
	UserID     int64
	Capability authdomain.Capability
	TTL        time.Duration
}

// IssueTokenResponse carries the signed token.
type IssueTokenResponse struct {
	Token     string
	ExpiresAt time.Time
	Identity  authdomain.Identity
}
