package authjwt

import (
	"time"

	authdomain "github.com/Black-And-White-Club/competitions/app/modules/auth/domain"
)

// Provider defines the interface for JWT token operations.
type Provider interface {
	// GenerateToken creates a signed JWT token for the given identity.
	GenerateToken(identity *authdomain.Identity, ttl time.Duration) (string, error)

	// ValidateToken validates a JWT token and returns the identity it carries.
	ValidateToken(tokenString string) (*authdomain.Identity, error)
}
