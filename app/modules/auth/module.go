package auth

import (
	"context"
	"net/http"

	authservice "github.com/Black-And-White-Club/competitions/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/competitions/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/competitions/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/competitions/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/competitions/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/competitions/app/observability"
	"github.com/Black-And-White-Club/competitions/config"
)

// Module represents the auth module.
type Module struct {
	Service authservice.Service
	obs     *observability.Observability
}

// NewModule creates a new auth module.
func NewModule(ctx context.Context, cfg *config.Config, obs *observability.Observability, userRepo userdb.Repository) *Module {
	obs.Logger.InfoContext(ctx, "Initializing auth module")

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret, cfg.JWT.Issuer)
	service := authservice.NewService(jwtProvider, userRepo, cfg.JWT.DefaultTTL, obs.Logger, obs.Tracer)

	return &Module{Service: service, obs: obs}
}

// Authenticate returns the middleware resolving the caller identity.
func (m *Module) Authenticate() func(http.Handler) http.Handler {
	return authhandlers.Authenticate(m.Service, m.obs.Logger)
}

// Require returns the middleware enforcing a capability.
func (m *Module) Require(c authdomain.Capability) func(http.Handler) http.Handler {
	return authhandlers.RequireCapability(c, m.obs.Logger)
}
