package user

import (
	"context"

	userservice "github.com/Black-And-White-Club/competitions/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/competitions/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/competitions/app/observability"
	"github.com/uptrace/bun"
)

// Module represents the user module.
type Module struct {
	UserService userservice.Service
	Repository  userdb.Repository
}

// NewUserModule creates and initializes a new user module.
func NewUserModule(ctx context.Context, obs *observability.Observability, db *bun.DB) *Module {
	obs.Logger.InfoContext(ctx, "user.NewUserModule initializing")

	repo := userdb.NewRepository(db)
	service := userservice.NewUserService(repo, obs.Logger, obs.Metrics, obs.Tracer, db)

	return &Module{
		UserService: service,
		Repository:  repo,
	}
}
