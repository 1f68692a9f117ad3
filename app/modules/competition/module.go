package competition

import (
	"context"

	"github.com/Black-And-White-Club/competitions/app/eventbus"
	competitionservice "github.com/Black-And-White-Club/competitions/app/modules/competition/application"
	competitionhandlers "github.com/Black-And-White-Club/competitions/app/modules/competition/infrastructure/handlers"
	competitiondb "github.com/Black-And-White-Club/competitions/app/modules/competition/infrastructure/repositories"
	competitionrouter "github.com/Black-And-White-Club/competitions/app/modules/competition/infrastructure/router"
	"github.com/Black-And-White-Club/competitions/app/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the competition module.
type Module struct {
	CompetitionService competitionservice.Service
	Repository         competitiondb.Repository
	handlers           *competitionhandlers.CompetitionHandlers
}

// NewCompetitionModule creates and initializes a new competition module.
func NewCompetitionModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	publisher eventbus.Publisher,
) *Module {
	obs.Logger.InfoContext(ctx, "competition.NewCompetitionModule initializing")

	repo := competitiondb.NewRepository(db)
	service := competitionservice.NewCompetitionService(repo, publisher, obs.Logger, obs.Metrics, obs.Tracer, db)

	return &Module{
		CompetitionService: service,
		Repository:         repo,
		handlers:           competitionhandlers.NewCompetitionHandlers(service, obs.Logger),
	}
}

// RegisterRoutes mounts the module's routes on the /competitions router.
func (m *Module) RegisterRoutes(r chi.Router, gate competitionrouter.Authorizer) {
	competitionrouter.RegisterRoutes(r, m.handlers, gate)
}
