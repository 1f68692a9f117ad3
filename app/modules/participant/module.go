package participant

import (
	"context"

	"github.com/Black-And-White-Club/competitions/app/eventbus"
	competitiondb "github.com/Black-And-White-Club/competitions/app/modules/competition/infrastructure/repositories"
	participantservice "github.com/Black-And-White-Club/competitions/app/modules/participant/application"
	participanthandlers "github.com/Black-And-White-Club/competitions/app/modules/participant/infrastructure/handlers"
	participantdb "github.com/Black-And-White-Club/competitions/app/modules/participant/infrastructure/repositories"
	participantrouter "github.com/Black-And-White-Club/competitions/app/modules/participant/infrastructure/router"
	"github.com/Black-And-White-Club/competitions/app/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the participant module.
type Module struct {
	ParticipantService participantservice.Service
	Repository         participantdb.Repository
	handlers           *participanthandlers.ParticipantHandlers
}

// NewParticipantModule creates the enrollment and scoring module. It reads
// competitions through the competition module's repository.
func NewParticipantModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	competitions competitiondb.Repository,
	publisher eventbus.Publisher,
) *Module {
	obs.Logger.InfoContext(ctx, "participant.NewParticipantModule initializing")

	repo := participantdb.NewRepository(db)
	service := participantservice.NewParticipantService(repo, competitions, publisher, obs.Logger, obs.Metrics, obs.Tracer, db)

	return &Module{
		ParticipantService: service,
		Repository:         repo,
		handlers:           participanthandlers.NewParticipantHandlers(service, obs.Logger),
	}
}

// RegisterRoutes mounts the module's routes on the /competitions router.
func (m *Module) RegisterRoutes(r chi.Router, gate participantrouter.Authorizer) {
	participantrouter.RegisterRoutes(r, m.handlers, gate)
}
