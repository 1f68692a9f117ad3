package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/competitions/app/eventbus"
	"github.com/Black-And-White-Club/competitions/app/modules/auth"
	"github.com/Black-And-White-Club/competitions/app/modules/competition"
	"github.com/Black-And-White-Club/competitions/app/modules/participant"
	"github.com/Black-And-White-Club/competitions/app/modules/user"
	"github.com/Black-And-White-Club/competitions/app/observability"
	"github.com/Black-And-White-Club/competitions/app/observability/attr"
	"github.com/Black-And-White-Club/competitions/app/shared/persistence"
	"github.com/Black-And-White-Club/competitions/config"
	"github.com/uptrace/bun"
)

// Modules groups the domain modules wired into the app.
type Modules struct {
	User        *user.Module
	Auth        *auth.Module
	Competition *competition.Module
	Participant *participant.Module
}

// App owns the process-wide resources of the service.
type App struct {
	Config    *config.Config
	Obs       *observability.Observability
	Logger    *slog.Logger
	DB        *bun.DB
	Publisher eventbus.Publisher
	Modules   Modules
	Server    *http.Server
}

// NewApp connects the database, builds observability and the event bus, and
// wires every module behind one HTTP server.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs, err := observability.New(ctx, config.ToObsConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Logger

	db, err := persistence.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.InfoContext(ctx, "Database connection established")

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Obs:       obs,
		Logger:    logger,
		DB:        db,
		Publisher: publisher,
	}
	app.Modules = buildModules(ctx, cfg, obs, db, publisher)
	app.Server = &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return app, nil
}

func newPublisher(cfg *config.Config, logger *slog.Logger) (eventbus.Publisher, error) {
	if cfg.NATS.URL == "" {
		publisher, _ := eventbus.NewInMemory(logger)
		logger.Info("Using in-process event bus")
		return publisher, nil
	}
	publisher, err := eventbus.NewNATSPublisher(cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}
	logger.Info("Using NATS event bus", attr.String("url", cfg.NATS.URL))
	return publisher, nil
}

func buildModules(ctx context.Context, cfg *config.Config, obs *observability.Observability, db *bun.DB, publisher eventbus.Publisher) Modules {
	userModule := user.NewUserModule(ctx, obs, db)
	competitionModule := competition.NewCompetitionModule(ctx, obs, db, publisher)
	return Modules{
		User:        userModule,
		Auth:        auth.NewModule(ctx, cfg, obs, userModule.Repository),
		Competition: competitionModule,
		Participant: participant.NewParticipantModule(ctx, obs, db, competitionModule.Repository, publisher),
	}
}

// Close releases the publisher, flushes traces and closes the database.
func (app *App) Close(ctx context.Context) error {
	var errs []error
	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	if app.Obs != nil {
		if err := app.Obs.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown observability: %w", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
