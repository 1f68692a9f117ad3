// Package testutils starts the Postgres environment shared by the repository
// integration tests.
package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/Black-And-White-Club/competitions/app/migrations"
	userdb "github.com/Black-And-White-Club/competitions/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/competitions/app/shared/persistence"
	"github.com/Black-And-White-Club/competitions/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go"
	"github.com/uptrace/bun"
)

// TestEnvironment holds a migrated database for one test package.
type TestEnvironment struct {
	Ctx context.Context
	DB  *bun.DB
	DSN string
}

// NewTestEnvironment starts Postgres, applies every migration and registers
// cleanup on t. It skips under -short or when no container runtime is available.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	t.Cleanup(cancel)

	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("failed to set up postgres: %v", err)
	}
	t.Cleanup(func() { _ = pgContainer.Terminate(context.Background()) })

	db, err := persistence.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Up(ctx, db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestEnvironment{Ctx: ctx, DB: db, DSN: dsn}
}

// Reset empties every domain table and restarts identities.
func (env *TestEnvironment) Reset(t *testing.T) {
	t.Helper()
	_, err := env.DB.ExecContext(env.Ctx, `TRUNCATE participants, competitions, users RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("failed to reset tables: %v", err)
	}
}

// SeedUser stores a user with the given id and name.
func (env *TestEnvironment) SeedUser(t *testing.T, id int64, name string) {
	t.Helper()
	if err := userdb.NewRepository(env.DB).Upsert(env.Ctx, nil, &userdb.User{ID: id, Name: name}); err != nil {
		t.Fatalf("failed to seed user %d: %v", id, err)
	}
}
