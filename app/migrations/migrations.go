// Package migrations lists every module's schema migrations in foreign key
// order: users, then competitions, then participants.
package migrations

import (
	"context"
	"fmt"

	competitionmigrations "github.com/Black-And-White-Club/competitions/app/modules/competition/infrastructure/repositories/migrations"
	participantmigrations "github.com/Black-And-White-Club/competitions/app/modules/participant/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/competitions/app/modules/user/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Module pairs a module name with its migrator.
type Module struct {
	Name     string
	Migrator *migrate.Migrator
}

// NewMigrators returns one migrator per module. Each keeps its own history
// table so rollbacks stay within the module.
func NewMigrators(db *bun.DB) []Module {
	modules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"user", usermigrations.Migrations},
		{"competition", competitionmigrations.Migrations},
		{"participant", participantmigrations.Migrations},
	}

	out := make([]Module, 0, len(modules))
	for _, m := range modules {
		out = append(out, Module{
			Name: m.name,
			Migrator: migrate.NewMigrator(db, m.migrations,
				migrate.WithTableName("bun_migrations_"+m.name),
				migrate.WithLocksTableName("bun_migration_locks_"+m.name),
			),
		})
	}
	return out
}

// Find returns the migrator of the named module.
func Find(modules []Module, name string) (*migrate.Migrator, error) {
	for _, m := range modules {
		if m.Name == name {
			return m.Migrator, nil
		}
	}
	return nil, fmt.Errorf("invalid module name: %s", name)
}

// Up initializes the history tables and applies every pending migration.
func Up(ctx context.Context, db *bun.DB) error {
	for _, m := range NewMigrators(db) {
		if err := m.Migrator.Init(ctx); err != nil {
			return fmt.Errorf("init migrations for module %s: %w", m.Name, err)
		}
		if _, err := m.Migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate module %s: %w", m.Name, err)
		}
	}
	return nil
}
