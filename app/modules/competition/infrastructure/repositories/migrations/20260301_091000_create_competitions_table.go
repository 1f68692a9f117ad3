package competitionmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating competitions table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS competitions (
				id BIGSERIAL PRIMARY KEY,
				name TEXT NOT NULL CHECK (char_length(name) BETWEEN 3 AND 50),
				description TEXT NOT NULL CHECK (char_length(description) BETWEEN 3 AND 1000),
				author_id BIGINT NOT NULL REFERENCES users(id),
				apply_till DATE NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_competitions_apply_till ON competitions (apply_till);
		`)
		if err != nil {
			return fmt.Errorf("failed to create competitions table: %w", err)
		}

		fmt.Println("Competitions table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping competitions table...")

		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS competitions CASCADE;`)
		if err != nil {
			return fmt.Errorf("failed to drop competitions table: %w", err)
		}

		fmt.Println("Competitions table dropped successfully!")
		return nil
	})
}
