package participantmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating participants table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS participants (
				id BIGSERIAL PRIMARY KEY,
				competition_id BIGINT NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
				user_id BIGINT NOT NULL REFERENCES users(id),
				points INTEGER,
				appeared_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT participants_user_competition_key UNIQUE (user_id, competition_id)
			);
			CREATE INDEX IF NOT EXISTS idx_participants_competition_points ON participants (competition_id, points);
		`)
		if err != nil {
			return fmt.Errorf("failed to create participants table: %w", err)
		}

		fmt.Println("Participants table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping participants table...")

		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS participants;`)
		if err != nil {
			return fmt.Errorf("failed to drop participants table: %w", err)
		}

		fmt.Println("Participants table dropped successfully!")
		return nil
	})
}
