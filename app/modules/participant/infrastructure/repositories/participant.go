package participantdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/competitions/app/shared/persistence"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new participant repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) selectRows(db bun.IDB, dest any) *bun.SelectQuery {
	return db.NewSelect().
		Model(dest).
		ColumnExpr("p.*").
		ColumnExpr("u.name AS user_name").
		ColumnExpr("c.name AS competition_name").
		Join("JOIN users AS u ON u.id = p.user_id").
		Join("JOIN competitions AS c ON c.id = p.competition_id")
}

// FindByUserAndCompetition returns the enrollment of userID in competitionID.
func (r *Impl) FindByUserAndCompetition(ctx context.Context, db bun.IDB, userID, competitionID int64) (*Participant, error) {
	db = r.resolveDB(db)
	p := new(Participant)
	err := db.NewSelect().
		Model(p).
		Where("p.user_id = ?", userID).
		Where("p.competition_id = ?", competitionID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}
	return p, nil
}

// Insert enrolls a participant. The unique constraint decides between
// concurrent signups; the loser gets ErrDuplicateEnrollment.
func (r *Impl) Insert(ctx context.Context, db bun.IDB, p *Participant) error {
	db = r.resolveDB(db)
	res, err := db.NewInsert().
		Model(p).
		On("CONFLICT (user_id, competition_id) DO NOTHING").
		Returning("id, appeared_at").
		Exec(ctx)
	if err != nil {
		// A conflict skips the row, so RETURNING may come back empty.
		if persistence.IsUniqueViolation(err) || errors.Is(err, sql.ErrNoRows) {
			return ErrDuplicateEnrollment
		}
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	if err := persistence.ExpectOneRow(res); err != nil {
		if errors.Is(err, persistence.ErrNoRowsAffected) {
			return ErrDuplicateEnrollment
		}
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

// ListAll returns every participant with the user's name.
func (r *Impl) ListAll(ctx context.Context, db bun.IDB) ([]*ParticipantRow, error) {
	db = r.resolveDB(db)
	rows := make([]*ParticipantRow, 0)
	err := r.selectRows(db, &rows).
		OrderExpr("p.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return rows, nil
}

// ListByCompetition returns the leaderboard rows of one competition.
func (r *Impl) ListByCompetition(ctx context.Context, db bun.IDB, competitionID int64) ([]*ParticipantRow, error) {
	db = r.resolveDB(db)
	rows := make([]*ParticipantRow, 0)
	err := r.selectRows(db, &rows).
		Where("p.competition_id = ?", competitionID).
		OrderExpr("p.points ASC NULLS FIRST, p.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list competition participants: %w", err)
	}
	return rows, nil
}

// UpdatePoints sets the score of one participant.
func (r *Impl) UpdatePoints(ctx context.Context, db bun.IDB, participantID int64, points int) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Participant)(nil)).
		Set("points = ?", points).
		Where("id = ?", participantID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update participant points: %w", err)
	}
	if err := persistence.ExpectOneRow(res); err != nil {
		return fmt.Errorf("update points of participant %d: %w", participantID, err)
	}
	return nil
}

// GetByID returns one participant with its names.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, participantID int64) (*ParticipantRow, error) {
	db = r.resolveDB(db)
	row := new(ParticipantRow)
	err := r.selectRows(db, row).
		Where("p.id = ?", participantID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return row, nil
}
