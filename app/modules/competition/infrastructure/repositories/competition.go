package competitiondb

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

// NewRepository creates a new competition repository.
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

func (r *Impl) selectWithAuthor(db bun.IDB, dest any) *bun.SelectQuery {
	return db.NewSelect().
		Model(dest).
		ColumnExpr("c.*").
		ColumnExpr("u.name AS author_name").
		Join("JOIN users AS u ON u.id = c.author_id")
}

// List returns all competitions ordered by apply_till.
func (r *Impl) List(ctx context.Context, db bun.IDB) ([]*CompetitionWithAuthor, error) {
	db = r.resolveDB(db)
	competitions := make([]*CompetitionWithAuthor, 0)
	err := r.selectWithAuthor(db, &competitions).
		OrderExpr("c.apply_till ASC, c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	return competitions, nil
}

// GetByID retrieves one competition with its author name.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id int64) (*CompetitionWithAuthor, error) {
	db = r.resolveDB(db)
	competition := new(CompetitionWithAuthor)
	err := r.selectWithAuthor(db, competition).
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get competition by id: %w", err)
	}
	return competition, nil
}

// Insert creates a competition.
func (r *Impl) Insert(ctx context.Context, db bun.IDB, c *Competition) error {
	db = r.resolveDB(db)
	res, err := db.NewInsert().
		Model(c).
		Returning("id, created_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert competition: %w", err)
	}
	if err := persistence.ExpectOneRow(res); err != nil {
		return fmt.Errorf("insert competition: %w", err)
	}
	return nil
}

// Update rewrites the editable columns of a competition.
func (r *Impl) Update(ctx context.Context, db bun.IDB, c *Competition) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model(c).
		Column("name", "description", "apply_till").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update competition: %w", err)
	}
	if err := persistence.ExpectOneRow(res); err != nil {
		return fmt.Errorf("update competition %d: %w", c.ID, err)
	}
	return nil
}

// Delete removes a competition. Its participants go with it.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, id int64) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Competition)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete competition: %w", err)
	}
	if err := persistence.ExpectOneRow(res); err != nil {
		return fmt.Errorf("delete competition %d: %w", id, err)
	}
	return nil
}

// Exists reports whether a competition with id is stored.
func (r *Impl) Exists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Competition)(nil)).
		Where("id = ?", id).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check competition: %w", err)
	}
	return exists, nil
}
