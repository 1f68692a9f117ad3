package competitiondb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for competition persistence.
//
// Error semantics:
//   - ErrNotFound: GetByID found no row
//   - persistence.ErrNoRowsAffected / ErrUnexpectedRowCount: a mutation did not touch exactly one row
//   - other errors: infrastructure failures
type Repository interface {
	// List returns every competition ordered by apply_till, earliest first.
	List(ctx context.Context, db bun.IDB) ([]*CompetitionWithAuthor, error)

	GetByID(ctx context.Context, db bun.IDB, id int64) (*CompetitionWithAuthor, error)

	// Insert stores c and fills its generated id.
	Insert(ctx context.Context, db bun.IDB, c *Competition) error

	// Update overwrites name, description and apply_till of c.ID.
	Update(ctx context.Context, db bun.IDB, c *Competition) error

	Delete(ctx context.Context, db bun.IDB, id int64) error

	Exists(ctx context.Context, db bun.IDB, id int64) (bool, error)
}
