package competitionservice

import (
	"context"

	"github.com/Black-And-White-Club/competitions/app/shared/validation"
)

// Service manages the competition lifecycle.
type Service interface {
	List(ctx context.Context) ([]Competition, error)
	Get(ctx context.Context, rawID string) (*Competition, error)
	Create(ctx context.Context, authorID int64, input validation.CompetitionInput) (*Competition, error)
	Update(ctx context.Context, rawID string, input validation.CompetitionInput) (*Competition, error)
	Delete(ctx context.Context, rawID string) error
}
