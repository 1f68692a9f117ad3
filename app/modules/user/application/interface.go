package userservice

import (
	"context"

	userdb "github.com/Black-And-White-Club/competitions/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/competitions/app/shared/validation"
)

// Service reads and registers the users that competitions reference.
type Service interface {
	GetUser(ctx context.Context, userID int64) (*userdb.User, error)
	RegisterUser(ctx context.Context, input validation.UserInput) (*userdb.User, error)
}
