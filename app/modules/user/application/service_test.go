package userservice

import (
	"context"
	"errors"
	"testing"

	userdb "github.com/Black-And-White-Club/competitions/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/competitions/app/observability"
	"github.com/Black-And-White-Club/competitions/app/shared/apperr"
	"github.com/Black-And-White-Club/competitions/app/shared/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestService(repo *FakeUserRepo) *UserService {
	return NewUserService(repo, nil, observability.NewNoopMetrics(), nil, nil)
}

func TestGetUser(t *testing.T) {
	tests := []struct {
		name      string
		setupRepo func(*FakeUserRepo)
		wantName  string
		wantErr   error
		wantInfra bool
	}{
		{
			name: "found",
			setupRepo: func(f *FakeUserRepo) {
				f.GetByIDFunc = func(ctx context.Context, db bun.IDB, id int64) (*userdb.User, error) {
					return &userdb.User{ID: id, Name: "Ann"}, nil
				}
			},
			wantName: "Ann",
		},
		{
			name:      "not found",
			setupRepo: func(*FakeUserRepo) {},
			wantErr:   apperr.ErrNotFound,
		},
		{
			name: "database error",
			setupRepo: func(f *FakeUserRepo) {
				f.GetByIDFunc = func(ctx context.Context, db bun.IDB, id int64) (*userdb.User, error) {
					return nil, errors.New("connection reset")
				}
			},
			wantInfra: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeUserRepo()
			tt.setupRepo(repo)

			user, err := newTestService(repo).GetUser(context.Background(), 4)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantInfra:
				require.Error(t, err)
				assert.Contains(t, err.Error(), "GetUser")
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantName, user.Name)
			}
		})
	}
}

func TestRegisterUser(t *testing.T) {
	t.Run("trims and stores", func(t *testing.T) {
		repo := NewFakeUserRepo()
		var stored *userdb.User
		repo.UpsertFunc = func(ctx context.Context, db bun.IDB, user *userdb.User) error {
			stored = user
			return nil
		}

		user, err := newTestService(repo).RegisterUser(context.Background(), validation.UserInput{ID: 8, Name: "  Bo  "})
		require.NoError(t, err)
		assert.Equal(t, "Bo", user.Name)
		assert.Same(t, stored, user)
	})

	t.Run("rejects blank name without writing", func(t *testing.T) {
		repo := NewFakeUserRepo()
		_, err := newTestService(repo).RegisterUser(context.Background(), validation.UserInput{ID: 8, Name: "   "})
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Empty(t, repo.Trace())
	})
}
