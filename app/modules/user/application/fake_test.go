package userservice

import (
	"context"

	userdb "github.com/Black-And-White-Club/competitions/app/modules/user/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake User Repo
// ------------------------

type FakeUserRepo struct {
	trace []string

	GetByIDFunc func(ctx context.Context, db bun.IDB, id int64) (*userdb.User, error)
	UpsertFunc  func(ctx context.Context, db bun.IDB, user *userdb.User) error
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		trace: []string{},
	}
}

func (f *FakeUserRepo) Trace() []string {
	return f.trace
}

func (f *FakeUserRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserRepo) GetByID(ctx context.Context, db bun.IDB, id int64) (*userdb.User, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) Upsert(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("Upsert")
	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, db, user)
	}
	return nil
}

var _ userdb.Repository = (*FakeUserRepo)(nil)
