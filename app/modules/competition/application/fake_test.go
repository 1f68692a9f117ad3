package competitionservice

import (
	"context"
	"sort"
	"sync"

	competitiondb "github.com/Black-And-White-Club/competitions/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/competitions/app/shared/persistence"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Competition Repo
// ------------------------

// FakeCompetitionRepo keeps competitions in memory unless a Func override is set.
type FakeCompetitionRepo struct {
	mu     sync.Mutex
	trace  []string
	rows   map[int64]*competitiondb.Competition
	nextID int64
	Users  map[int64]string

	ListFunc    func(ctx context.Context, db bun.IDB) ([]*competitiondb.CompetitionWithAuthor, error)
	GetByIDFunc func(ctx context.Context, db bun.IDB, id int64) (*competitiondb.CompetitionWithAuthor, error)
	InsertFunc  func(ctx context.Context, db bun.IDB, c *competitiondb.Competition) error
	UpdateFunc  func(ctx context.Context, db bun.IDB, c *competitiondb.Competition) error
	DeleteFunc  func(ctx context.Context, db bun.IDB, id int64) error
}

func NewFakeCompetitionRepo() *FakeCompetitionRepo {
	return &FakeCompetitionRepo{
		trace: []string{},
		rows:  map[int64]*competitiondb.Competition{},
		Users: map[int64]string{},
	}
}

func (f *FakeCompetitionRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

func (f *FakeCompetitionRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeCompetitionRepo) withAuthor(c *competitiondb.Competition) *competitiondb.CompetitionWithAuthor {
	cp := *c
	return &competitiondb.CompetitionWithAuthor{Competition: cp, AuthorName: f.Users[c.AuthorID]}
}

func (f *FakeCompetitionRepo) List(ctx context.Context, db bun.IDB) ([]*competitiondb.CompetitionWithAuthor, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*competitiondb.CompetitionWithAuthor, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, f.withAuthor(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ApplyTill.Equal(out[j].ApplyTill) {
			return out[i].ApplyTill.Before(out[j].ApplyTill)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *FakeCompetitionRepo) GetByID(ctx context.Context, db bun.IDB, id int64) (*competitiondb.CompetitionWithAuthor, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	if !ok {
		return nil, competitiondb.ErrNotFound
	}
	return f.withAuthor(c), nil
}

func (f *FakeCompetitionRepo) Insert(ctx context.Context, db bun.IDB, c *competitiondb.Competition) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, c)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *FakeCompetitionRepo) Update(ctx context.Context, db bun.IDB, c *competitiondb.Competition) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, c)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.rows[c.ID]
	if !ok {
		return persistence.ErrNoRowsAffected
	}
	existing.Name, existing.Description, existing.ApplyTill = c.Name, c.Description, c.ApplyTill
	return nil
}

func (f *FakeCompetitionRepo) Delete(ctx context.Context, db bun.IDB, id int64) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return persistence.ErrNoRowsAffected
	}
	delete(f.rows, id)
	return nil
}

func (f *FakeCompetitionRepo) Exists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	f.record("Exists")
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	return ok, nil
}

var _ competitiondb.Repository = (*FakeCompetitionRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent

	PublishFunc func(ctx context.Context, topic string, payload any) error
}

func (f *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	f.events = append(f.events, publishedEvent{Topic: topic, Payload: payload})
	f.mu.Unlock()
	if f.PublishFunc != nil {
		return f.PublishFunc(ctx, topic, payload)
	}
	return nil
}

func (f *FakePublisher) Close() error { return nil }

func (f *FakePublisher) Topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Topic)
	}
	return out
}
