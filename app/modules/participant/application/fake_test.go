package participantservice

import (
	"context"
	"sort"
	"sync"
	"time"

	competitiondb "github.com/Black-And-White-Club/competitions/app/modules/competition/infrastructure/repositories"
	participantdb "github.com/Black-And-White-Club/competitions/app/modules/participant/infrastructure/repositories"
	"github.com/Black-And-White-Club/competitions/app/shared/persistence"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Participant Repo
// ------------------------

// FakeParticipantRepo keeps enrollments in memory and enforces the
// (user_id, competition_id) uniqueness the table constraint provides.
type FakeParticipantRepo struct {
	mu           sync.Mutex
	trace        []string
	rows         map[int64]*participantdb.Participant
	nextID       int64
	Users        map[int64]string
	Competitions map[int64]string

	FindByUserAndCompetitionFunc func(ctx context.Context, db bun.IDB, userID, competitionID int64) (*participantdb.Participant, error)
	InsertFunc                   func(ctx context.Context, db bun.IDB, p *participantdb.Participant) error
	ListAllFunc                  func(ctx context.Context, db bun.IDB) ([]*participantdb.ParticipantRow, error)
	ListByCompetitionFunc        func(ctx context.Context, db bun.IDB, competitionID int64) ([]*participantdb.ParticipantRow, error)
	UpdatePointsFunc             func(ctx context.Context, db bun.IDB, participantID int64, points int) error
}

func NewFakeParticipantRepo() *FakeParticipantRepo {
	return &FakeParticipantRepo{
		trace:        []string{},
		rows:         map[int64]*participantdb.Participant{},
		Users:        map[int64]string{},
		Competitions: map[int64]string{},
	}
}

func (f *FakeParticipantRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

func (f *FakeParticipantRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Count returns the number of stored enrollments.
func (f *FakeParticipantRepo) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// Points returns the stored points of a participant.
func (f *FakeParticipantRepo) Points(id int64) *int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.rows[id]; ok {
		return p.Points
	}
	return nil
}

func (f *FakeParticipantRepo) joined(p *participantdb.Participant) *participantdb.ParticipantRow {
	return &participantdb.ParticipantRow{
		Participant:     *p,
		UserName:        f.Users[p.UserID],
		CompetitionName: f.Competitions[p.CompetitionID],
	}
}

func (f *FakeParticipantRepo) FindByUserAndCompetition(ctx context.Context, db bun.IDB, userID, competitionID int64) (*participantdb.Participant, error) {
	f.record("FindByUserAndCompetition")
	if f.FindByUserAndCompetitionFunc != nil {
		return f.FindByUserAndCompetitionFunc(ctx, db, userID, competitionID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.rows {
		if p.UserID == userID && p.CompetitionID == competitionID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, participantdb.ErrNotFound
}

func (f *FakeParticipantRepo) Insert(ctx context.Context, db bun.IDB, p *participantdb.Participant) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, p)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if existing.UserID == p.UserID && existing.CompetitionID == p.CompetitionID {
			return participantdb.ErrDuplicateEnrollment
		}
	}
	f.nextID++
	p.ID = f.nextID
	p.AppearedAt = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(p.ID) * time.Minute)
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *FakeParticipantRepo) ListAll(ctx context.Context, db bun.IDB) ([]*participantdb.ParticipantRow, error) {
	f.record("ListAll")
	if f.ListAllFunc != nil {
		return f.ListAllFunc(ctx, db)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*participantdb.ParticipantRow, 0, len(f.rows))
	for _, p := range f.rows {
		out = append(out, f.joined(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeParticipantRepo) ListByCompetition(ctx context.Context, db bun.IDB, competitionID int64) ([]*participantdb.ParticipantRow, error) {
	f.record("ListByCompetition")
	if f.ListByCompetitionFunc != nil {
		return f.ListByCompetitionFunc(ctx, db, competitionID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*participantdb.ParticipantRow, 0)
	for _, p := range f.rows {
		if p.CompetitionID == competitionID {
			out = append(out, f.joined(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Points, out[j].Points
		switch {
		case a == nil && b != nil:
			return true
		case a != nil && b == nil:
			return false
		case a != nil && b != nil && *a != *b:
			return *a < *b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *FakeParticipantRepo) UpdatePoints(ctx context.Context, db bun.IDB, participantID int64, points int) error {
	f.record("UpdatePoints")
	if f.UpdatePointsFunc != nil {
		return f.UpdatePointsFunc(ctx, db, participantID, points)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[participantID]
	if !ok {
		return persistence.ErrNoRowsAffected
	}
	v := points
	p.Points = &v
	return nil
}

func (f *FakeParticipantRepo) GetByID(ctx context.Context, db bun.IDB, participantID int64) (*participantdb.ParticipantRow, error) {
	f.record("GetByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[participantID]
	if !ok {
		return nil, participantdb.ErrNotFound
	}
	return f.joined(p), nil
}

// ------------------------
// Fake Competition Repo
// ------------------------

// FakeCompetitionRepo only answers Exists; the other methods are unused here.
type FakeCompetitionRepo struct {
	Known      map[int64]bool
	ExistsFunc func(ctx context.Context, db bun.IDB, id int64) (bool, error)
}

func (f *FakeCompetitionRepo) List(context.Context, bun.IDB) ([]*competitiondb.CompetitionWithAuthor, error) {
	return nil, nil
}

func (f *FakeCompetitionRepo) GetByID(context.Context, bun.IDB, int64) (*competitiondb.CompetitionWithAuthor, error) {
	return nil, competitiondb.ErrNotFound
}

func (f *FakeCompetitionRepo) Insert(context.Context, bun.IDB, *competitiondb.Competition) error {
	return nil
}

func (f *FakeCompetitionRepo) Update(context.Context, bun.IDB, *competitiondb.Competition) error {
	return nil
}

func (f *FakeCompetitionRepo) Delete(context.Context, bun.IDB, int64) error { return nil }

func (f *FakeCompetitionRepo) Exists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	if f.ExistsFunc != nil {
		return f.ExistsFunc(ctx, db, id)
	}
	return f.Known[id], nil
}

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads []any
	Err      error
}

func (p *FakePublisher) Publish(_ context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return p.Err
}

func (p *FakePublisher) Close() error { return nil }

func (p *FakePublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

func (p *FakePublisher) Payloads() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.payloads...)
}
