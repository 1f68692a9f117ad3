package competition_integration_tests

import (
	"testing"
	"time"

	competitiondb "github.com/Black-And-White-Club/competitions/app/modules/competition/infrastructure/repositories"
	participantdb "github.com/Black-And-White-Club/competitions/app/modules/participant/infrastructure/repositories"
	"github.com/Black-And-White-Club/competitions/app/shared/persistence"
	"github.com/Black-And-White-Club/competitions/integration_tests/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestCompetitionRepository(t *testing.T) {
	env := testutils.NewTestEnvironment(t)
	repo := competitiondb.NewRepository(env.DB)

	insert := func(t *testing.T, name, applyTill string) *competitiondb.Competition {
		t.Helper()
		c := &competitiondb.Competition{Name: name, Description: "Annual contest", AuthorID: 1, ApplyTill: date(applyTill)}
		require.NoError(t, repo.Insert(env.Ctx, nil, c))
		return c
	}

	t.Run("insert then get joins author", func(t *testing.T) {
		env.Reset(t)
		env.SeedUser(t, 1, "Admin")

		c := insert(t, "Spring Cup", "2025-06-01")
		assert.Equal(t, int64(1), c.ID)
		assert.False(t, c.CreatedAt.IsZero())

		got, err := repo.GetByID(env.Ctx, nil, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Spring Cup", got.Name)
		assert.Equal(t, "Admin", got.AuthorName)
		assert.Equal(t, "2025-06-01", got.ApplyTill.Format("2006-01-02"))
	})

	t.Run("list orders by apply_till", func(t *testing.T) {
		env.Reset(t)
		env.SeedUser(t, 1, "Admin")
		insert(t, "Late", "2025-09-01")
		insert(t, "Early", "2025-03-01")
		insert(t, "Middle", "2025-06-01")

		rows, err := repo.List(env.Ctx, nil)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"Early", "Middle", "Late"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
	})

	t.Run("update and delete of a missing id report no rows", func(t *testing.T) {
		env.Reset(t)

		err := repo.Update(env.Ctx, nil, &competitiondb.Competition{ID: 99, Name: "Nope", Description: "Nothing", ApplyTill: date("2025-01-01")})
		assert.ErrorIs(t, err, persistence.ErrNoRowsAffected)

		err = repo.Delete(env.Ctx, nil, 99)
		assert.ErrorIs(t, err, persistence.ErrNoRowsAffected)

		_, err = repo.GetByID(env.Ctx, nil, 99)
		assert.ErrorIs(t, err, competitiondb.ErrNotFound)
	})

	t.Run("check constraints reject short names", func(t *testing.T) {
		env.Reset(t)
		env.SeedUser(t, 1, "Admin")

		err := repo.Insert(env.Ctx, nil, &competitiondb.Competition{Name: "ab", Description: "Annual contest", AuthorID: 1, ApplyTill: date("2025-06-01")})
		assert.Error(t, err)
	})

	t.Run("exists and cascading delete", func(t *testing.T) {
		env.Reset(t)
		env.SeedUser(t, 1, "Admin")
		env.SeedUser(t, 2, "Player")
		c := insert(t, "Spring Cup", "2025-06-01")

		exists, err := repo.Exists(env.Ctx, nil, c.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		participants := participantdb.NewRepository(env.DB)
		require.NoError(t, participants.Insert(env.Ctx, nil, &participantdb.Participant{CompetitionID: c.ID, UserID: 2}))

		require.NoError(t, repo.Delete(env.Ctx, nil, c.ID))

		exists, err = repo.Exists(env.Ctx, nil, c.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		rows, err := participants.ListAll(env.Ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
