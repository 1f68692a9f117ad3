package competitionservice

import (
	competitiondb "github.com/Black-And-White-Club/competitions/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/competitions/app/shared/validation"
)

// Competition is the read model returned to callers.
type Competition struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AuthorID    int64  `json:"author_id"`
	AuthorName  string `json:"author_name"`
	ApplyTill   string `json:"apply_till"`
}

func toCompetition(c *competitiondb.CompetitionWithAuthor) Competition {
	return Competition{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		AuthorID:    c.AuthorID,
		AuthorName:  c.AuthorName,
		ApplyTill:   c.ApplyTill.Format(validation.DateLayout),
	}
}
