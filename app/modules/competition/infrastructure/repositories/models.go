package competitiondb

import (
	"time"

	"github.com/uptrace/bun"
)

// Competition is a row of the competitions table.
type Competition struct {
	bun.BaseModel `bun:"table:competitions,alias:c"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Description   string    `bun:"description,notnull" json:"description"`
	AuthorID      int64     `bun:"author_id,notnull" json:"author_id"`
	ApplyTill     time.Time `bun:"apply_till,type:date,notnull" json:"apply_till"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// CompetitionWithAuthor is a competition joined with its author's name.
type CompetitionWithAuthor struct {
	Competition `bun:",extend"`
	AuthorName  string `bun:"author_name,scanonly" json:"author_name"`
}
