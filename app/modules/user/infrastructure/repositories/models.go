package userdb

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the externally managed account referenced by competitions and
// participants. Only id and name are read by the service.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64     `bun:"id,pk" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
