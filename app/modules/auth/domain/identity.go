package authdomain

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/competitions/app/shared/apperr"
)

// Identity is the verified caller of a request.
type Identity struct {
	UserID     int64
	Name       string
	Capability Capability
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored in ctx, or nil.
func IdentityFrom(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

// Authorize checks that id may perform an operation requiring the given capability.
func Authorize(id *Identity, required Capability) error {
	if id == nil || id.UserID <= 0 {
		return apperr.ErrUnauthenticated
	}
	if !id.Capability.Satisfies(required) {
		return apperr.New(apperr.ErrForbidden, fmt.Sprintf("%s capability required", required))
	}
	return nil
}
