package competitionrouter

import (
	"net/http"

	authdomain "github.com/Black-And-White-Club/competitions/app/modules/auth/domain"
	competitionhandlers "github.com/Black-And-White-Club/competitions/app/modules/competition/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// Authorizer builds the middleware that enforces a capability.
type Authorizer interface {
	Require(c authdomain.Capability) func(http.Handler) http.Handler
}

// RegisterRoutes mounts the competition routes on r, which is expected to be
// the /competitions sub-router with the caller identity already resolved.
func RegisterRoutes(r chi.Router, h *competitionhandlers.CompetitionHandlers, gate Authorizer) {
	r.With(gate.Require(authdomain.CapabilityParticipant)).Get("/", h.HandleList)

	r.Group(func(r chi.Router) {
		r.Use(gate.Require(authdomain.CapabilityAdministrator))
		r.Get("/add", h.HandleAddForm)
		r.Post("/add", h.HandleCreate)
		r.Get("/edit/{id}", h.HandleEditForm)
		r.Post("/edit", h.HandleEdit)
		r.Get("/delete/{id}", h.HandleDelete)
	})
}
