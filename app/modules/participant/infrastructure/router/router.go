package participantrouter

import (
	"net/http"

	authdomain "github.com/Black-And-White-Club/competitions/app/modules/auth/domain"
	participanthandlers "github.com/Black-And-White-Club/competitions/app/modules/participant/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// Authorizer builds the middleware that enforces a capability.
type Authorizer interface {
	Require(c authdomain.Capability) func(http.Handler) http.Handler
}

// RegisterRoutes mounts enrollment and scoring routes on the /competitions
// sub-router. Every route needs at least the participant capability.
func RegisterRoutes(r chi.Router, h *participanthandlers.ParticipantHandlers, gate Authorizer) {
	r.Group(func(r chi.Router) {
		r.Use(gate.Require(authdomain.CapabilityParticipant))
		r.Get("/participants", h.HandleList)
		r.Get("/login/{id}", h.HandleSignup)
		r.Get("/points/{id}", h.HandleLeaderboard)
		r.Post("/points/{id}", h.HandleScore)
		r.Get("/points/{id}/export.xlsx", h.HandleExport)
		r.Get("/points/{id}/chart.png", h.HandleChart)
	})
}
