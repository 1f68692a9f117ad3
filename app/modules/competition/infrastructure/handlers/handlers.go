package competitionhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	authdomain "github.com/Black-And-White-Club/competitions/app/modules/auth/domain"
	competitionservice "github.com/Black-And-White-Club/competitions/app/modules/competition/application"
	"github.com/Black-And-White-Club/competitions/app/shared/apperr"
	"github.com/Black-And-White-Club/competitions/app/shared/outcome"
	"github.com/Black-And-White-Club/competitions/app/shared/request"
	"github.com/Black-And-White-Club/competitions/app/shared/validation"
	"github.com/go-chi/chi/v5"
)

// ListPath is where successful edits and deletes redirect.
const ListPath = "/competitions"

// CompetitionHandlers serves the competition routes.
type CompetitionHandlers struct {
	service competitionservice.Service
	logger  *slog.Logger
}

// NewCompetitionHandlers creates the HTTP handlers for competitions.
func NewCompetitionHandlers(service competitionservice.Service, logger *slog.Logger) *CompetitionHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompetitionHandlers{service: service, logger: logger}
}

// HandleList answers GET /competitions.
func (h *CompetitionHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		outcome.WriteError(w, r, h.logger, err)
		return
	}
	outcome.JSON(w, http.StatusOK, outcome.Envelope{Items: items})
}

// HandleAddForm answers GET /competitions/add.
func (h *CompetitionHandlers) HandleAddForm(w http.ResponseWriter, r *http.Request) {
	outcome.JSON(w, http.StatusOK, outcome.Envelope{DisplayForm: true})
}

// HandleCreate answers POST /competitions/add.
func (h *CompetitionHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity := authdomain.IdentityFrom(r.Context())
	if identity == nil {
		outcome.WriteError(w, r, h.logger, apperr.ErrUnauthenticated)
		return
	}

	fields, err := request.Fields(w, r)
	if err != nil {
		h.writeFormError(w, r, err)
		return
	}

	created, err := h.service.Create(r.Context(), identity.UserID, competitionInput(fields))
	if err != nil {
		h.writeFormError(w, r, err)
		return
	}
	outcome.JSON(w, http.StatusCreated, outcome.Envelope{Success: true, Item: created})
}

// HandleEditForm answers GET /competitions/edit/{id}.
func (h *CompetitionHandlers) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	competition, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		outcome.WriteError(w, r, h.logger, err)
		return
	}
	outcome.JSON(w, http.StatusOK, outcome.Envelope{DisplayForm: true, Item: competition})
}

// HandleEdit answers POST /competitions/edit. The id travels in the body.
func (h *CompetitionHandlers) HandleEdit(w http.ResponseWriter, r *http.Request) {
	fields, err := request.Fields(w, r)
	if err != nil {
		h.writeFormError(w, r, err)
		return
	}

	if _, err := h.service.Update(r.Context(), fields["id"], competitionInput(fields)); err != nil {
		h.writeFormError(w, r, err)
		return
	}
	outcome.Redirect(w, r, ListPath)
}

// HandleDelete answers GET /competitions/delete/{id}.
func (h *CompetitionHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		outcome.WriteError(w, r, h.logger, err)
		return
	}
	outcome.Redirect(w, r, ListPath)
}

// writeFormError keeps the form on screen after a validation failure.
func (h *CompetitionHandlers) writeFormError(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, apperr.ErrValidation) {
		outcome.WriteError(w, r, h.logger, err)
		return
	}
	status, env := outcome.FromError(err)
	env.DisplayForm = true
	outcome.JSON(w, status, env)
}

func competitionInput(fields map[string]string) validation.CompetitionInput {
	return validation.CompetitionInput{
		Name:        fields["name"],
		Description: fields["description"],
		ApplyTill:   fields["apply_till"],
	}
}
