package participanthandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	authdomain "github.com/Black-And-White-Club/competitions/app/modules/auth/domain"
	participantservice "github.com/Black-And-White-Club/competitions/app/modules/participant/application"
	"github.com/Black-And-White-Club/competitions/app/observability/attr"
	"github.com/Black-And-White-Club/competitions/app/shared/apperr"
	"github.com/Black-And-White-Club/competitions/app/shared/outcome"
	"github.com/Black-And-White-Club/competitions/app/shared/request"
	"github.com/go-chi/chi/v5"
)

// ListPath is where a recorded score redirects.
const ListPath = "/competitions"

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pngContentType  = "image/png"
)

// ParticipantHandlers serves the enrollment and scoring routes.
type ParticipantHandlers struct {
	service participantservice.Service
	logger  *slog.Logger
}

// NewParticipantHandlers creates the HTTP handlers for participants.
func NewParticipantHandlers(service participantservice.Service, logger *slog.Logger) *ParticipantHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParticipantHandlers{service: service, logger: logger}
}

// HandleList answers GET /competitions/participants.
func (h *ParticipantHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListParticipants(r.Context())
	if err != nil {
		outcome.WriteError(w, r, h.logger, err)
		return
	}
	outcome.JSON(w, http.StatusOK, outcome.Envelope{Items: items})
}

// HandleSignup answers GET /competitions/login/{id}.
func (h *ParticipantHandlers) HandleSignup(w http.ResponseWriter, r *http.Request) {
	identity := authdomain.IdentityFrom(r.Context())
	if identity == nil {
		outcome.WriteError(w, r, h.logger, apperr.ErrUnauthenticated)
		return
	}

	result, err := h.service.Signup(r.Context(), identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		outcome.WriteError(w, r, h.logger, err)
		return
	}

	env := outcome.Envelope{Item: result.Participant}
	switch result.Status {
	case participantservice.NewlyEnrolled:
		env.SignedUp = true
		outcome.JSON(w, http.StatusCreated, env)
	default:
		env.AlreadySignedUp = true
		outcome.JSON(w, http.StatusOK, env)
	}
}

// HandleLeaderboard answers GET /competitions/points/{id}.
func (h *ParticipantHandlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Leaderboard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		outcome.WriteError(w, r, h.logger, err)
		return
	}
	outcome.JSON(w, http.StatusOK, outcome.Envelope{Items: items})
}

// HandleScore answers POST /competitions/points/{id}.
func (h *ParticipantHandlers) HandleScore(w http.ResponseWriter, r *http.Request) {
	fields, err := request.Fields(w, r)
	if err != nil {
		outcome.WriteError(w, r, h.logger, err)
		return
	}

	update := participantservice.ScoreUpdate{
		PathID:   chi.URLParam(r, "id"),
		BodyID:   fields["participant_id"],
		RawScore: fields["score"],
	}
	if _, err := h.service.UpdateScore(r.Context(), update); err != nil {
		outcome.WriteError(w, r, h.logger, err)
		return
	}
	outcome.Redirect(w, r, ListPath)
}

// HandleExport answers GET /competitions/points/{id}/export.xlsx.
func (h *ParticipantHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, err := h.service.ExportLeaderboardXLSX(r.Context(), id)
	if err != nil {
		outcome.WriteError(w, r, h.logger, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard-`+id+`.xlsx"`)
	h.writeBinary(w, r, xlsxContentType, data)
}

// HandleChart answers GET /competitions/points/{id}/chart.png.
func (h *ParticipantHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.LeaderboardChartPNG(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		outcome.WriteError(w, r, h.logger, err)
		return
	}
	h.writeBinary(w, r, pngContentType, data)
}

func (h *ParticipantHandlers) writeBinary(w http.ResponseWriter, r *http.Request, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write response body", attr.Error(err))
	}
}
