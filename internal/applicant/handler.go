// AngelaMos | 2026
// handler.go

package applicant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/onms-dev/crm-backend/internal/core"
	"github.com/onms-dev/crm-backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the applicant dataset. All routes require a login;
// write access beyond create is gated per-operation in the service, not
// here, because Normal users may still create.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, idempotency func(http.Handler) http.Handler,
) {
	r.Route("/applicants", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(idempotency)

		r.Get("/", h.ListApplicants)
		r.Post("/", h.CreateApplicant)
		r.Get("/{idNumber}", h.GetApplicant)
		r.Put("/{idNumber}", h.UpdateApplicant)
		r.Delete("/by-name/{name}", h.DeleteApplicantsByName)
	})
}

func (h *Handler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	role := middleware.GetRole(r.Context())

	applicants, err := h.service.List(r.Context(), username, role)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ApplicantListResponse{
		Applicants: ToApplicantResponseList(applicants),
	})
}

func (h *Handler) GetApplicant(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	role := middleware.GetRole(r.Context())
	idNumber := chi.URLParam(r, "idNumber")

	a, err := h.service.Get(r.Context(), username, role, idNumber)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "applicant")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "applicant is not assigned to you")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToApplicantResponse(a))
}

func (h *Handler) CreateApplicant(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	username := middleware.GetUsername(r.Context())

	a, err := h.service.Create(r.Context(), username, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrValidation):
			core.BadRequest(w, err.Error())
		case errors.Is(err, core.ErrPersistence):
			core.JSONError(w, core.PersistenceAppError(err))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToApplicantResponse(a))
}

func (h *Handler) UpdateApplicant(w http.ResponseWriter, r *http.Request) {
	var req UpdateApplicantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	username := middleware.GetUsername(r.Context())
	role := middleware.GetRole(r.Context())
	idNumber := chi.URLParam(r, "idNumber")

	a, err := h.service.Update(r.Context(), username, role, idNumber, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "applicant records are read-only for your role")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "applicant")
		case errors.Is(err, core.ErrValidation):
			core.BadRequest(w, err.Error())
		case errors.Is(err, core.ErrPersistence):
			core.JSONError(w, core.PersistenceAppError(err))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToApplicantResponse(a))
}

func (h *Handler) DeleteApplicantsByName(
	w http.ResponseWriter,
	r *http.Request,
) {
	role := middleware.GetRole(r.Context())
	name := chi.URLParam(r, "name")

	deleted, err := h.service.DeleteByName(r.Context(), role, name)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "only Master users may delete applicants")
		case errors.Is(err, core.ErrPersistence):
			core.JSONError(w, core.PersistenceAppError(err))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, DeleteByNameResponse{Deleted: deleted})
}
