// AngelaMos | 2026
// handler.go

package user

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

// RegisterRoutes mounts the user directory. Every route is Master-only.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, masterOnly, idempotency func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(masterOnly)
		r.Use(idempotency)

		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Delete("/{username}", h.DeleteUser)
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, UserListResponse{Users: ToUserResponseList(users)})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, core.DuplicateError("username"))
		case errors.Is(err, core.ErrValidation):
			core.BadRequest(w, err.Error())
		case errors.Is(err, core.ErrPersistence):
			core.JSONError(w, core.PersistenceAppError(err))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToUserResponse(u))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actingUsername := middleware.GetUsername(r.Context())
	username := chi.URLParam(r, "username")

	if err := h.service.Delete(r.Context(), actingUsername, username); err != nil {
		switch {
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "cannot delete your own account")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user")
		case errors.Is(err, core.ErrPersistence):
			core.JSONError(w, core.PersistenceAppError(err))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.NoContent(w)
}
