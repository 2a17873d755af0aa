package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/userhub/userhub/internal/api/shared"
	"github.com/userhub/userhub/internal/domain"
	"github.com/userhub/userhub/internal/service"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// UserHandler handles the /users HTTP surface.
type UserHandler struct {
	users     *service.UserService
	validator *validator.Validate
	logger    *slog.Logger
}

// NewUserHandler creates a new UserHandler backed by the given service.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: newValidator(),
		logger:    logger.With("component", "user_handler"),
	}
}

// newValidator builds the request validation engine with the custom
// notblank rule registered.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(fmt.Sprintf("failed to register notblank validation: %v", err))
	}
	return v
}

// notBlank fails for strings that are empty after trimming whitespace.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// List handles GET /users?pageSize=&page=.
// Listing never fails on page parameters: unparseable or out-of-range
// values fall back to defaults, and a page beyond the last one is an
// empty page.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	pageSize := queryInt(r, "pageSize", defaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	page := queryInt(r, "page", 0)
	if page < 0 {
		page = 0
	}

	result, err := h.users.ListUsers(r.Context(), pageSize, page)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewPageResponse(result))
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUserID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// Create handles POST /users. Validation rejects blank or malformed
// fields before the service is invoked. Answers 201 with a Location
// header pointing at the new record.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		WriteError(w, r, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/users/%s", user.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewUserResponse(user))
}

// Update handles PUT and PATCH /users with merge-patch semantics.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		WriteError(w, r, err)
		return
	}

	user, err := h.users.UpdateUser(r.Context(), req.ID, req.Email, req.Password)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUserID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// pathUserID extracts and parses the {id} path parameter.
func pathUserID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewResourceError(
			"InvalidUserID",
			fmt.Sprintf("The user ID %q is not a valid UUID.", raw),
			http.StatusBadRequest,
			err,
		)
	}
	return id, nil
}

// queryInt parses an integer query parameter, falling back to def when
// the parameter is absent or unparseable.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
