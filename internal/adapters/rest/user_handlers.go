package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
	usecases_port "home-finder-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// UserHandler serves the user management endpoints.
type UserHandler struct {
	listUC   usecases_port.ListUsersUseCasePort
	createUC usecases_port.CreateUserUseCasePort
	getUC    usecases_port.GetUserUseCasePort
	updateUC usecases_port.UpdateUserUseCasePort
	deleteUC usecases_port.DeleteUserUseCasePort
}

func NewUserHandler(
	listUC usecases_port.ListUsersUseCasePort,
	createUC usecases_port.CreateUserUseCasePort,
	getUC usecases_port.GetUserUseCasePort,
	updateUC usecases_port.UpdateUserUseCasePort,
	deleteUC usecases_port.DeleteUserUseCasePort,
) *UserHandler {
	return &UserHandler{
		listUC:   listUC,
		createUC: createUC,
		getUC:    getUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// ListUsers handles GET /api/v1/users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListUsers"})

	limit, offset, err := GetLimitAndOffset(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	filters := domain.UserFilters{
		Email:     r.URL.Query().Get("email"),
		FirstName: r.URL.Query().Get("firstName"),
		LastName:  r.URL.Query().Get("lastName"),
		SortBy:    r.URL.Query().Get("sortBy"),
		SortOrder: r.URL.Query().Get("sortOrder"),
	}

	users, total, err := h.listUC.Execute(r.Context(), filters, limit, offset)
	if err != nil {
		logger.Error("List users use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	response := PaginatedUsersResponse{
		Users: make([]UserResponse, len(users)),
		Total: total,
	}
	for i, u := range users {
		response.Users[i] = toUserResponse(u)
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// CreateUser handles POST /api/v1/users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateUser"})

	var reqDTO CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body.", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"clerk_id": reqDTO.ClerkID})
	handlerLogger.Info("Processing request to create user", nil)

	created, err := h.createUC.Execute(r.Context(), domain.NewUser{
		ClerkID:   reqDTO.ClerkID,
		Email:     reqDTO.Email,
		FirstName: reqDTO.FirstName,
		LastName:  reqDTO.LastName,
	})
	if err != nil {
		handlerLogger.Error("Create user use case failed", err, nil)
		WriteJSONError(w, statusForError(err), messageForError(err, "Failed to create user"))
		return
	}

	handlerLogger.Info("User created", port.Fields{"user_id": created.ID})
	RespondWithJSON(w, http.StatusCreated, toUserResponse(*created))
}

// GetUserByID handles GET /api/v1/users/{userID}.
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserByID"})

	id, err := userIDFromURL(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := h.getUC.ByID(r.Context(), id)
	if err != nil {
		logger.Error("Get user use case failed", err, port.Fields{"user_id": id})
		WriteJSONError(w, statusForError(err), messageForError(err, "Failed to get user"))
		return
	}
	RespondWithJSON(w, http.StatusOK, toUserResponse(*user))
}

// GetUserByClerkID handles GET /api/v1/users/clerk/{clerkID}.
func (h *UserHandler) GetUserByClerkID(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserByClerkID"})

	clerkID := chi.URLParam(r, "clerkID")
	if clerkID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Invalid clerk id")
		return
	}

	user, err := h.getUC.ByClerkID(r.Context(), clerkID)
	if err != nil {
		logger.Error("Get user use case failed", err, port.Fields{"clerk_id": clerkID})
		WriteJSONError(w, statusForError(err), messageForError(err, "Failed to get user"))
		return
	}
	RespondWithJSON(w, http.StatusOK, toUserResponse(*user))
}

// GetUserByEmail handles GET /api/v1/users/email/{email}.
func (h *UserHandler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserByEmail"})

	email := chi.URLParam(r, "email")
	if email == "" {
		WriteJSONError(w, http.StatusBadRequest, "Invalid email")
		return
	}

	user, err := h.getUC.ByEmail(r.Context(), email)
	if err != nil {
		logger.Error("Get user use case failed", err, port.Fields{"email": email})
		WriteJSONError(w, statusForError(err), messageForError(err, "Failed to get user"))
		return
	}
	RespondWithJSON(w, http.StatusOK, toUserResponse(*user))
}

// UpdateUser handles PUT /api/v1/users/{userID}.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateUser"})

	id, err := userIDFromURL(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var reqDTO UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body.", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"user_id": id})
	handlerLogger.Info("Processing request to update user", nil)

	updated, err := h.updateUC.Execute(r.Context(), id, domain.UserUpdate{
		Email:     reqDTO.Email,
		FirstName: reqDTO.FirstName,
		LastName:  reqDTO.LastName,
	})
	if err != nil {
		handlerLogger.Error("Update user use case failed", err, nil)
		WriteJSONError(w, statusForError(err), messageForError(err, "Failed to update user"))
		return
	}

	RespondWithJSON(w, http.StatusOK, toUserResponse(*updated))
}

// DeleteUser handles DELETE /api/v1/users/{userID}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteUser"})

	id, err := userIDFromURL(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"user_id": id})
	handlerLogger.Info("Processing request to delete user", nil)

	if err := h.deleteUC.Execute(r.Context(), id); err != nil {
		handlerLogger.Error("Delete user use case failed", err, nil)
		WriteJSONError(w, statusForError(err), messageForError(err, "Failed to delete user"))
		return
	}

	handlerLogger.Info("User deleted", nil)
	w.WriteHeader(http.StatusNoContent)
}

func userIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
}
