package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/contracts"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type UserHandler struct {
	listUC   usecases_port.ListUsersUseCase
	createUC usecases_port.CreateUserUseCase
	updateUC usecases_port.UpdateUserUseCase
	deleteUC usecases_port.DeleteUserUseCase
}

func NewUserHandler(
	listUC usecases_port.ListUsersUseCase,
	createUC usecases_port.CreateUserUseCase,
	updateUC usecases_port.UpdateUserUseCase,
	deleteUC usecases_port.DeleteUserUseCase,
) *UserHandler {
	return &UserHandler{
		listUC:   listUC,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// ListUsers обрабатывает GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.listUC.Execute(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}

	response := make([]userResponse, 0, len(users))
	for _, user := range users {
		response = append(response, toUserResponse(user))
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// CreateUser обрабатывает POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var payload createUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	user, err := h.createUC.Execute(r.Context(), payload.Email, payload.Password, payload.Name, payload.Role, *claims)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, toUserResponse(*user))
}

// UpdateUser обрабатывает PUT /users/{userID}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	// Схема отсекает посторонние ключи и кривые номера слотов
	if err := contracts.Validate(contracts.SchemaUserUpdate, body); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload updateUserPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := domain.UserUpdate{
		Role:      payload.Role,
		IsVisible: payload.IsVisible,
	}
	if len(payload.VisibleAttributes) > 0 {
		attrs, err := domain.ValidateAttributeVisibility(payload.VisibleAttributes)
		if err != nil {
			respondWithError(w, err)
			return
		}
		update.VisibleAttributes = attrs
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	user, err := h.updateUC.Execute(r.Context(), id, update, *claims)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toUserResponse(*user))
}

// DeleteUser обрабатывает DELETE /users/{userID}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	if err := h.deleteUC.Execute(r.Context(), id, *claims); err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
