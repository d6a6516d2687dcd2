package rest

import (
	"encoding/json"
	"net/http"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/port/usecases_port"
)

type AuthHandler struct {
	registerUC   usecases_port.RegisterUserUseCase
	loginUC      usecases_port.LoginUserUseCase
	verifyTOTPUC usecases_port.VerifyTOTPUseCase
	twoFactorUC  usecases_port.ManageTwoFactorUseCase
	profileUC    usecases_port.GetProfileUseCase
}

func NewAuthHandler(
	registerUC usecases_port.RegisterUserUseCase,
	loginUC usecases_port.LoginUserUseCase,
	verifyTOTPUC usecases_port.VerifyTOTPUseCase,
	twoFactorUC usecases_port.ManageTwoFactorUseCase,
	profileUC usecases_port.GetProfileUseCase,
) *AuthHandler {
	return &AuthHandler{
		registerUC:   registerUC,
		loginUC:      loginUC,
		verifyTOTPUC: verifyTOTPUC,
		twoFactorUC:  twoFactorUC,
		profileUC:    profileUC,
	}
}

// Register обрабатывает POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.registerUC.Execute(r.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, toLoginResponse(result))
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.loginUC.Execute(r.Context(), payload.Email, payload.Password)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toLoginResponse(result))
}

// VerifyTOTP обрабатывает POST /auth/verify-totp (второй шаг входа)
func (h *AuthHandler) VerifyTOTP(w http.ResponseWriter, r *http.Request) {
	var payload verifyTOTPPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.verifyTOTPUC.Execute(r.Context(), payload.Email, payload.Code)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toLoginResponse(result))
}

// Profile обрабатывает GET /auth/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := contextkeys.ClaimsFromContext(r.Context())

	user, err := h.profileUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toUserResponse(*user))
}

// SetupTOTP обрабатывает POST /auth/totp/setup
func (h *AuthHandler) SetupTOTP(w http.ResponseWriter, r *http.Request) {
	claims := contextkeys.ClaimsFromContext(r.Context())

	secret, otpauthURL, err := h.twoFactorUC.Setup(r.Context(), claims.UserID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, totpSetupResponse{Secret: secret, OtpauthURL: otpauthURL})
}

// EnableTOTP обрабатывает POST /auth/totp/enable
func (h *AuthHandler) EnableTOTP(w http.ResponseWriter, r *http.Request) {
	var payload totpCodePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	if err := h.twoFactorUC.Enable(r.Context(), claims.UserID, payload.Code); err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "enabled"})
}

// DisableTOTP обрабатывает POST /auth/totp/disable
func (h *AuthHandler) DisableTOTP(w http.ResponseWriter, r *http.Request) {
	var payload totpCodePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims := contextkeys.ClaimsFromContext(r.Context())
	if err := h.twoFactorUC.Disable(r.Context(), claims.UserID, payload.Code); err != nil {
		respondWithError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
}
