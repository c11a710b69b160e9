package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/hr"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Store    *hr.Store
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(store *hr.Store, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Store: store, Secret: secret, TokenTTL: tokenTTL}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFACode  string `json:"mfa_code"`
}

type tokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        hr.User `json:"user"`
}

type mfaActivateRequest struct {
	Code string `json:"code"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Email == "" || payload.Password == "" || payload.FullName == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email, password and full_name are required")
		return
	}
	if payload.Role == "" {
		payload.Role = hr.RoleEmployee
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to register")
		return
	}

	user := hr.User{
		ID:        uuid.NewString(),
		Email:     payload.Email,
		FullName:  payload.FullName,
		Role:      payload.Role,
		CreatedAt: time.Now().UTC(),
	}
	err = h.Store.RegisterUser(r.Context(), hr.StoredUser{User: user, PasswordHash: hash})
	if errors.Is(err, hr.ErrEmailTaken) {
		api.Fail(w, http.StatusConflict, "email_taken", "Email already registered")
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to register")
		return
	}

	h.respondWithToken(w, user)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}

	stored, err := h.Store.UserByEmail(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}
	if err := auth.CheckPassword(stored.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	if stored.MFAEnabled {
		if payload.MFACode == "" {
			api.Fail(w, http.StatusUnauthorized, "mfa_required", "MFA code required")
			return
		}
		if !auth.ValidateMFACode(payload.MFACode, stored.MFASecret) {
			api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "Invalid MFA code")
			return
		}
	}

	h.respondWithToken(w, stored.User)
}

// HandleMFASetup issues a fresh TOTP secret for the calling account. The
// second factor stays off until the code is confirmed via activate.
func (h *Handler) HandleMFASetup(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "Not authenticated")
		return
	}

	secret, url, err := auth.GenerateMFASecret(user.Email)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to set up MFA")
		return
	}
	if err := h.Store.SetUserMFA(r.Context(), user.ID, false, secret); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to set up MFA")
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{"secret": secret, "otpauth_url": url})
}

func (h *Handler) HandleMFAActivate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "Not authenticated")
		return
	}

	var payload mfaActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Code == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "code is required")
		return
	}

	stored, err := h.Store.StoredUserByID(r.Context(), user.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to activate MFA")
		return
	}
	if !auth.ValidateMFACode(payload.Code, stored.MFASecret) {
		api.Fail(w, http.StatusBadRequest, "mfa_invalid", "Invalid MFA code")
		return
	}
	if err := h.Store.SetUserMFA(r.Context(), user.ID, true, stored.MFASecret); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to activate MFA")
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{"status": "mfa_enabled"})
}

func (h *Handler) respondWithToken(w http.ResponseWriter, user hr.User) {
	token, err := auth.GenerateToken(h.Secret, user.ID, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token")
		return
	}
	api.JSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", User: user})
}
