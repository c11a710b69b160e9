package assistanthandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/assistant"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Service *assistant.Service
}

func NewHandler(service *assistant.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ai-chat", h.handleChat)
	r.Get("/ai-chat/history", h.handleHistory)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "Not authenticated")
		return
	}

	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Message == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "message is required")
		return
	}

	exchange, err := h.Service.Converse(r.Context(), user, payload.Message)
	if errors.Is(err, assistant.ErrUnavailable) {
		api.Fail(w, http.StatusInternalServerError, "assistant_unavailable", "AI chat error")
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "AI chat error")
		return
	}
	api.JSON(w, http.StatusOK, chatResponse{Response: exchange.Response, Timestamp: exchange.Timestamp})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "Not authenticated")
		return
	}

	exchanges, err := h.Service.History(r.Context(), user)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list chat history")
		return
	}
	api.JSON(w, http.StatusOK, exchanges)
}
