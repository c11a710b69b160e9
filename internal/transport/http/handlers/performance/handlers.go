package performancehandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrms/internal/domain/hr"
	"hrms/internal/transport/http/api"
)

type Handler struct {
	Store *hr.Store
}

func NewHandler(store *hr.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/performance", h.handleCreate)
	r.Get("/performance", h.handleList)
	r.Get("/performance/employee/{employeeID}", h.handleListForEmployee)
}

type reviewCreate struct {
	EmployeeID          string  `json:"employee_id"`
	ReviewerID          string  `json:"reviewer_id"`
	ReviewPeriod        string  `json:"review_period"`
	Rating              float64 `json:"rating"`
	Strengths           string  `json:"strengths"`
	AreasForImprovement string  `json:"areas_for_improvement"`
	Goals               string  `json:"goals"`
	Comments            string  `json:"comments"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload reviewCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}

	review := hr.PerformanceReview{
		ID:                  uuid.NewString(),
		EmployeeID:          payload.EmployeeID,
		ReviewerID:          payload.ReviewerID,
		ReviewPeriod:        payload.ReviewPeriod,
		Rating:              payload.Rating,
		Strengths:           payload.Strengths,
		AreasForImprovement: payload.AreasForImprovement,
		Goals:               payload.Goals,
		Comments:            payload.Comments,
		CreatedAt:           time.Now().UTC(),
	}
	if err := h.Store.CreateReview(r.Context(), review); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to create performance review")
		return
	}
	api.JSON(w, http.StatusOK, review)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Store.ListReviews(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list performance reviews")
		return
	}
	api.JSON(w, http.StatusOK, reviews)
}

func (h *Handler) handleListForEmployee(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Store.ReviewsForEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list performance reviews")
		return
	}
	api.JSON(w, http.StatusOK, reviews)
}
