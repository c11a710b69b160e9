package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrms/internal/domain/hr"
	"hrms/internal/domain/record"
	"hrms/internal/transport/http/api"
)

type Handler struct {
	Store *hr.Store
}

func NewHandler(store *hr.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/leave", h.handleCreate)
	r.Get("/leave", h.handleList)
	r.Put("/leave/{leaveID}/approve", h.handleApprove)
}

type leaveCreate struct {
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Reason     string    `json:"reason"`
}

type leaveDecision struct {
	Status     string `json:"status"`
	ApprovedBy string `json:"approved_by"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload leaveCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}

	request := hr.LeaveRequest{
		ID:         uuid.NewString(),
		EmployeeID: payload.EmployeeID,
		LeaveType:  payload.LeaveType,
		StartDate:  payload.StartDate,
		EndDate:    payload.EndDate,
		Reason:     payload.Reason,
		Status:     hr.LeaveStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.Store.CreateLeaveRequest(r.Context(), request); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to create leave request")
		return
	}
	api.JSON(w, http.StatusOK, request)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.ListLeaveRequests(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list leave requests")
		return
	}
	api.JSON(w, http.StatusOK, requests)
}

// handleApprove records the decision and who made it. Any authenticated
// caller may decide any request; there is no role gate on this route.
func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	var payload leaveDecision
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}

	request, err := h.Store.DecideLeaveRequest(r.Context(), chi.URLParam(r, "leaveID"), payload.Status, payload.ApprovedBy)
	if errors.Is(err, record.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "Leave request not found")
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to update leave request")
		return
	}
	api.JSON(w, http.StatusOK, request)
}
