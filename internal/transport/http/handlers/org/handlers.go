// Package orghandler serves the organizational records: departments and
// employees.
package orghandler

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
	r.Post("/departments", h.handleCreateDepartment)
	r.Get("/departments", h.handleListDepartments)
	r.Post("/employees", h.handleCreateEmployee)
	r.Get("/employees", h.handleListEmployees)
	r.Get("/employees/{employeeID}", h.handleGetEmployee)
	r.Put("/employees/{employeeID}", h.handleUpdateEmployee)
}

type departmentCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ManagerID   string `json:"manager_id"`
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload departmentCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}
	if payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "name is required")
		return
	}

	department := hr.Department{
		ID:          uuid.NewString(),
		Name:        payload.Name,
		Description: payload.Description,
		// manager_id is a weak reference; existence is not checked.
		ManagerID: payload.ManagerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Store.CreateDepartment(r.Context(), department); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to create department")
		return
	}
	api.JSON(w, http.StatusOK, department)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Store.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list departments")
		return
	}
	api.JSON(w, http.StatusOK, departments)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload hr.EmployeeUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}
	if payload.Benefits == nil {
		payload.Benefits = []string{}
	}

	employee := hr.Employee{
		ID:               uuid.NewString(),
		UserID:           payload.UserID,
		EmployeeNumber:   payload.EmployeeNumber,
		DepartmentID:     payload.DepartmentID,
		Position:         payload.Position,
		HireDate:         payload.HireDate,
		Salary:           payload.Salary,
		Benefits:         payload.Benefits,
		Phone:            payload.Phone,
		Address:          payload.Address,
		EmergencyContact: payload.EmergencyContact,
		Status:           hr.EmployeeStatusActive,
		CreatedAt:        time.Now().UTC(),
	}
	if err := h.Store.CreateEmployee(r.Context(), employee); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to create employee")
		return
	}
	api.JSON(w, http.StatusOK, employee)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list employees")
		return
	}
	api.JSON(w, http.StatusOK, employees)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, record.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "Employee not found")
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to fetch employee")
		return
	}
	api.JSON(w, http.StatusOK, employee)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload hr.EmployeeUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}
	if payload.Benefits == nil {
		payload.Benefits = []string{}
	}

	employee, err := h.Store.UpdateEmployee(r.Context(), chi.URLParam(r, "employeeID"), payload)
	if errors.Is(err, record.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "Employee not found")
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to update employee")
		return
	}
	api.JSON(w, http.StatusOK, employee)
}
