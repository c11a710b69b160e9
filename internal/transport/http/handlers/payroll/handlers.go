package payrollhandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

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
	r.Post("/payroll", h.handleCreate)
	r.Get("/payroll", h.handleList)
	r.Get("/payroll/employee/{employeeID}", h.handleListForEmployee)
	r.Get("/payroll/{payrollID}/payslip", h.handlePayslip)
}

type payrollCreate struct {
	EmployeeID  string    `json:"employee_id"`
	PayPeriod   string    `json:"pay_period"`
	GrossSalary float64   `json:"gross_salary"`
	Deductions  float64   `json:"deductions"`
	NetSalary   float64   `json:"net_salary"`
	PaymentDate time.Time `json:"payment_date"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload payrollCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}

	rec := hr.PayrollRecord{
		ID:          uuid.NewString(),
		EmployeeID:  payload.EmployeeID,
		PayPeriod:   payload.PayPeriod,
		GrossSalary: payload.GrossSalary,
		Deductions:  payload.Deductions,
		// net is stored as sent, not recomputed from gross - deductions
		NetSalary:   payload.NetSalary,
		PaymentDate: payload.PaymentDate,
		Status:      hr.PayrollStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Store.CreatePayrollRecord(r.Context(), rec); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to create payroll record")
		return
	}
	api.JSON(w, http.StatusOK, rec)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListPayrollRecords(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list payroll records")
		return
	}
	api.JSON(w, http.StatusOK, records)
}

func (h *Handler) handleListForEmployee(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.PayrollForEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list payroll records")
		return
	}
	api.JSON(w, http.StatusOK, records)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.GetPayrollRecord(r.Context(), chi.URLParam(r, "payrollID"))
	if errors.Is(err, record.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "Payroll record not found")
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to fetch payroll record")
		return
	}

	// Position on the slip comes from the employee record when it still
	// exists; the weak reference may point at nothing.
	position := ""
	if employee, err := h.Store.GetEmployee(r.Context(), rec.EmployeeID); err == nil {
		position = employee.Position
	}

	payslip, err := buildPayslip(rec, position)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to render payslip")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%s.pdf", rec.ID))
	_, _ = w.Write(payslip)
}

func buildPayslip(rec hr.PayrollRecord, position string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", rec.EmployeeID))
	pdf.Ln(7)
	if position != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Position: %s", position))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Pay period: %s", rec.PayPeriod))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %.2f", rec.GrossSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %.2f", rec.Deductions))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %.2f", rec.NetSalary))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Payment date: %s", rec.PaymentDate.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", rec.Status))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
