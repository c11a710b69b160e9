package hr

import (
	"context"
	"errors"

	"hrms/internal/domain/record"
	"hrms/internal/platform/docstore"
)

// ErrEmailTaken reports a registration against an email that already has an
// account.
var ErrEmailTaken = errors.New("email already registered")

var (
	users         = record.Kind[StoredUser]{Collection: "users", TimeFields: []string{"created_at"}}
	departments   = record.Kind[Department]{Collection: "departments", TimeFields: []string{"created_at"}}
	employees     = record.Kind[Employee]{Collection: "employees", TimeFields: []string{"created_at", "hire_date"}}
	leaveRequests = record.Kind[LeaveRequest]{Collection: "leave_requests", TimeFields: []string{"created_at", "start_date", "end_date"}}
	reviews       = record.Kind[PerformanceReview]{Collection: "performance_reviews", TimeFields: []string{"created_at"}}
	payroll       = record.Kind[PayrollRecord]{Collection: "payroll_records", TimeFields: []string{"created_at", "payment_date"}}
)

type Store struct {
	DB docstore.Store
}

func NewStore(db docstore.Store) *Store {
	return &Store{DB: db}
}

// RegisterUser persists a new account after checking the email is free.
// The check and the insert are separate store calls, so two concurrent
// registrations with the same email can both pass; the store places no
// uniqueness constraint on the field and the second write wins nothing.
func (s *Store) RegisterUser(ctx context.Context, u StoredUser) error {
	_, err := users.First(ctx, s.DB, docstore.Filter{"email": u.Email})
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, record.ErrNotFound) {
		return err
	}
	return users.Create(ctx, s.DB, u)
}

func (s *Store) UserByEmail(ctx context.Context, email string) (StoredUser, error) {
	return users.First(ctx, s.DB, docstore.Filter{"email": email})
}

func (s *Store) UserByID(ctx context.Context, id string) (User, error) {
	stored, err := users.Get(ctx, s.DB, id)
	if err != nil {
		return User{}, err
	}
	return stored.User, nil
}

func (s *Store) StoredUserByID(ctx context.Context, id string) (StoredUser, error) {
	return users.Get(ctx, s.DB, id)
}

func (s *Store) SetUserMFA(ctx context.Context, id string, enabled bool, secret string) error {
	return users.Update(ctx, s.DB, id, map[string]any{
		"mfa_enabled": enabled,
		"mfa_secret":  secret,
	})
}

func (s *Store) CreateDepartment(ctx context.Context, d Department) error {
	return departments.Create(ctx, s.DB, d)
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	return departments.List(ctx, s.DB, nil)
}

func (s *Store) CreateEmployee(ctx context.Context, e Employee) error {
	return employees.Create(ctx, s.DB, e)
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	return employees.List(ctx, s.DB, nil)
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	return employees.Get(ctx, s.DB, id)
}

// UpdateEmployee merges the full-replace payload into the stored record and
// returns the updated employee.
func (s *Store) UpdateEmployee(ctx context.Context, id string, patch EmployeeUpdate) (Employee, error) {
	if err := employees.Update(ctx, s.DB, id, patch); err != nil {
		return Employee{}, err
	}
	return employees.Get(ctx, s.DB, id)
}

// EmployeeForUser resolves the employee record linked to a user account.
// Not every account has one.
func (s *Store) EmployeeForUser(ctx context.Context, userID string) (Employee, error) {
	return employees.First(ctx, s.DB, docstore.Filter{"user_id": userID})
}

func (s *Store) CreateLeaveRequest(ctx context.Context, lr LeaveRequest) error {
	return leaveRequests.Create(ctx, s.DB, lr)
}

func (s *Store) ListLeaveRequests(ctx context.Context) ([]LeaveRequest, error) {
	return leaveRequests.List(ctx, s.DB, nil)
}

func (s *Store) LeaveForEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	return leaveRequests.List(ctx, s.DB, docstore.Filter{"employee_id": employeeID})
}

// DecideLeaveRequest records an approval or rejection together with who
// made the call, and returns the updated request.
func (s *Store) DecideLeaveRequest(ctx context.Context, id, status, approvedBy string) (LeaveRequest, error) {
	err := leaveRequests.Update(ctx, s.DB, id, map[string]any{
		"status":      status,
		"approved_by": approvedBy,
	})
	if err != nil {
		return LeaveRequest{}, err
	}
	return leaveRequests.Get(ctx, s.DB, id)
}

func (s *Store) CreateReview(ctx context.Context, r PerformanceReview) error {
	return reviews.Create(ctx, s.DB, r)
}

func (s *Store) ListReviews(ctx context.Context) ([]PerformanceReview, error) {
	return reviews.List(ctx, s.DB, nil)
}

func (s *Store) ReviewsForEmployee(ctx context.Context, employeeID string) ([]PerformanceReview, error) {
	return reviews.List(ctx, s.DB, docstore.Filter{"employee_id": employeeID})
}

func (s *Store) CreatePayrollRecord(ctx context.Context, p PayrollRecord) error {
	return payroll.Create(ctx, s.DB, p)
}

func (s *Store) ListPayrollRecords(ctx context.Context) ([]PayrollRecord, error) {
	return payroll.List(ctx, s.DB, nil)
}

func (s *Store) PayrollForEmployee(ctx context.Context, employeeID string) ([]PayrollRecord, error) {
	return payroll.List(ctx, s.DB, docstore.Filter{"employee_id": employeeID})
}

func (s *Store) GetPayrollRecord(ctx context.Context, id string) (PayrollRecord, error) {
	return payroll.Get(ctx, s.DB, id)
}
