package hr

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hrms/internal/domain/record"
	"hrms/internal/platform/docstore"
)

func newTestStore() *Store {
	return NewStore(docstore.NewMemory())
}

func testUser(id, email string) StoredUser {
	return StoredUser{
		User: User{
			ID:        id,
			Email:     email,
			FullName:  "Test User",
			Role:      RoleEmployee,
			CreatedAt: time.Now().UTC(),
		},
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
	}
}

func TestRegisterUserAndLookup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	if err := s.RegisterUser(ctx, testUser("u1", "a@x.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	byEmail, err := s.UserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if byEmail.ID != "u1" || byEmail.PasswordHash == "" {
		t.Fatalf("unexpected stored user: %+v", byEmail)
	}

	byID, err := s.UserByID(ctx, "u1")
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if byID.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", byID)
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	if err := s.RegisterUser(ctx, testUser("u1", "a@x.com")); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := s.RegisterUser(ctx, testUser("u2", "a@x.com"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

// The email check and the insert are two separate store calls. When both
// registrations pass the check before either inserts, both succeed. This
// pins the race as known behavior rather than assuming atomicity.
func TestRegisterUserRaceIsKnown(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	// both callers observe a free email
	for _, id := range []string{"u1", "u2"} {
		if _, err := s.UserByEmail(ctx, "a@x.com"); !errors.Is(err, record.ErrNotFound) {
			t.Fatalf("precondition for %s: %v", id, err)
		}
	}
	// both inserts go through
	for _, id := range []string{"u1", "u2"} {
		if err := users.Create(ctx, s.DB, testUser(id, "a@x.com")); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	all, err := users.List(ctx, s.DB, docstore.Filter{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d users, want the documented duplicate pair", len(all))
	}
}

func TestSetUserMFA(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	if err := s.RegisterUser(ctx, testUser("u1", "a@x.com")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := s.SetUserMFA(ctx, "u1", true, "SECRET"); err != nil {
		t.Fatalf("set mfa: %v", err)
	}

	stored, err := s.StoredUserByID(ctx, "u1")
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if !stored.MFAEnabled || stored.MFASecret != "SECRET" {
		t.Fatalf("mfa not persisted: %+v", stored)
	}
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	hired := time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC)
	employee := Employee{
		ID:             "e1",
		UserID:         "u1",
		EmployeeNumber: "EMP-001",
		Position:       "Engineer",
		HireDate:       hired,
		Salary:         1000,
		Benefits:       []string{},
		Status:         EmployeeStatusActive,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.CreateEmployee(ctx, employee); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := s.UpdateEmployee(ctx, "e1", EmployeeUpdate{
		UserID:         "u1",
		EmployeeNumber: "EMP-001",
		Position:       "Senior Engineer",
		HireDate:       hired,
		Salary:         1200,
		Benefits:       []string{"health"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Position != "Senior Engineer" || updated.Salary != 1200 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Status != EmployeeStatusActive {
		t.Fatalf("status clobbered: %q", updated.Status)
	}
	if !updated.CreatedAt.Equal(employee.CreatedAt) {
		t.Fatal("created_at clobbered")
	}

	_, err = s.UpdateEmployee(ctx, "missing", EmployeeUpdate{})
	if !errors.Is(err, record.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestEmployeeForUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	if _, err := s.EmployeeForUser(ctx, "u1"); !errors.Is(err, record.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	employee := Employee{ID: "e1", UserID: "u1", HireDate: time.Now().UTC(), CreatedAt: time.Now().UTC(), Benefits: []string{}, Status: EmployeeStatusActive}
	if err := s.CreateEmployee(ctx, employee); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := s.EmployeeForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if found.ID != "e1" {
		t.Fatalf("wrong employee: %+v", found)
	}
}

func TestDecideLeaveRequest(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	request := LeaveRequest{
		ID:         "l1",
		EmployeeID: "e1",
		LeaveType:  "vacation",
		StartDate:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
		Reason:     "summer",
		Status:     LeaveStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.CreateLeaveRequest(ctx, request); err != nil {
		t.Fatalf("create: %v", err)
	}

	decided, err := s.DecideLeaveRequest(ctx, "l1", LeaveStatusApproved, "mgr-1")
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != LeaveStatusApproved || decided.ApprovedBy != "mgr-1" {
		t.Fatalf("decision not recorded: %+v", decided)
	}
	if !decided.StartDate.Equal(request.StartDate) || !decided.EndDate.Equal(request.EndDate) {
		t.Fatalf("dates changed across update: %+v", decided)
	}

	_, err = s.DecideLeaveRequest(ctx, "missing", LeaveStatusApproved, "mgr-1")
	if !errors.Is(err, record.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	all, err := s.ListLeaveRequests(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("missing-id decide must not create records, have %d", len(all))
	}
}

func TestEmployeeScopedLists(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	for i, employeeID := range []string{"e1", "e1", "e2"} {
		review := PerformanceReview{ID: fmt.Sprintf("r%d", i), EmployeeID: employeeID, ReviewerID: "m1", Rating: 4, CreatedAt: time.Now().UTC()}
		if err := s.CreateReview(ctx, review); err != nil {
			t.Fatalf("create review: %v", err)
		}
		pay := PayrollRecord{ID: fmt.Sprintf("p%d", i), EmployeeID: employeeID, PayPeriod: "2025-06", PaymentDate: time.Now().UTC(), Status: PayrollStatusPending, CreatedAt: time.Now().UTC()}
		if err := s.CreatePayrollRecord(ctx, pay); err != nil {
			t.Fatalf("create payroll: %v", err)
		}
	}

	reviews, err := s.ReviewsForEmployee(ctx, "e1")
	if err != nil {
		t.Fatalf("reviews: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("got %d reviews, want 2", len(reviews))
	}

	pay, err := s.PayrollForEmployee(ctx, "e2")
	if err != nil {
		t.Fatalf("payroll: %v", err)
	}
	if len(pay) != 1 {
		t.Fatalf("got %d payroll records, want 1", len(pay))
	}
}
