package hr

import "time"

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHRAdmin  = "hr_admin"

	EmployeeStatusActive     = "active"
	EmployeeStatusOnLeave    = "on_leave"
	EmployeeStatusTerminated = "terminated"

	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"

	PayrollStatusPending   = "pending"
	PayrollStatusProcessed = "processed"
	PayrollStatusPaid      = "paid"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// StoredUser is the persisted form of a User. The credential fields never
// leave the store layer; handlers return the embedded User.
type StoredUser struct {
	User
	PasswordHash string `json:"password"`
	MFAEnabled   bool   `json:"mfa_enabled,omitempty"`
	MFASecret    string `json:"mfa_secret,omitempty"`
}

type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ManagerID   string    `json:"manager_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Employee struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	EmployeeNumber   string    `json:"employee_number"`
	DepartmentID     string    `json:"department_id,omitempty"`
	Position         string    `json:"position"`
	HireDate         time.Time `json:"hire_date"`
	Salary           float64   `json:"salary"`
	Benefits         []string  `json:"benefits"`
	Phone            string    `json:"phone,omitempty"`
	Address          string    `json:"address,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// EmployeeUpdate is the full-replace payload for an existing employee. Id,
// status and created_at are not client-replaceable. No omitempty here:
// every field is written on update, so clearing one actually clears it.
type EmployeeUpdate struct {
	UserID           string    `json:"user_id"`
	EmployeeNumber   string    `json:"employee_number"`
	DepartmentID     string    `json:"department_id"`
	Position         string    `json:"position"`
	HireDate         time.Time `json:"hire_date"`
	Salary           float64   `json:"salary"`
	Benefits         []string  `json:"benefits"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	EmergencyContact string    `json:"emergency_contact"`
}

type LeaveRequest struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	ApprovedBy string    `json:"approved_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type PerformanceReview struct {
	ID                  string    `json:"id"`
	EmployeeID          string    `json:"employee_id"`
	ReviewerID          string    `json:"reviewer_id"`
	ReviewPeriod        string    `json:"review_period"`
	Rating              float64   `json:"rating"`
	Strengths           string    `json:"strengths"`
	AreasForImprovement string    `json:"areas_for_improvement"`
	Goals               string    `json:"goals"`
	Comments            string    `json:"comments,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

type PayrollRecord struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	PayPeriod   string    `json:"pay_period"`
	GrossSalary float64   `json:"gross_salary"`
	Deductions  float64   `json:"deductions"`
	NetSalary   float64   `json:"net_salary"`
	PaymentDate time.Time `json:"payment_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
