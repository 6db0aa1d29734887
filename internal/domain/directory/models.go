package directory

import "time"

// Worker is the authoritative identity record for a person. It is maintained
// by the HR-facing side of the system; the payroll engine only reads it.
type Worker struct {
	EmployeeID    int        `json:"employeeId"`
	FullName      string     `json:"fullName"`
	Department    string     `json:"department,omitempty"`
	Designation   string     `json:"designation,omitempty"`
	Status        string     `json:"status"`
	Email         string     `json:"email,omitempty"`
	PersonalEmail string     `json:"personalEmail,omitempty"`
	JoiningDate   *time.Time `json:"joiningDate,omitempty"`
	LeavingDate   *time.Time `json:"leavingDate,omitempty"`
	ProbationEnd  *time.Time `json:"probationEnd,omitempty"`
	GrossSalary   *float64   `json:"grossSalary,omitempty"`
	Currency      string     `json:"currency,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

const (
	StatusActive     = "Active"
	StatusResigned   = "Resigned"
	StatusTerminated = "Terminated"
)
