package payroll

import "time"

// SalaryRecord is one computed salary-sheet row: unique per employee, payroll
// month and currency. Created once by the sheet generator; afterwards only a
// fixed set of fields may be patched, and gross/net are recomputed when a
// contributing figure changes.
type SalaryRecord struct {
	SalaryID     int64      `json:"salaryId"`
	EmployeeID   int        `json:"employeeId"`
	PayrollMonth time.Time  `json:"payrollMonth"`
	Month        string     `json:"month"`
	Currency     string     `json:"currency"`

	// Legacy composite join keys kept on the row: month abbreviation plus
	// employee id, and month abbreviation plus lower-cased full name. Old
	// sheet rows without ids are matched through the second one.
	MonthKey string `json:"monthKey"`
	SheetKey string `json:"sheetKey"`

	EmployeeName         string `json:"employeeName"`
	Email                string `json:"email,omitempty"`
	Department           string `json:"department,omitempty"`
	Status               string `json:"status,omitempty"`
	DesignationAtPayroll string `json:"designationAtPayroll,omitempty"`

	DateOfJoining *time.Time `json:"dateOfJoining,omitempty"`
	DateOfLeaving *time.Time `json:"dateOfLeaving,omitempty"`

	// Display-only renderings re-derived on read for rows missing them.
	DateOfJoiningDisplay string `json:"dateOfJoiningDisplay,omitempty"`
	DateOfLeavingDisplay string `json:"dateOfLeavingDisplay,omitempty"`

	WorkedDays           *float64 `json:"workedDays,omitempty"`
	RegularPay           *float64 `json:"regularPay,omitempty"`
	RevisedPay           *float64 `json:"revisedPay,omitempty"`
	ProratedPay          *float64 `json:"proratedPay,omitempty"`
	PerformanceBonus     *float64 `json:"performanceBonus,omitempty"`
	PaidOvertime         *float64 `json:"paidOvertime,omitempty"`
	Reimbursements       *float64 `json:"reimbursements,omitempty"`
	Other                *float64 `json:"other,omitempty"`
	PayableFromLastMonth *float64 `json:"payableFromLastMonth,omitempty"`
	GrossIncome          float64  `json:"grossIncome"`
	Deductions           *float64 `json:"deductions,omitempty"`
	NetIncome            float64  `json:"netIncome"`
	LastMonthSalary      *float64 `json:"lastMonthSalary,omitempty"`

	SalaryStatus  string `json:"salaryStatus"`
	PayslipStatus string `json:"payslipStatus"`

	// Statutory components carried only by the PKR cohort.
	Statutory *StatutoryComponents `json:"statutory,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// StatutoryComponents are the PKR-only tax and benefit figures.
type StatutoryComponents struct {
	ProratedBasePay            *float64 `json:"proratedBasePay,omitempty"`
	ProratedMedicalAllowance   *float64 `json:"proratedMedicalAllowance,omitempty"`
	ProratedTransportAllowance *float64 `json:"proratedTransportAllowance,omitempty"`
	ProratedInflationAllowance *float64 `json:"proratedInflationAllowance,omitempty"`
	TaxableIncome              *float64 `json:"taxableIncome,omitempty"`
	TaxDeduction               *float64 `json:"taxDeduction,omitempty"`
	EOBI                       *float64 `json:"eobi,omitempty"`
	LoanDeduction              *float64 `json:"loanDeduction,omitempty"`
	Recoveries                 *float64 `json:"recoveries,omitempty"`
}

// SheetResult reports a generation run.
type SheetResult struct {
	Created int             `json:"created"`
	Skipped []SkippedMember `json:"skipped"`
}

// SkippedMember records an eligible member that did not get a row.
type SkippedMember struct {
	EmployeeID int    `json:"employeeId"`
	Name       string `json:"name,omitempty"`
	Reason     string `json:"reason"`
}

// Filters narrows a salary listing.
type Filters struct {
	Month    *time.Time
	Currency string
	Status   string
	Search   string
	Limit    int
	Offset   int
}

// Patch carries the enumerated partial-field updates allowed on a record.
// Nil pointers mean "leave untouched".
type Patch struct {
	PerformanceBonus     *float64 `json:"performanceBonus"`
	PaidOvertime         *float64 `json:"paidOvertime"`
	Reimbursements       *float64 `json:"reimbursements"`
	Other                *float64 `json:"other"`
	PayableFromLastMonth *float64 `json:"payableFromLastMonth"`
	Deductions           *float64 `json:"deductions"`
	SalaryStatus         *string  `json:"salaryStatus"`
	PayslipStatus        *string  `json:"payslipStatus"`
}

func (p Patch) empty() bool {
	return p.PerformanceBonus == nil &&
		p.PaidOvertime == nil &&
		p.Reimbursements == nil &&
		p.Other == nil &&
		p.PayableFromLastMonth == nil &&
		p.Deductions == nil &&
		p.SalaryStatus == nil &&
		p.PayslipStatus == nil
}

// touchesIncome reports whether the patch changes a gross contributor or
// deductions, which forces a gross/net recomputation.
func (p Patch) touchesIncome() bool {
	return p.PerformanceBonus != nil ||
		p.PaidOvertime != nil ||
		p.Reimbursements != nil ||
		p.Other != nil ||
		p.PayableFromLastMonth != nil ||
		p.Deductions != nil
}
