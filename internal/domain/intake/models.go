package intake

import "time"

// Intake rows are raw, loosely linked inputs keyed by payroll month and
// currency. Identifiers and prior-pay figures are often missing at creation;
// the resolver backfills them before the rows are merged into a sheet, and
// every backfilled field carries a flag so listings can show what was
// inferred versus entered.

type NewHireRow struct {
	ID           int64      `json:"id"`
	Month        time.Time  `json:"month"`
	Currency     string     `json:"currency"`
	EmployeeID   *int       `json:"employeeId,omitempty"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email,omitempty"`
	AgreedPay    *float64   `json:"agreedPay,omitempty"`
	JoiningDate  *time.Time `json:"joiningDate,omitempty"`
	Designation  string     `json:"designation,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`

	EmployeeIDBackfilled bool `json:"employeeIdBackfilled"`
}

type LeaverRow struct {
	ID          int64      `json:"id"`
	Month       time.Time  `json:"month"`
	Currency    string     `json:"currency"`
	EmployeeID  *int       `json:"employeeId,omitempty"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email,omitempty"`
	LeavingDate *time.Time `json:"leavingDate,omitempty"`
	LastPay     *float64   `json:"lastPay,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`

	EmployeeIDBackfilled bool `json:"employeeIdBackfilled"`
	CurrencyBackfilled   bool `json:"currencyBackfilled"`
	LastPayBackfilled    bool `json:"lastPayBackfilled"`
}

type IncrementRow struct {
	ID            int64      `json:"id"`
	Month         time.Time  `json:"month"`
	Currency      string     `json:"currency"`
	EmployeeID    *int       `json:"employeeId,omitempty"`
	FullName      string     `json:"fullName"`
	Email         string     `json:"email,omitempty"`
	NewPay        *float64   `json:"newPay,omitempty"`
	PreviousPay   *float64   `json:"previousPay,omitempty"`
	EffectiveDate *time.Time `json:"effectiveDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`

	EmployeeIDBackfilled  bool `json:"employeeIdBackfilled"`
	PreviousPayBackfilled bool `json:"previousPayBackfilled"`
}
