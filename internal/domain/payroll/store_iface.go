package payroll

import (
	"context"
	"time"

	"payrolld/internal/domain/directory"
	"payrolld/internal/domain/intake"
)

type StoreAPI interface {
	// Eligibility inputs.
	ListActiveWorkers(ctx context.Context, joinedBy time.Time, currency string) ([]directory.Worker, error)
	ListLeavingWorkers(ctx context.Context, from, to time.Time, currency string) ([]directory.Worker, error)
	ExistingEmployeeIDs(ctx context.Context, month time.Time, currency string) (map[int]bool, error)
	MaxSalaryID(ctx context.Context) (int64, error)

	// Sheet persistence. InsertSalaryRecords is one batch: any failure rolls
	// the whole sheet back.
	InsertSalaryRecords(ctx context.Context, records []SalaryRecord) (int, error)

	// Read and patch paths.
	ListSalaries(ctx context.Context, f Filters) ([]SalaryRecord, error)
	CountSalaries(ctx context.Context, f Filters) (int, error)
	GetSalary(ctx context.Context, salaryID int64) (*SalaryRecord, error)
	UpdateSalary(ctx context.Context, rec *SalaryRecord) (int64, error)

	// Satellite benefit and tax figures for the PKR cohort, nil when absent.
	EOBIContribution(ctx context.Context, employeeID int, month time.Time) (*float64, error)
	TaxDeduction(ctx context.Context, employeeID int, month time.Time) (*float64, error)
}

// IntakeAPI is the slice of the intake resolver the generator depends on.
type IntakeAPI interface {
	ListResolvedNewHires(ctx context.Context, month time.Time, currency string) ([]intake.NewHireRow, error)
	ListResolvedIncrements(ctx context.Context, month time.Time, currency string) ([]intake.IncrementRow, error)
	ResolvePreviousPay(ctx context.Context, employeeID int, currency string) (*float64, error)
}
