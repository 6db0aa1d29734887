package intake

import (
	"context"
	"time"
)

type StoreAPI interface {
	ListNewHires(ctx context.Context, month time.Time, currency string) ([]NewHireRow, error)
	ListLeavers(ctx context.Context, month time.Time, currency string) ([]LeaverRow, error)
	ListIncrements(ctx context.Context, month time.Time, currency string) ([]IncrementRow, error)

	InsertNewHire(ctx context.Context, row *NewHireRow) error
	InsertLeaver(ctx context.Context, row *LeaverRow) error
	InsertIncrement(ctx context.Context, row *IncrementRow) error

	// Directory and history lookups used by the resolver. All of them answer
	// nil for "no match" and reserve errors for store failures.
	FindEmployeeID(ctx context.Context, fullName, email string) (*int, error)
	LatestGrossIncome(ctx context.Context, employeeID int, currency string) (*float64, error)
	NominalGrossSalary(ctx context.Context, employeeID int) (*float64, error)
	LatestCurrency(ctx context.Context, employeeID int) (*string, error)
}
