package intake

import (
	"context"
	"time"

	"payrolld/internal/resolve"
)

// Resolver backfills missing identifiers, currencies and prior-pay figures on
// intake rows. Resolution only ever fills fields that are empty and marks
// each filled field, so a listing can distinguish entered data from inferred
// data. All lookups are read-only.
type Resolver struct {
	store StoreAPI
}

func NewResolver(store StoreAPI) *Resolver {
	return &Resolver{store: store}
}

// ResolveIdentifier finds a directory identifier by exact full name or
// official email. Nil when nobody matches.
func (r *Resolver) ResolveIdentifier(ctx context.Context, fullName, email string) (*int, error) {
	return r.store.FindEmployeeID(ctx, fullName, email)
}

// ResolvePreviousPay answers the most recent gross income recorded for the
// employee in the given currency, falling back to the directory's nominal
// gross salary, nil when neither exists.
func (r *Resolver) ResolvePreviousPay(ctx context.Context, employeeID int, currency string) (*float64, error) {
	return resolve.FirstErr(
		func() (*float64, error) { return r.store.LatestGrossIncome(ctx, employeeID, currency) },
		func() (*float64, error) { return r.store.NominalGrossSalary(ctx, employeeID) },
	)
}

// ResolveLatestCurrency answers the currency of the employee's most recent
// salary record.
func (r *Resolver) ResolveLatestCurrency(ctx context.Context, employeeID int) (*string, error) {
	return r.store.LatestCurrency(ctx, employeeID)
}

// ResolveNewHireRow backfills the identifier on a new-hire row.
func (r *Resolver) ResolveNewHireRow(ctx context.Context, row *NewHireRow) error {
	if row.EmployeeID == nil {
		id, err := r.ResolveIdentifier(ctx, row.FullName, row.Email)
		if err != nil {
			return err
		}
		if id != nil {
			row.EmployeeID = id
			row.EmployeeIDBackfilled = true
		}
	}
	return nil
}

// ResolveLeaverRow backfills identifier, currency and last-drawn pay on a
// leaver row. Identifier resolution runs first: the other two depend on it.
func (r *Resolver) ResolveLeaverRow(ctx context.Context, row *LeaverRow) error {
	if row.EmployeeID == nil {
		id, err := r.ResolveIdentifier(ctx, row.FullName, row.Email)
		if err != nil {
			return err
		}
		if id != nil {
			row.EmployeeID = id
			row.EmployeeIDBackfilled = true
		}
	}
	if row.EmployeeID == nil {
		return nil
	}

	if row.Currency == "" {
		currency, err := r.ResolveLatestCurrency(ctx, *row.EmployeeID)
		if err != nil {
			return err
		}
		if currency != nil {
			row.Currency = *currency
			row.CurrencyBackfilled = true
		}
	}

	if row.LastPay == nil && row.Currency != "" {
		pay, err := r.ResolvePreviousPay(ctx, *row.EmployeeID, row.Currency)
		if err != nil {
			return err
		}
		if pay != nil {
			row.LastPay = pay
			row.LastPayBackfilled = true
		}
	}
	return nil
}

// ResolveIncrementRow backfills identifier and previous pay on an increment
// row.
func (r *Resolver) ResolveIncrementRow(ctx context.Context, row *IncrementRow) error {
	if row.EmployeeID == nil {
		id, err := r.ResolveIdentifier(ctx, row.FullName, row.Email)
		if err != nil {
			return err
		}
		if id != nil {
			row.EmployeeID = id
			row.EmployeeIDBackfilled = true
		}
	}
	if row.EmployeeID == nil {
		return nil
	}

	if row.PreviousPay == nil {
		pay, err := r.ResolvePreviousPay(ctx, *row.EmployeeID, row.Currency)
		if err != nil {
			return err
		}
		if pay != nil {
			row.PreviousPay = pay
			row.PreviousPayBackfilled = true
		}
	}
	return nil
}

// CreateNewHire resolves and stores a new-hire row. The row comes back with
// its id, timestamps and any backfilled fields filled in.
func (r *Resolver) CreateNewHire(ctx context.Context, row *NewHireRow) error {
	if err := r.ResolveNewHireRow(ctx, row); err != nil {
		return err
	}
	return r.store.InsertNewHire(ctx, row)
}

// CreateLeaver resolves and stores a leaver row.
func (r *Resolver) CreateLeaver(ctx context.Context, row *LeaverRow) error {
	if err := r.ResolveLeaverRow(ctx, row); err != nil {
		return err
	}
	return r.store.InsertLeaver(ctx, row)
}

// CreateIncrement resolves and stores an increment row.
func (r *Resolver) CreateIncrement(ctx context.Context, row *IncrementRow) error {
	if err := r.ResolveIncrementRow(ctx, row); err != nil {
		return err
	}
	return r.store.InsertIncrement(ctx, row)
}

// ListResolvedNewHires returns the month's new-hire rows with identifiers
// backfilled where possible.
func (r *Resolver) ListResolvedNewHires(ctx context.Context, month time.Time, currency string) ([]NewHireRow, error) {
	rows, err := r.store.ListNewHires(ctx, month, currency)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if err := r.ResolveNewHireRow(ctx, &rows[i]); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// ListResolvedLeavers returns the month's leaver rows fully backfilled.
func (r *Resolver) ListResolvedLeavers(ctx context.Context, month time.Time, currency string) ([]LeaverRow, error) {
	rows, err := r.store.ListLeavers(ctx, month, currency)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if err := r.ResolveLeaverRow(ctx, &rows[i]); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// ListResolvedIncrements returns the month's increment rows fully backfilled.
func (r *Resolver) ListResolvedIncrements(ctx context.Context, month time.Time, currency string) ([]IncrementRow, error) {
	rows, err := r.store.ListIncrements(ctx, month, currency)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if err := r.ResolveIncrementRow(ctx, &rows[i]); err != nil {
			return nil, err
		}
	}
	return rows, nil
}
