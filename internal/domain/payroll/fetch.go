package payroll

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"payrolld/internal/dates"
	"payrolld/internal/domain/directory"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// FetchSalaries lists salary records with the requested filters, fetching
// rows and total count jointly. Returned records are enriched from the
// directory index and get their display dates re-derived; enrichment is
// additive and never overwrites a stored value.
func (s *Service) FetchSalaries(ctx context.Context, f Filters) ([]SalaryRecord, int, error) {
	if f.Limit <= 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var (
		records []SalaryRecord
		total   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.store.ListSalaries(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.store.CountSalaries(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	idx := s.cache.Index(ctx)
	for i := range records {
		s.enrich(ctx, &records[i], idx)
	}
	return records, total, nil
}

// GetSalary fetches one record by id, enriched the same way as listings.
func (s *Service) GetSalary(ctx context.Context, salaryID int64) (*SalaryRecord, error) {
	rec, err := s.store.GetSalary(ctx, salaryID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	s.enrich(ctx, rec, s.cache.Index(ctx))
	return rec, nil
}

// enrich backfills empty display fields on a record from the directory index
// and formats its display dates. The record's own identifier is never
// touched, and present values always win over directory values.
func (s *Service) enrich(ctx context.Context, rec *SalaryRecord, idx *directory.Index) {
	directJoin := rec.EmployeeName != "" && rec.Department != "" && rec.Status != ""
	if !directJoin {
		name := rec.EmployeeName
		if name == "" {
			name = nameFromSheetKey(rec.SheetKey)
		}
		if w := idx.Match(rec.EmployeeID, rec.Email, "", name); w != nil {
			if rec.EmployeeName == "" {
				rec.EmployeeName = w.FullName
			}
			if rec.Department == "" {
				rec.Department = w.Department
			}
			if rec.Status == "" {
				rec.Status = w.Status
			}
			if rec.Email == "" {
				rec.Email = w.Email
			}
			if rec.DesignationAtPayroll == "" {
				rec.DesignationAtPayroll = w.Designation
			}
			if rec.DateOfJoining == nil {
				rec.DateOfJoining = w.JoiningDate
			}
			if rec.DateOfLeaving == nil {
				rec.DateOfLeaving = w.LeavingDate
			}
		}
	}

	if rec.DateOfJoining != nil && rec.DateOfJoiningDisplay == "" {
		rec.DateOfJoiningDisplay = dates.FormatDisplay(*rec.DateOfJoining)
	}
	if rec.DateOfLeaving != nil && rec.DateOfLeavingDisplay == "" {
		rec.DateOfLeavingDisplay = dates.FormatDisplay(*rec.DateOfLeaving)
	}
	if rec.Month == "" {
		rec.Month = rec.PayrollMonth.Format("January 2006")
	}

	// PKR rows missing benefit or tax figures pick them up from the
	// satellite tables; a miss or failure here never blocks the listing.
	if rec.Currency == CurrencyPKR {
		if rec.Statutory == nil {
			rec.Statutory = &StatutoryComponents{}
		}
		if rec.Statutory.EOBI == nil {
			if amount, err := s.store.EOBIContribution(ctx, rec.EmployeeID, rec.PayrollMonth); err == nil && amount != nil {
				rec.Statutory.EOBI = amount
			}
		}
		if rec.Statutory.TaxDeduction == nil {
			if amount, err := s.store.TaxDeduction(ctx, rec.EmployeeID, rec.PayrollMonth); err == nil && amount != nil {
				rec.Statutory.TaxDeduction = amount
			}
		}
	}
}

// nameFromSheetKey recovers the lower-cased name from a legacy sheet key of
// the form "Jan-full name".
func nameFromSheetKey(key string) string {
	_, name, found := strings.Cut(key, "-")
	if !found {
		return ""
	}
	return name
}
