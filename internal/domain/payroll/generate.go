package payroll

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"payrolld/internal/domain/directory"
	"payrolld/internal/domain/intake"
	"payrolld/internal/resolve"
)

// member is one candidate row for the sheet: a directory worker, a new-hire
// intake row, or both.
type member struct {
	employeeID int
	worker     *directory.Worker
	hire       *intake.NewHireRow
}

// ComputeSalarySheet generates the salary sheet for one (month, currency).
// onlyEmployeeID, when set, restricts generation to a single member of the
// eligible population. Existing rows are left alone; members without a
// resolvable base pay are skipped with a warning rather than failing the run.
func (s *Service) ComputeSalarySheet(ctx context.Context, month time.Time, currency string, onlyEmployeeID *int) (*SheetResult, error) {
	if month.IsZero() {
		return nil, ErrMonthRequired
	}
	if currency == "" {
		return nil, ErrCurrencyRequired
	}
	month = MonthStart(month)

	unlock := s.locks.acquire(sheetKey(month, currency))
	defer unlock()

	var (
		active     []directory.Worker
		leaving    []directory.Worker
		hires      []intake.NewHireRow
		increments []intake.IncrementRow
		existing   map[int]bool
		maxID      int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		active, err = s.store.ListActiveWorkers(gctx, MonthEnd(month), currency)
		return err
	})
	g.Go(func() error {
		var err error
		// Leavers stay on the sheet for two months past their month of
		// record, covering late settlements.
		leaving, err = s.store.ListLeavingWorkers(gctx, month, month.AddDate(0, 2, 0), currency)
		return err
	})
	g.Go(func() error {
		var err error
		hires, err = s.intake.ListResolvedNewHires(gctx, month, currency)
		return err
	})
	g.Go(func() error {
		var err error
		increments, err = s.intake.ListResolvedIncrements(gctx, month, currency)
		return err
	})
	g.Go(func() error {
		var err error
		existing, err = s.store.ExistingEmployeeIDs(gctx, month, currency)
		return err
	})
	g.Go(func() error {
		var err error
		maxID, err = s.store.MaxSalaryID(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &SheetResult{Skipped: []SkippedMember{}}
	members := eligibleMembers(active, leaving, hires, result)

	incrementByID := map[int]*intake.IncrementRow{}
	for i := range increments {
		if increments[i].EmployeeID != nil {
			incrementByID[*increments[i].EmployeeID] = &increments[i]
		}
	}

	// Drop members that already have a row or fall outside the requested
	// restriction before doing any per-member work.
	var pending []member
	for _, m := range members {
		if onlyEmployeeID != nil && m.employeeID != *onlyEmployeeID {
			continue
		}
		if existing[m.employeeID] {
			continue
		}
		pending = append(pending, m)
	}

	// Prior-pay lookups are independent across members; fetch them in
	// parallel, each goroutine writing its own slot.
	lastPay := make([]*float64, len(pending))
	pg, pctx := errgroup.WithContext(ctx)
	pg.SetLimit(8)
	for i := range pending {
		i := i
		pg.Go(func() error {
			pay, err := s.intake.ResolvePreviousPay(pctx, pending[i].employeeID, currency)
			if err != nil {
				return err
			}
			lastPay[i] = pay
			return nil
		})
	}
	if err := pg.Wait(); err != nil {
		return nil, err
	}

	var records []SalaryRecord
	nextID := maxID
	for i, m := range pending {
		base := basePay(m, incrementByID)
		if base == nil {
			slog.Warn("sheet member skipped: no resolvable base pay",
				"employeeId", m.employeeID, "month", month.Format("2006-01"), "currency", currency)
			result.Skipped = append(result.Skipped, SkippedMember{
				EmployeeID: m.employeeID,
				Name:       memberName(m),
				Reason:     SkipReasonNoBasePay,
			})
			continue
		}

		nextID++
		records = append(records, buildRecord(nextID, m, month, currency, *base, lastPay[i]))
	}

	created, err := s.store.InsertSalaryRecords(ctx, records)
	if err != nil {
		return nil, err
	}
	result.Created = created
	return result, nil
}

// eligibleMembers unions the three populations: active workers joined by the
// end of the month, recent leavers, and resolved new-hire intake rows.
// Workers win over intake rows when both exist for an id; hires without a
// resolved identifier are recorded as skipped.
func eligibleMembers(active, leaving []directory.Worker, hires []intake.NewHireRow, result *SheetResult) []member {
	byID := map[int]int{}
	var members []member

	add := func(w *directory.Worker) {
		if _, ok := byID[w.EmployeeID]; ok {
			return
		}
		byID[w.EmployeeID] = len(members)
		members = append(members, member{employeeID: w.EmployeeID, worker: w})
	}
	for i := range active {
		add(&active[i])
	}
	for i := range leaving {
		add(&leaving[i])
	}

	for i := range hires {
		hire := &hires[i]
		if hire.EmployeeID == nil {
			result.Skipped = append(result.Skipped, SkippedMember{
				Name:   hire.FullName,
				Reason: SkipReasonNoIdentifier,
			})
			continue
		}
		if at, ok := byID[*hire.EmployeeID]; ok {
			members[at].hire = hire
			continue
		}
		byID[*hire.EmployeeID] = len(members)
		members = append(members, member{employeeID: *hire.EmployeeID, hire: hire})
	}
	return members
}

// basePay picks the member's base figure: increment override, then new-hire
// agreed pay, then the directory's nominal pay.
func basePay(m member, increments map[int]*intake.IncrementRow) *float64 {
	return resolve.First(
		func() *float64 {
			if inc, ok := increments[m.employeeID]; ok {
				return inc.NewPay
			}
			return nil
		},
		func() *float64 {
			if m.hire != nil {
				return m.hire.AgreedPay
			}
			return nil
		},
		func() *float64 {
			if m.worker != nil {
				return m.worker.GrossSalary
			}
			return nil
		},
	)
}

func memberName(m member) string {
	if m.worker != nil {
		return m.worker.FullName
	}
	if m.hire != nil {
		return m.hire.FullName
	}
	return ""
}

func buildRecord(salaryID int64, m member, month time.Time, currency string, base float64, lastPay *float64) SalaryRecord {
	var join, leave, probationEnd *time.Time
	name := memberName(m)
	email, department, status, designation := "", "", "", ""

	if m.worker != nil {
		join, leave, probationEnd = m.worker.JoiningDate, m.worker.LeavingDate, m.worker.ProbationEnd
		email, department, status, designation = m.worker.Email, m.worker.Department, m.worker.Status, m.worker.Designation
	}
	if m.hire != nil {
		if join == nil {
			join = m.hire.JoiningDate
		}
		if email == "" {
			email = m.hire.Email
		}
		if designation == "" {
			designation = m.hire.Designation
		}
		if status == "" {
			status = directory.StatusActive
		}
	}

	totalDays := DaysInMonth(month)
	worked := WorkedDays(join, leave, month)
	workedF := float64(worked)

	revised := RevisedPay(base, currency, InProbation(probationEnd, month))
	prorated := ProratedPay(&revised, totalDays, worked)
	gross := GrossIncome(prorated, nil, nil, nil, nil, nil)
	net := NetIncome(gross, nil)

	abbrev := MonthAbbrev(month)
	rec := SalaryRecord{
		SalaryID:             salaryID,
		EmployeeID:           m.employeeID,
		PayrollMonth:         month,
		Month:                month.Format("January 2006"),
		Currency:             currency,
		MonthKey:             abbrev + "-" + strconv.Itoa(m.employeeID),
		SheetKey:             abbrev + "-" + directory.NameKey(name),
		EmployeeName:         name,
		Email:                email,
		Department:           department,
		Status:               status,
		DesignationAtPayroll: designation,
		DateOfJoining:        join,
		DateOfLeaving:        leave,
		WorkedDays:           &workedF,
		RegularPay:           &base,
		RevisedPay:           &revised,
		ProratedPay:          prorated,
		GrossIncome:          gross,
		NetIncome:            net,
		LastMonthSalary:      lastPay,
		SalaryStatus:         SalaryStatusHold,
		PayslipStatus:        PayslipStatusNotSent,
	}

	if currency == CurrencyPKR {
		rec.Statutory = &StatutoryComponents{
			ProratedBasePay: ProratedPay(&base, totalDays, worked),
			TaxableIncome:   &gross,
		}
	}
	return rec
}
