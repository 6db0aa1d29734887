package payroll

import "context"

// PatchSalary applies an enumerated partial update to one record. When the
// patch touches a gross contributor or deductions, gross and net are
// recomputed before persisting so the stored invariants hold.
func (s *Service) PatchSalary(ctx context.Context, salaryID int64, p Patch) (int64, error) {
	if p.empty() {
		return 0, ErrNoPatchFields
	}

	rec, err := s.store.GetSalary(ctx, salaryID)
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, ErrRecordNotFound
	}

	if p.PerformanceBonus != nil {
		rec.PerformanceBonus = p.PerformanceBonus
	}
	if p.PaidOvertime != nil {
		rec.PaidOvertime = p.PaidOvertime
	}
	if p.Reimbursements != nil {
		rec.Reimbursements = p.Reimbursements
	}
	if p.Other != nil {
		rec.Other = p.Other
	}
	if p.PayableFromLastMonth != nil {
		rec.PayableFromLastMonth = p.PayableFromLastMonth
	}
	if p.Deductions != nil {
		rec.Deductions = p.Deductions
	}
	if p.SalaryStatus != nil {
		rec.SalaryStatus = *p.SalaryStatus
	}
	if p.PayslipStatus != nil {
		rec.PayslipStatus = *p.PayslipStatus
	}

	if p.touchesIncome() {
		rec.GrossIncome = GrossIncome(
			rec.ProratedPay,
			rec.PerformanceBonus,
			rec.PaidOvertime,
			rec.Reimbursements,
			rec.Other,
			rec.PayableFromLastMonth,
		)
		rec.NetIncome = NetIncome(rec.GrossIncome, rec.Deductions)
	}

	return s.store.UpdateSalary(ctx, rec)
}
