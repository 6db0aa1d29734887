package payroll

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"payrolld/internal/domain/directory"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const workerColumns = `
    employee_id, full_name,
    COALESCE(department, ''), COALESCE(designation, ''), status,
    COALESCE(email, ''), COALESCE(personal_email, ''),
    joining_date, leaving_date, probation_end,
    gross_salary, COALESCE(currency, ''),
    created_at, updated_at`

func (s *Store) ListActiveWorkers(ctx context.Context, joinedBy time.Time, currency string) ([]directory.Worker, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+workerColumns+`
    FROM workers
    WHERE status = $1
      AND currency = $2
      AND (joining_date IS NULL OR joining_date <= $3)
    ORDER BY employee_id
  `, directory.StatusActive, currency, joinedBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWorkers(rows)
}

func (s *Store) ListLeavingWorkers(ctx context.Context, from, to time.Time, currency string) ([]directory.Worker, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+workerColumns+`
    FROM workers
    WHERE status IN ($1, $2)
      AND currency = $3
      AND leaving_date >= $4 AND leaving_date <= $5
    ORDER BY employee_id
  `, directory.StatusResigned, directory.StatusTerminated, currency, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWorkers(rows)
}

func scanWorkers(rows pgx.Rows) ([]directory.Worker, error) {
	var out []directory.Worker
	for rows.Next() {
		var w directory.Worker
		if err := rows.Scan(
			&w.EmployeeID, &w.FullName,
			&w.Department, &w.Designation, &w.Status,
			&w.Email, &w.PersonalEmail,
			&w.JoiningDate, &w.LeavingDate, &w.ProbationEnd,
			&w.GrossSalary, &w.Currency,
			&w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) ExistingEmployeeIDs(ctx context.Context, month time.Time, currency string) (map[int]bool, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id
    FROM employee_salaries
    WHERE payroll_month = $1 AND currency = $2
  `, month, currency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := map[int]bool{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = true
	}
	return existing, rows.Err()
}

func (s *Store) MaxSalaryID(ctx context.Context) (int64, error) {
	var maxID int64
	if err := s.DB.QueryRow(ctx, "SELECT COALESCE(MAX(salary_id), 0) FROM employee_salaries").Scan(&maxID); err != nil {
		return 0, err
	}
	return maxID, nil
}

const salaryColumns = `
    salary_id, employee_id, payroll_month, month, currency,
    month_key, sheet_key,
    COALESCE(employee_name, ''), COALESCE(email, ''), COALESCE(department, ''),
    COALESCE(status, ''), COALESCE(designation_at_payroll, ''),
    date_of_joining, date_of_leaving,
    worked_days, regular_pay, revised_pay, prorated_pay,
    performance_bonus, paid_overtime, reimbursements, other, payable_from_last_month,
    gross_income, deductions, net_income, last_month_salary,
    salary_status, payslip_status,
    prorated_base_pay, prorated_medical_allowance, prorated_transport_allowance,
    prorated_inflation_allowance, taxable_income, tax_deduction, eobi,
    loan_deduction, recoveries,
    created_at`

func scanSalary(row interface{ Scan(dest ...any) error }) (*SalaryRecord, error) {
	var rec SalaryRecord
	var st StatutoryComponents
	err := row.Scan(
		&rec.SalaryID, &rec.EmployeeID, &rec.PayrollMonth, &rec.Month, &rec.Currency,
		&rec.MonthKey, &rec.SheetKey,
		&rec.EmployeeName, &rec.Email, &rec.Department,
		&rec.Status, &rec.DesignationAtPayroll,
		&rec.DateOfJoining, &rec.DateOfLeaving,
		&rec.WorkedDays, &rec.RegularPay, &rec.RevisedPay, &rec.ProratedPay,
		&rec.PerformanceBonus, &rec.PaidOvertime, &rec.Reimbursements, &rec.Other, &rec.PayableFromLastMonth,
		&rec.GrossIncome, &rec.Deductions, &rec.NetIncome, &rec.LastMonthSalary,
		&rec.SalaryStatus, &rec.PayslipStatus,
		&st.ProratedBasePay, &st.ProratedMedicalAllowance, &st.ProratedTransportAllowance,
		&st.ProratedInflationAllowance, &st.TaxableIncome, &st.TaxDeduction, &st.EOBI,
		&st.LoanDeduction, &st.Recoveries,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rec.Currency == CurrencyPKR {
		rec.Statutory = &st
	}
	return &rec, nil
}

// InsertSalaryRecords writes a generated sheet in a single transaction. The
// unique (employee_id, payroll_month, currency) constraint is the hard line
// against duplicates; a concurrent generation that slipped past the existence
// check lands on DO NOTHING instead of inserting twice.
func (s *Store) InsertSalaryRecords(ctx context.Context, records []SalaryRecord) (int, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	created := 0
	for _, rec := range records {
		st := rec.Statutory
		if st == nil {
			st = &StatutoryComponents{}
		}
		tag, err := tx.Exec(ctx, `
      INSERT INTO employee_salaries (
        salary_id, employee_id, payroll_month, month, currency,
        month_key, sheet_key, employee_name, email, department,
        status, designation_at_payroll, date_of_joining, date_of_leaving,
        worked_days, regular_pay, revised_pay, prorated_pay,
        performance_bonus, paid_overtime, reimbursements, other, payable_from_last_month,
        gross_income, deductions, net_income, last_month_salary,
        salary_status, payslip_status,
        prorated_base_pay, prorated_medical_allowance, prorated_transport_allowance,
        prorated_inflation_allowance, taxable_income, tax_deduction, eobi,
        loan_deduction, recoveries
      ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
        $19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37,$38
      )
      ON CONFLICT (employee_id, payroll_month, currency) DO NOTHING
    `,
			rec.SalaryID, rec.EmployeeID, rec.PayrollMonth, rec.Month, rec.Currency,
			rec.MonthKey, rec.SheetKey, rec.EmployeeName, rec.Email, rec.Department,
			rec.Status, rec.DesignationAtPayroll, rec.DateOfJoining, rec.DateOfLeaving,
			rec.WorkedDays, rec.RegularPay, rec.RevisedPay, rec.ProratedPay,
			rec.PerformanceBonus, rec.PaidOvertime, rec.Reimbursements, rec.Other, rec.PayableFromLastMonth,
			rec.GrossIncome, rec.Deductions, rec.NetIncome, rec.LastMonthSalary,
			rec.SalaryStatus, rec.PayslipStatus,
			st.ProratedBasePay, st.ProratedMedicalAllowance, st.ProratedTransportAllowance,
			st.ProratedInflationAllowance, st.TaxableIncome, st.TaxDeduction, st.EOBI,
			st.LoanDeduction, st.Recoveries,
		)
		if err != nil {
			return 0, err
		}
		created += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return created, nil
}

func salaryFilterClauses(f Filters, args []any) (string, []any) {
	where := " WHERE 1=1"
	if f.Month != nil {
		args = append(args, *f.Month)
		where += " AND payroll_month = $" + strconv.Itoa(len(args))
	}
	if f.Currency != "" {
		args = append(args, f.Currency)
		where += " AND currency = $" + strconv.Itoa(len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += " AND salary_status = $" + strconv.Itoa(len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := strconv.Itoa(len(args))
		where += " AND (employee_name ILIKE $" + n + " OR employee_id::text LIKE $" + n + " OR email ILIKE $" + n + ")"
	}
	return where, args
}

func (s *Store) ListSalaries(ctx context.Context, f Filters) ([]SalaryRecord, error) {
	where, args := salaryFilterClauses(f, nil)
	query := "SELECT " + salaryColumns + " FROM employee_salaries" + where +
		" ORDER BY payroll_month DESC, employee_id"
	args = append(args, f.Limit)
	query += " LIMIT $" + strconv.Itoa(len(args))
	args = append(args, f.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SalaryRecord
	for rows.Next() {
		rec, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (s *Store) CountSalaries(ctx context.Context, f Filters) (int, error) {
	where, args := salaryFilterClauses(f, nil)
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employee_salaries"+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) GetSalary(ctx context.Context, salaryID int64) (*SalaryRecord, error) {
	rec, err := scanSalary(s.DB.QueryRow(ctx, `
    SELECT `+salaryColumns+`
    FROM employee_salaries
    WHERE salary_id = $1
  `, salaryID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateSalary persists the patchable fields plus the recomputed gross and
// net. Records are never deleted and identity columns never change.
func (s *Store) UpdateSalary(ctx context.Context, rec *SalaryRecord) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employee_salaries
    SET performance_bonus = $1,
        paid_overtime = $2,
        reimbursements = $3,
        other = $4,
        payable_from_last_month = $5,
        deductions = $6,
        gross_income = $7,
        net_income = $8,
        salary_status = $9,
        payslip_status = $10
    WHERE salary_id = $11
  `,
		rec.PerformanceBonus, rec.PaidOvertime, rec.Reimbursements, rec.Other,
		rec.PayableFromLastMonth, rec.Deductions, rec.GrossIncome, rec.NetIncome,
		rec.SalaryStatus, rec.PayslipStatus, rec.SalaryID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) EOBIContribution(ctx context.Context, employeeID int, month time.Time) (*float64, error) {
	var amount float64
	err := s.DB.QueryRow(ctx, `
    SELECT contribution
    FROM eobi_records
    WHERE employee_id = $1 AND month = $2
  `, employeeID, month).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

func (s *Store) TaxDeduction(ctx context.Context, employeeID int, month time.Time) (*float64, error) {
	var amount float64
	err := s.DB.QueryRow(ctx, `
    SELECT deduction
    FROM tax_records
    WHERE employee_id = $1 AND month = $2
  `, employeeID, month).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &amount, nil
}
