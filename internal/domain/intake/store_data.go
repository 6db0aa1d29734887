package intake

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListNewHires(ctx context.Context, month time.Time, currency string) ([]NewHireRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, month, currency, employee_id,
           full_name, COALESCE(email, ''), agreed_pay, joining_date,
           COALESCE(designation, ''), created_at
    FROM new_hires
    WHERE month = $1 AND currency = $2
    ORDER BY created_at
  `, month, currency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NewHireRow
	for rows.Next() {
		var r NewHireRow
		if err := rows.Scan(&r.ID, &r.Month, &r.Currency, &r.EmployeeID, &r.FullName, &r.Email, &r.AgreedPay, &r.JoiningDate, &r.Designation, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListLeavers(ctx context.Context, month time.Time, currency string) ([]LeaverRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, month, COALESCE(currency, ''), employee_id,
           full_name, COALESCE(email, ''), leaving_date, last_pay, created_at
    FROM leavers
    WHERE month = $1 AND ($2 = '' OR currency = $2 OR currency IS NULL)
    ORDER BY created_at
  `, month, currency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaverRow
	for rows.Next() {
		var r LeaverRow
		if err := rows.Scan(&r.ID, &r.Month, &r.Currency, &r.EmployeeID, &r.FullName, &r.Email, &r.LeavingDate, &r.LastPay, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListIncrements(ctx context.Context, month time.Time, currency string) ([]IncrementRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, month, currency, employee_id,
           full_name, COALESCE(email, ''), new_pay, previous_pay, effective_date, created_at
    FROM increments
    WHERE month = $1 AND currency = $2
    ORDER BY created_at
  `, month, currency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IncrementRow
	for rows.Next() {
		var r IncrementRow
		if err := rows.Scan(&r.ID, &r.Month, &r.Currency, &r.EmployeeID, &r.FullName, &r.Email, &r.NewPay, &r.PreviousPay, &r.EffectiveDate, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) InsertNewHire(ctx context.Context, row *NewHireRow) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO new_hires (month, currency, employee_id, full_name, email, agreed_pay, joining_date, designation)
    VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NULLIF($8, ''))
    RETURNING id, created_at
  `, row.Month, row.Currency, row.EmployeeID, row.FullName, row.Email, row.AgreedPay, row.JoiningDate, row.Designation).
		Scan(&row.ID, &row.CreatedAt)
}

func (s *Store) InsertLeaver(ctx context.Context, row *LeaverRow) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO leavers (month, currency, employee_id, full_name, email, leaving_date, last_pay)
    VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), $6, $7)
    RETURNING id, created_at
  `, row.Month, row.Currency, row.EmployeeID, row.FullName, row.Email, row.LeavingDate, row.LastPay).
		Scan(&row.ID, &row.CreatedAt)
}

func (s *Store) InsertIncrement(ctx context.Context, row *IncrementRow) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO increments (month, currency, employee_id, full_name, email, new_pay, previous_pay, effective_date)
    VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
    RETURNING id, created_at
  `, row.Month, row.Currency, row.EmployeeID, row.FullName, row.Email, row.NewPay, row.PreviousPay, row.EffectiveDate).
		Scan(&row.ID, &row.CreatedAt)
}

// FindEmployeeID matches a directory record by exact full name or official
// email. Name matching is deliberately exact and case-sensitive; fuzzy
// matches caused wrong-person backfills in the old sheets.
func (s *Store) FindEmployeeID(ctx context.Context, fullName, email string) (*int, error) {
	var id int
	err := s.DB.QueryRow(ctx, `
    SELECT employee_id
    FROM workers
    WHERE full_name = $1 OR ($2 <> '' AND email = $2)
    ORDER BY employee_id
    LIMIT 1
  `, fullName, email).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *Store) LatestGrossIncome(ctx context.Context, employeeID int, currency string) (*float64, error) {
	var gross float64
	err := s.DB.QueryRow(ctx, `
    SELECT gross_income
    FROM employee_salaries
    WHERE employee_id = $1 AND currency = $2
    ORDER BY payroll_month DESC
    LIMIT 1
  `, employeeID, currency).Scan(&gross)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gross, nil
}

func (s *Store) NominalGrossSalary(ctx context.Context, employeeID int) (*float64, error) {
	var nominal *float64
	err := s.DB.QueryRow(ctx, `
    SELECT gross_salary
    FROM workers
    WHERE employee_id = $1
  `, employeeID).Scan(&nominal)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return nominal, nil
}

func (s *Store) LatestCurrency(ctx context.Context, employeeID int) (*string, error) {
	var currency string
	err := s.DB.QueryRow(ctx, `
    SELECT currency
    FROM employee_salaries
    WHERE employee_id = $1
    ORDER BY payroll_month DESC
    LIMIT 1
  `, employeeID).Scan(&currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &currency, nil
}
