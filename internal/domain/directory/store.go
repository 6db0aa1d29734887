package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

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

func scanWorker(row interface{ Scan(dest ...any) error }, w *Worker) error {
	return row.Scan(
		&w.EmployeeID, &w.FullName,
		&w.Department, &w.Designation, &w.Status,
		&w.Email, &w.PersonalEmail,
		&w.JoiningDate, &w.LeavingDate, &w.ProbationEnd,
		&w.GrossSalary, &w.Currency,
		&w.CreatedAt, &w.UpdatedAt,
	)
}

// ListWorkers returns the full directory snapshot the reconciliation cache is
// built from.
func (s *Store) ListWorkers(ctx context.Context) ([]Worker, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+workerColumns+`
    FROM workers
    ORDER BY employee_id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []Worker
	for rows.Next() {
		var w Worker
		if err := scanWorker(rows, &w); err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

// GetWorker fetches a single directory record, nil when absent.
func (s *Store) GetWorker(ctx context.Context, employeeID int) (*Worker, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+workerColumns+`
    FROM workers
    WHERE employee_id = $1
  `, employeeID)

	var w Worker
	if err := scanWorker(row, &w); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}
