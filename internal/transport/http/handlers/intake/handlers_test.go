package intakehandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"payrolld/internal/domain/intake"
)

type stubStore struct {
	hires      []intake.NewHireRow
	leavers    []intake.LeaverRow
	increments []intake.IncrementRow

	idsByName map[string]int
	latestCcy map[int]string
	gross     map[int]float64
}

func (s *stubStore) ListNewHires(ctx context.Context, month time.Time, currency string) ([]intake.NewHireRow, error) {
	return s.hires, nil
}

func (s *stubStore) ListLeavers(ctx context.Context, month time.Time, currency string) ([]intake.LeaverRow, error) {
	return s.leavers, nil
}

func (s *stubStore) ListIncrements(ctx context.Context, month time.Time, currency string) ([]intake.IncrementRow, error) {
	return s.increments, nil
}

func (s *stubStore) InsertNewHire(ctx context.Context, row *intake.NewHireRow) error {
	row.ID = int64(len(s.hires) + 1)
	s.hires = append(s.hires, *row)
	return nil
}

func (s *stubStore) InsertLeaver(ctx context.Context, row *intake.LeaverRow) error {
	row.ID = int64(len(s.leavers) + 1)
	s.leavers = append(s.leavers, *row)
	return nil
}

func (s *stubStore) InsertIncrement(ctx context.Context, row *intake.IncrementRow) error {
	row.ID = int64(len(s.increments) + 1)
	s.increments = append(s.increments, *row)
	return nil
}

func (s *stubStore) FindEmployeeID(ctx context.Context, fullName, email string) (*int, error) {
	if id, ok := s.idsByName[fullName]; ok {
		return &id, nil
	}
	return nil, nil
}

func (s *stubStore) LatestGrossIncome(ctx context.Context, employeeID int, currency string) (*float64, error) {
	if g, ok := s.gross[employeeID]; ok {
		return &g, nil
	}
	return nil, nil
}

func (s *stubStore) NominalGrossSalary(ctx context.Context, employeeID int) (*float64, error) {
	return nil, nil
}

func (s *stubStore) LatestCurrency(ctx context.Context, employeeID int) (*string, error) {
	if c, ok := s.latestCcy[employeeID]; ok {
		return &c, nil
	}
	return nil, nil
}

func newTestRouter(store *stubStore) chi.Router {
	router := chi.NewRouter()
	NewHandler(intake.NewResolver(store)).RegisterRoutes(router)
	return router
}

func TestCreateNewHireNormalizesSerialDate(t *testing.T) {
	store := &stubStore{}
	router := newTestRouter(store)

	// 44927 is the spreadsheet day serial for 2023-01-01.
	req := httptest.NewRequest(http.MethodPost, "/intake/new-hires",
		strings.NewReader(`{"month":"jan 2023","currency":"PKR","fullName":"Somebody New","joiningDate":44927}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.hires) != 1 {
		t.Fatalf("expected one stored row, got %d", len(store.hires))
	}
	joined := store.hires[0].JoiningDate
	if joined == nil || joined.Format("2006-01-02") != "2023-01-01" {
		t.Fatalf("expected joining date 2023-01-01, got %v", joined)
	}
}

func TestCreateLeaverNormalizesWrappedDateAndBackfills(t *testing.T) {
	store := &stubStore{
		idsByName: map[string]int{"Ayesha Khan": 101},
		latestCcy: map[int]string{101: "PKR"},
		gross:     map[int]float64{101: 95000},
	}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/intake/leavers",
		strings.NewReader(`{"month":"2025-06","fullName":"Ayesha Khan","leavingDate":{"value":"2025-06-10"}}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	row := store.leavers[0]
	if row.LeavingDate == nil || row.LeavingDate.Format("2006-01-02") != "2025-06-10" {
		t.Fatalf("expected leaving date 2025-06-10, got %v", row.LeavingDate)
	}
	if row.EmployeeID == nil || *row.EmployeeID != 101 || !row.EmployeeIDBackfilled {
		t.Fatalf("expected backfilled identifier 101, got %v", row.EmployeeID)
	}
	if row.Currency != "PKR" || !row.CurrencyBackfilled {
		t.Fatalf("expected backfilled currency PKR, got %q", row.Currency)
	}
}

func TestCreateIncrementOpaqueDateStaysNil(t *testing.T) {
	store := &stubStore{}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/intake/increments",
		strings.NewReader(`{"month":"2025-06","currency":"USD","fullName":"Bilal Ahmed","newPay":2500,"effectiveDate":"whenever"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.increments[0].EffectiveDate != nil {
		t.Fatalf("expected nil effective date for opaque input, got %v", store.increments[0].EffectiveDate)
	}
}

func TestCreateNewHireRejectsMissingFields(t *testing.T) {
	router := newTestRouter(&stubStore{})

	req := httptest.NewRequest(http.MethodPost, "/intake/new-hires",
		strings.NewReader(`{"currency":"PKR"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
