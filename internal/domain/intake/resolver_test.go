package intake

import (
	"context"
	"strconv"
	"testing"
	"time"
)

type fakeStore struct {
	idsByName    map[string]int
	idsByEmail   map[string]int
	latestGross  map[string]float64 // "id/currency"
	nominalGross map[int]float64
	latestCcy    map[int]string

	newHires   []NewHireRow
	leavers    []LeaverRow
	increments []IncrementRow
}

func key(id int, currency string) string {
	return currency + "/" + strconv.Itoa(id)
}

func (f *fakeStore) ListNewHires(ctx context.Context, month time.Time, currency string) ([]NewHireRow, error) {
	return f.newHires, nil
}

func (f *fakeStore) ListLeavers(ctx context.Context, month time.Time, currency string) ([]LeaverRow, error) {
	return f.leavers, nil
}

func (f *fakeStore) ListIncrements(ctx context.Context, month time.Time, currency string) ([]IncrementRow, error) {
	return f.increments, nil
}

func (f *fakeStore) InsertNewHire(ctx context.Context, row *NewHireRow) error {
	row.ID = int64(len(f.newHires) + 1)
	f.newHires = append(f.newHires, *row)
	return nil
}

func (f *fakeStore) InsertLeaver(ctx context.Context, row *LeaverRow) error {
	row.ID = int64(len(f.leavers) + 1)
	f.leavers = append(f.leavers, *row)
	return nil
}

func (f *fakeStore) InsertIncrement(ctx context.Context, row *IncrementRow) error {
	row.ID = int64(len(f.increments) + 1)
	f.increments = append(f.increments, *row)
	return nil
}

func (f *fakeStore) FindEmployeeID(ctx context.Context, fullName, email string) (*int, error) {
	if id, ok := f.idsByName[fullName]; ok {
		return &id, nil
	}
	if email != "" {
		if id, ok := f.idsByEmail[email]; ok {
			return &id, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) LatestGrossIncome(ctx context.Context, employeeID int, currency string) (*float64, error) {
	if gross, ok := f.latestGross[key(employeeID, currency)]; ok {
		return &gross, nil
	}
	return nil, nil
}

func (f *fakeStore) NominalGrossSalary(ctx context.Context, employeeID int) (*float64, error) {
	if nominal, ok := f.nominalGross[employeeID]; ok {
		return &nominal, nil
	}
	return nil, nil
}

func (f *fakeStore) LatestCurrency(ctx context.Context, employeeID int) (*string, error) {
	if c, ok := f.latestCcy[employeeID]; ok {
		return &c, nil
	}
	return nil, nil
}

func TestResolveLeaverRowScenarioD(t *testing.T) {
	// Leaver row without an identifier, exact name match in the directory.
	store := &fakeStore{
		idsByName:   map[string]int{"Ayesha Khan": 101},
		latestGross: map[string]float64{key(101, "PKR"): 95000},
		latestCcy:   map[int]string{101: "PKR"},
	}
	resolver := NewResolver(store)

	row := LeaverRow{FullName: "Ayesha Khan"}
	if err := resolver.ResolveLeaverRow(context.Background(), &row); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.EmployeeID == nil || *row.EmployeeID != 101 {
		t.Fatalf("expected identifier 101, got %v", row.EmployeeID)
	}
	if !row.EmployeeIDBackfilled {
		t.Fatal("expected the backfilled flag to be set")
	}
	if row.Currency != "PKR" || !row.CurrencyBackfilled {
		t.Fatalf("expected backfilled currency PKR, got %q (backfilled=%v)", row.Currency, row.CurrencyBackfilled)
	}
	if row.LastPay == nil || *row.LastPay != 95000 || !row.LastPayBackfilled {
		t.Fatalf("expected backfilled last pay 95000, got %v", row.LastPay)
	}
}

func TestResolveIdentifierIsExact(t *testing.T) {
	store := &fakeStore{idsByName: map[string]int{"Ayesha Khan": 101}}
	resolver := NewResolver(store)

	// Case differences do not match: name resolution is exact by design.
	id, err := resolver.ResolveIdentifier(context.Background(), "ayesha khan", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != nil {
		t.Fatalf("expected no match for differently-cased name, got %v", *id)
	}
}

func TestResolvePreviousPayFallsBackToNominal(t *testing.T) {
	store := &fakeStore{nominalGross: map[int]float64{102: 1200}}
	resolver := NewResolver(store)

	pay, err := resolver.ResolvePreviousPay(context.Background(), 102, "USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pay == nil || *pay != 1200 {
		t.Fatalf("expected nominal fallback 1200, got %v", pay)
	}

	pay, err = resolver.ResolvePreviousPay(context.Background(), 999, "USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pay != nil {
		t.Fatalf("expected nil for unknown employee, got %v", *pay)
	}
}

func TestResolvePreviousPayPrefersHistory(t *testing.T) {
	store := &fakeStore{
		latestGross:  map[string]float64{key(103, "USD"): 4000},
		nominalGross: map[int]float64{103: 3500},
	}
	resolver := NewResolver(store)

	pay, err := resolver.ResolvePreviousPay(context.Background(), 103, "USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pay == nil || *pay != 4000 {
		t.Fatalf("expected history to win over nominal, got %v", pay)
	}
}

func TestResolveRowsFillOnlyEmptyFields(t *testing.T) {
	existing := 55
	enteredPay := 2000.0
	store := &fakeStore{
		idsByName:   map[string]int{"Bilal Ahmed": 102},
		latestGross: map[string]float64{key(102, "USD"): 1800},
	}
	resolver := NewResolver(store)

	row := IncrementRow{FullName: "Bilal Ahmed", Currency: "USD", EmployeeID: &existing, PreviousPay: &enteredPay}
	if err := resolver.ResolveIncrementRow(context.Background(), &row); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *row.EmployeeID != 55 || row.EmployeeIDBackfilled {
		t.Fatalf("present identifier must not be overwritten: %v", *row.EmployeeID)
	}
	if *row.PreviousPay != 2000 || row.PreviousPayBackfilled {
		t.Fatalf("present previous pay must not be overwritten: %v", *row.PreviousPay)
	}
}

func TestResolveNewHireRow(t *testing.T) {
	store := &fakeStore{idsByEmail: map[string]int{"hire@example.com": 240}}
	resolver := NewResolver(store)

	row := NewHireRow{FullName: "Somebody New", Email: "hire@example.com"}
	if err := resolver.ResolveNewHireRow(context.Background(), &row); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.EmployeeID == nil || *row.EmployeeID != 240 || !row.EmployeeIDBackfilled {
		t.Fatalf("expected backfilled identifier 240, got %v", row.EmployeeID)
	}
}
