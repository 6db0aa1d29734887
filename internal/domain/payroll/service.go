package payroll

import (
	"sync"
	"time"

	"payrolld/internal/domain/directory"
)

// Service is the payroll computation engine: sheet generation, enriched
// listing and partial updates. It is stateless apart from the shared
// directory cache and the per-sheet generation locks.
type Service struct {
	store  StoreAPI
	intake IntakeAPI
	cache  *directory.Cache

	locks sheetLocks
}

func NewService(store StoreAPI, intake IntakeAPI, cache *directory.Cache) *Service {
	return &Service{store: store, intake: intake, cache: cache}
}

// sheetLocks serializes generation per (month, currency). The existence check
// in the generator is check-then-act; without this, two concurrent requests
// for the same sheet could both pass it. The unique storage constraint backs
// this up across processes.
type sheetLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *sheetLocks) acquire(key string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = map[string]*sync.Mutex{}
	}
	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func sheetKey(month time.Time, currency string) string {
	return currency + "/" + month.Format("2006-01")
}
