package directory

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"payrolld/internal/resolve"
)

// DefaultCacheTTL keeps the index fresh enough for interactive listings while
// sparing the store a directory scan per request.
const DefaultCacheTTL = time.Minute

// Index is a snapshot of the directory keyed three ways: by employee id, by
// normalized email (official and personal), and by name key. It is rebuilt
// wholesale and never mutated after construction.
type Index struct {
	byID      map[int]*Worker
	byEmail   map[string]*Worker
	byNameKey map[string]*Worker
	builtAt   time.Time
}

// Loader supplies the directory snapshot an Index is built from.
type Loader func(ctx context.Context) ([]Worker, error)

// Cache lazily builds and refreshes the directory index. It is shared
// process-wide; construction, clock and TTL are injected so staleness is
// controllable in tests.
type Cache struct {
	loader Loader
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	index   *Index
	expires time.Time
}

func NewCache(loader Loader, ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{loader: loader, ttl: ttl, now: now}
}

// Index returns the current snapshot, rebuilding it when the TTL has lapsed.
// A failed rebuild yields an empty index so enrichment degrades instead of
// blocking the caller; the next access past the TTL tries again.
func (c *Cache) Index(ctx context.Context) *Index {
	c.mu.Lock()
	defer c.mu.Unlock()

	at := c.now()
	if c.index != nil && at.Before(c.expires) {
		return c.index
	}

	workers, err := c.loader(ctx)
	if err != nil {
		slog.Warn("directory index rebuild failed", "err", err)
		workers = nil
	}
	c.index = buildIndex(workers, at)
	c.expires = at.Add(c.ttl)
	return c.index
}

// Invalidate drops the snapshot; the next access rebuilds.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = nil
	c.expires = time.Time{}
}

func buildIndex(workers []Worker, at time.Time) *Index {
	idx := &Index{
		byID:      make(map[int]*Worker, len(workers)),
		byEmail:   make(map[string]*Worker, 2*len(workers)),
		byNameKey: make(map[string]*Worker, len(workers)),
		builtAt:   at,
	}
	for i := range workers {
		w := &workers[i]
		idx.byID[w.EmployeeID] = w
		if key := NormalizeEmail(w.Email); key != "" {
			idx.byEmail[key] = w
		}
		if key := NormalizeEmail(w.PersonalEmail); key != "" {
			if _, taken := idx.byEmail[key]; !taken {
				idx.byEmail[key] = w
			}
		}
		if key := NameKey(w.FullName); key != "" {
			idx.byNameKey[key] = w
		}
	}
	return idx
}

// BuiltAt reports when the snapshot was taken.
func (idx *Index) BuiltAt() time.Time { return idx.builtAt }

// Size reports how many directory records the snapshot holds.
func (idx *Index) Size() int { return len(idx.byID) }

// ByID looks a worker up by identifier.
func (idx *Index) ByID(employeeID int) *Worker {
	if employeeID == 0 {
		return nil
	}
	return idx.byID[employeeID]
}

// ByEmail looks a worker up by normalized email.
func (idx *Index) ByEmail(email string) *Worker {
	key := NormalizeEmail(email)
	if key == "" {
		return nil
	}
	return idx.byEmail[key]
}

// ByNameKey looks a worker up by the normalized full-name key. Last-resort
// join for legacy rows without identifiers.
func (idx *Index) ByNameKey(name string) *Worker {
	key := NameKey(name)
	if key == "" {
		return nil
	}
	return idx.byNameKey[key]
}

// Match resolves a worker through the fixed enrichment priority: identifier,
// official email, personal email, then name key. First hit wins.
func (idx *Index) Match(employeeID int, email, personalEmail, name string) *Worker {
	return resolve.First(
		func() *Worker { return idx.ByID(employeeID) },
		func() *Worker { return idx.ByEmail(email) },
		func() *Worker { return idx.ByEmail(personalEmail) },
		func() *Worker { return idx.ByNameKey(name) },
	)
}

// NormalizeEmail trims and lower-cases an address for index keys.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NameKey is the normalized full-name join key: trimmed, lower-cased, inner
// whitespace collapsed.
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
