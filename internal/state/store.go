package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/shelfscan/shelfscan/internal/catalogapi"
)

// Catalog is one immutable version of the product list.
type Catalog struct {
	Products []catalogapi.Product
	Version  uint64
}

// Len returns the number of products in the catalog.
func (c Catalog) Len() int {
	return len(c.Products)
}

// Empty reports whether the catalog holds no products.
func (c Catalog) Empty() bool {
	return len(c.Products) == 0
}

// Snapshot represents the latest data available to readers.
type Snapshot struct {
	Catalog             Catalog
	Loaded              bool // at least one catalog was installed
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed loads
}

// IsOffline returns true when the catalog service has failed repeatedly.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent access to the current catalog version.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Replace installs products as the next catalog version. Products with an id
// already seen earlier in the list are dropped; the count is returned. The swap is
// atomic: readers observe either the old or the new version, never a mix.
func (s *Store) Replace(products []catalogapi.Product) (Catalog, int) {
	next, dropped := dedupe(products)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Catalog = Catalog{
		Products: next,
		Version:  s.snapshot.Catalog.Version + 1,
	}
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	return cloneCatalog(s.snapshot.Catalog), dropped
}

// RecordError notes a failed load. The current catalog is kept.
func (s *Store) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Catalog = cloneCatalog(s.snapshot.Catalog)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Catalog returns a copy of the current catalog version.
func (s *Store) Catalog() Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCatalog(s.snapshot.Catalog)
}

func cloneCatalog(c Catalog) Catalog {
	if len(c.Products) == 0 {
		return Catalog{Version: c.Version}
	}
	dup := make([]catalogapi.Product, len(c.Products))
	copy(dup, c.Products)
	return Catalog{Products: dup, Version: c.Version}
}

func dedupe(products []catalogapi.Product) ([]catalogapi.Product, int) {
	if len(products) == 0 {
		return nil, 0
	}
	seen := make(map[int64]struct{}, len(products))
	out := make([]catalogapi.Product, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, len(products) - len(out)
}
