package state

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/shelfscan/shelfscan/internal/catalogapi"
)

func products(ids ...int64) []catalogapi.Product {
	out := make([]catalogapi.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalogapi.Product{ID: id, Name: "p"})
	}
	return out
}

func TestStore_ReplaceAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	catalog, dropped := s.Replace(products(1, 2))
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if catalog.Version != 1 || catalog.Len() != 2 {
		t.Fatalf("Replace returned %#v, want version 1 with 2 products", catalog)
	}

	snap := s.Snapshot()
	if !snap.Loaded {
		t.Fatalf("Loaded = false, want true")
	}
	if snap.Catalog.Len() != 2 || snap.Catalog.Products[0].ID != 1 {
		t.Fatalf("snapshot catalog = %#v, want 2 items", snap.Catalog)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Catalog.Products[0].ID = 999
	snap2 := s.Snapshot()
	if snap2.Catalog.Products[0].ID != 1 {
		t.Fatalf("Snapshot should clone products; got id %d want 1", snap2.Catalog.Products[0].ID)
	}
}

func TestStore_ReplaceDoesNotAliasInput(t *testing.T) {
	var s Store
	in := products(1, 2)
	s.Replace(in)
	in[0].Name = "mutated"
	if got := s.Catalog().Products[0].Name; got != "p" {
		t.Fatalf("catalog product name = %q, want p (input must not alias)", got)
	}
}

func TestStore_ReplaceBumpsVersionWholesale(t *testing.T) {
	var s Store
	s.Replace(products(1, 2, 3))
	catalog, _ := s.Replace(products(7))

	if catalog.Version != 2 {
		t.Fatalf("Version = %d, want 2", catalog.Version)
	}
	got := s.Catalog()
	if got.Len() != 1 || got.Products[0].ID != 7 {
		t.Fatalf("catalog = %#v, want only id 7", got)
	}
}

func TestStore_ReplaceDropsDuplicateIDs(t *testing.T) {
	var s Store
	in := products(1, 2, 1, 3, 2)
	in[2].Name = "duplicate"

	catalog, dropped := s.Replace(in)
	if dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}
	ids := make([]int64, 0, catalog.Len())
	for _, p := range catalog.Products {
		ids = append(ids, p.ID)
		if p.Name == "duplicate" {
			t.Fatalf("later duplicate kept; first occurrence should win")
		}
	}
	if !reflect.DeepEqual(ids, []int64{1, 2, 3}) {
		t.Fatalf("ids = %v, want [1 2 3]", ids)
	}
}

func TestStore_RecordErrorKeepsPreviousCatalog(t *testing.T) {
	var s Store

	s.Replace(products(1))
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.RecordError(origErr)

	snap := s.Snapshot()
	if snap.Catalog.Version != prev.Catalog.Version || snap.Catalog.Len() != 1 {
		t.Fatalf("catalog changed on error: got %#v want %#v", snap.Catalog, prev.Catalog)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("cloned error should still wrap the original")
	}
}

func TestStore_RecordNilErrorIsIgnored(t *testing.T) {
	var s Store
	s.RecordError(nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || !snap.LastUpdated.IsZero() {
		t.Fatalf("RecordError(nil) changed snapshot: %#v", snap)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.RecordError(errors.New("fail 1"))
	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 1 failure")
	}

	s.RecordError(errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: %d offline=%v, want 2 true", snap.ConsecutiveFailures, snap.IsOffline())
	}

	// Success resets counter
	s.Replace(products(1))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: %d offline=%v, want 0 false", snap.ConsecutiveFailures, snap.IsOffline())
	}
}

func TestStore_ReadersNeverSeeMixedVersions(t *testing.T) {
	var s Store
	s.Replace(products(1, 2, 3))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				s.Replace(products(10, 11))
			} else {
				s.Replace(products(1, 2, 3))
			}
		}
		close(stop)
	}()

	for {
		select {
		case <-stop:
			wg.Wait()
			return
		default:
		}
		c := s.Catalog()
		switch c.Len() {
		case 2:
			if c.Products[0].ID != 10 || c.Products[1].ID != 11 {
				t.Fatalf("torn catalog: %#v", c.Products)
			}
		case 3:
			if c.Products[0].ID != 1 || c.Products[2].ID != 3 {
				t.Fatalf("torn catalog: %#v", c.Products)
			}
		default:
			t.Fatalf("unexpected catalog size %d", c.Len())
		}
	}
}
