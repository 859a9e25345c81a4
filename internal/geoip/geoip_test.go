package geoip

import (
	"fmt"
	"net"
	"testing"
)

func fakeLookup(calls *int) lookupFunc {
	return func(ip net.IP) (Location, error) {
		*calls++
		return Location{
			Country: "Testland",
			Lat:     float64(ip.To4()[3]),
			Lon:     10,
			Valid:   true,
		}, nil
	}
}

func TestLookupIPCaches(t *testing.T) {
	calls := 0
	r := newResolver(fakeLookup(&calls), 10)

	first := r.LookupIP("192.0.2.7")
	second := r.LookupIP("192.0.2.7")

	if !first.Valid || first.Lat != 7 {
		t.Fatalf("first lookup = %+v", first)
	}
	if second != first {
		t.Fatalf("cached lookup differs: %+v vs %+v", second, first)
	}
	if calls != 1 {
		t.Fatalf("database consulted %d times, want 1", calls)
	}
	if size, max := r.CacheStats(); size != 1 || max != 10 {
		t.Fatalf("CacheStats = (%d, %d), want (1, 10)", size, max)
	}
}

func TestLookupIPEvictsOldest(t *testing.T) {
	calls := 0
	r := newResolver(fakeLookup(&calls), 3)

	for i := 1; i <= 3; i++ {
		r.LookupIP(fmt.Sprintf("192.0.2.%d", i))
	}
	// Touch the oldest entry so .2 becomes the eviction candidate.
	r.LookupIP("192.0.2.1")
	// Overflow the cache.
	r.LookupIP("192.0.2.4")

	calls = 0
	r.LookupIP("192.0.2.1")
	r.LookupIP("192.0.2.3")
	r.LookupIP("192.0.2.4")
	if calls != 0 {
		t.Fatalf("retained entries missed the cache %d times", calls)
	}

	r.LookupIP("192.0.2.2")
	if calls != 1 {
		t.Fatalf("evicted entry should hit the database, calls = %d", calls)
	}
}

func TestLookupIPUnparseable(t *testing.T) {
	calls := 0
	r := newResolver(fakeLookup(&calls), 10)

	if loc := r.LookupIP("not-an-ip"); loc.Valid {
		t.Fatalf("unparseable address resolved: %+v", loc)
	}
	if calls != 0 {
		t.Fatalf("database consulted for an unparseable address")
	}
}

func TestLookupIPInvalidNotCached(t *testing.T) {
	r := newResolver(func(ip net.IP) (Location, error) {
		return Location{}, nil // no fix
	}, 10)

	if loc := r.LookupIP("192.0.2.50"); loc.Valid {
		t.Fatalf("expected invalid location, got %+v", loc)
	}
	if size, _ := r.CacheStats(); size != 0 {
		t.Fatalf("invalid lookups must not be cached, size = %d", size)
	}
}

func TestNilResolver(t *testing.T) {
	var r *Resolver
	if loc := r.LookupIP("192.0.2.1"); loc.Valid {
		t.Fatalf("nil resolver resolved %+v", loc)
	}
	if size, max := r.CacheStats(); size != 0 || max != 0 {
		t.Fatalf("nil resolver CacheStats = (%d, %d)", size, max)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("nil resolver Close: %v", err)
	}
}
