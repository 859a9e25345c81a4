// Package geoip resolves listener IP addresses against a local MaxMind
// database, with a bounded LRU cache in front of the reader.
package geoip

import (
	"fmt"
	"net"
	"sync"

	"github.com/oschwald/geoip2-golang"
)

// Location is a resolved IP position. Valid is false for addresses the
// database cannot place.
type Location struct {
	City    string
	Country string
	Lat     float64
	Lon     float64
	Valid   bool
}

type lookupFunc func(ip net.IP) (Location, error)

// Resolver caches lookups against a GeoLite2/GeoIP2 database. A nil
// Resolver is usable and resolves nothing, so callers can run without a
// database on disk.
type Resolver struct {
	lookup   lookupFunc
	reader   *geoip2.Reader
	cache    map[string]Location
	order    []string // front = most recently used
	maxCache int
	mutex    sync.RWMutex
}

// Open loads the database at path.
func Open(path string) (*Resolver, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database %s: %w", path, err)
	}

	r := newResolver(func(ip net.IP) (Location, error) {
		record, err := reader.City(ip)
		if err != nil {
			return Location{}, err
		}
		loc := Location{
			City:    record.City.Names["en"],
			Country: record.Country.Names["en"],
			Lat:     record.Location.Latitude,
			Lon:     record.Location.Longitude,
		}
		// A zeroed location means the database has no fix for this address.
		loc.Valid = loc.Lat != 0 || loc.Lon != 0
		return loc, nil
	}, 2000)
	r.reader = reader
	return r, nil
}

func newResolver(lookup lookupFunc, maxCache int) *Resolver {
	return &Resolver{
		lookup:   lookup,
		cache:    make(map[string]Location),
		maxCache: maxCache,
	}
}

// Close releases the underlying database.
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}

// LookupIP resolves one address, consulting the cache first. Unparseable
// addresses and database misses come back invalid and are not cached.
func (r *Resolver) LookupIP(ipStr string) Location {
	if r == nil {
		return Location{}
	}

	r.mutex.RLock()
	cached, hit := r.cache[ipStr]
	r.mutex.RUnlock()
	if hit {
		r.moveToFront(ipStr)
		return cached
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return Location{}
	}

	loc, err := r.lookup(ip)
	if err != nil || !loc.Valid {
		return Location{}
	}

	r.addToCache(ipStr, loc)
	return loc
}

// CacheStats returns the current and maximum cache sizes.
func (r *Resolver) CacheStats() (int, int) {
	if r == nil {
		return 0, 0
	}
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.cache), r.maxCache
}

func (r *Resolver) addToCache(ipStr string, loc Location) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(r.cache) >= r.maxCache {
		r.evictOldest()
	}

	r.cache[ipStr] = loc
	r.order = append([]string{ipStr}, r.order...)
}

func (r *Resolver) moveToFront(ipStr string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, ip := range r.order {
		if ip == ipStr {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.order = append([]string{ipStr}, r.order...)
}

// evictOldest removes the least recently used entry. Caller holds the write
// lock.
func (r *Resolver) evictOldest() {
	if len(r.order) == 0 {
		return
	}
	oldest := r.order[len(r.order)-1]
	delete(r.cache, oldest)
	r.order = r.order[:len(r.order)-1]
}
