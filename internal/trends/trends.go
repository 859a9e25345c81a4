// Package trends fetches and holds per-country trending-track data.
package trends

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/irokhan/earth-trending/internal/geo"
)

// Track is one entry on a country's trending chart. Listeners carries a
// small sample of listener IP addresses provided by the feed backend.
type Track struct {
	Rank      int      `json:"rank"`
	Title     string   `json:"title"`
	Artist    string   `json:"artist"`
	Plays     int      `json:"plays"`
	Listeners []string `json:"listeners"`
}

// CountryTrend is a country's chart plus the coordinate its marker sits at.
type CountryTrend struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Tracks []Track `json:"tracks"`
}

type feedResponse struct {
	Countries  []CountryTrend `json:"countries"`
	Count      int            `json:"count"`
	ServerTime float64        `json:"server_time"`
}

// Config holds feed client settings.
type Config struct {
	BaseURL      string
	PollInterval time.Duration
	MaxCountries int
}

// Client polls the trending feed.
type Client struct {
	config         *Config
	httpClient     *http.Client
	lastServerTime float64
}

func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// PollInterval returns how often the feed should be polled.
func (c *Client) PollInterval() time.Duration {
	return c.config.PollInterval
}

// FetchTrending requests the latest charts. The since parameter lets the
// backend skip work when nothing changed; an empty country list with a newer
// server time means "no update".
func (c *Client) FetchTrending() ([]CountryTrend, error) {
	url := fmt.Sprintf("%s/trending?limit=%d",
		strings.TrimSuffix(c.config.BaseURL, "/"), c.config.MaxCountries)
	if c.lastServerTime > 0 {
		url = fmt.Sprintf("%s&since=%.1f", url, c.lastServerTime)
	}

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get trending feed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed request failed: status %d", resp.StatusCode)
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %v", err)
	}

	if feed.ServerTime > c.lastServerTime {
		c.lastServerTime = feed.ServerTime
	}

	return feed.Countries, nil
}

// Store holds the latest feed snapshot plus the resolved listener positions
// for the renderer. All access is guarded; readers get copies of the slice
// headers, never the lock.
type Store struct {
	countries []CountryTrend
	listeners []geo.GeoPoint
	updated   time.Time
	mutex     sync.RWMutex
}

func NewStore() *Store {
	return &Store{}
}

// SetCountries replaces the snapshot. Empty updates are ignored so a
// "nothing changed" poll does not blank the story card.
func (s *Store) SetCountries(countries []CountryTrend) {
	if len(countries) == 0 {
		return
	}
	s.mutex.Lock()
	s.countries = countries
	s.updated = time.Now()
	s.mutex.Unlock()
}

// SetListeners replaces the resolved listener positions.
func (s *Store) SetListeners(points []geo.GeoPoint) {
	s.mutex.Lock()
	s.listeners = points
	s.mutex.Unlock()
}

// Countries returns the current snapshot.
func (s *Store) Countries() []CountryTrend {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.countries
}

// Listeners returns the current listener positions.
func (s *Store) Listeners() []geo.GeoPoint {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.listeners
}

// Country returns the snapshot entry at index i modulo the snapshot length,
// so a selection cursor can cycle freely.
func (s *Store) Country(i int) (CountryTrend, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if len(s.countries) == 0 {
		return CountryTrend{}, false
	}
	i %= len(s.countries)
	if i < 0 {
		i += len(s.countries)
	}
	return s.countries[i], true
}

// Len returns the number of countries in the snapshot.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.countries)
}

// Updated reports when the snapshot last changed.
func (s *Store) Updated() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.updated
}
