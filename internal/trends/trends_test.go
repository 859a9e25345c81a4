package trends

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/irokhan/earth-trending/internal/geo"
)

func TestClientFetchTrending(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{
			"countries": [
				{"code": "JP", "name": "Japan", "lat": 36.6, "lon": 138.0,
				 "tracks": [{"rank": 1, "title": "Neon Orchard", "artist": "Mirador",
				             "plays": 120345, "listeners": ["203.0.113.9"]}]}
			],
			"count": 1,
			"server_time": 1755900000.0
		}`)
	}))
	defer server.Close()

	client := NewClient(&Config{
		BaseURL:      server.URL,
		PollInterval: time.Second,
		MaxCountries: 25,
	})

	countries, err := client.FetchTrending()
	if err != nil {
		t.Fatalf("FetchTrending: %v", err)
	}
	if gotPath != "/trending" {
		t.Fatalf("request path = %q, want /trending", gotPath)
	}
	if gotQuery != "limit=25" {
		t.Fatalf("first request query = %q, want limit=25", gotQuery)
	}
	if len(countries) != 1 || countries[0].Code != "JP" {
		t.Fatalf("unexpected snapshot: %+v", countries)
	}
	track := countries[0].Tracks[0]
	if track.Title != "Neon Orchard" || track.Plays != 120345 || len(track.Listeners) != 1 {
		t.Fatalf("unexpected track: %+v", track)
	}

	// Second poll carries the server time forward.
	if _, err := client.FetchTrending(); err != nil {
		t.Fatalf("second FetchTrending: %v", err)
	}
	if gotQuery != "limit=25&since=1755900000.0" {
		t.Fatalf("second request query = %q, want limit=25&since=1755900000.0", gotQuery)
	}
}

func TestClientFetchTrendingBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, MaxCountries: 10})
	if _, err := client.FetchTrending(); err == nil {
		t.Fatal("expected an error for a 503 response")
	}
}

func TestStoreIgnoresEmptyUpdate(t *testing.T) {
	store := NewStore()
	store.SetCountries([]CountryTrend{{Code: "SE", Name: "Sweden"}})
	store.SetCountries(nil)

	if store.Len() != 1 {
		t.Fatalf("empty update wiped the snapshot, Len = %d", store.Len())
	}
}

func TestStoreCountryCycles(t *testing.T) {
	store := NewStore()
	if _, ok := store.Country(0); ok {
		t.Fatal("empty store should report no country")
	}

	store.SetCountries([]CountryTrend{{Code: "US"}, {Code: "BR"}, {Code: "JP"}})

	cases := []struct {
		idx  int
		want string
	}{
		{0, "US"}, {2, "JP"}, {3, "US"}, {-1, "JP"}, {-4, "JP"},
	}
	for _, tc := range cases {
		got, ok := store.Country(tc.idx)
		if !ok || got.Code != tc.want {
			t.Errorf("Country(%d) = %q, want %q", tc.idx, got.Code, tc.want)
		}
	}
}

func TestStoreListeners(t *testing.T) {
	store := NewStore()
	store.SetListeners([]geo.GeoPoint{{Lat: 59.3, Lon: 18.1}})
	if got := store.Listeners(); len(got) != 1 || got[0].Lat != 59.3 {
		t.Fatalf("Listeners = %+v", got)
	}
}

func TestGenerateMock(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	countries := GenerateMock(rng)

	if len(countries) == 0 {
		t.Fatal("mock snapshot is empty")
	}
	for _, c := range countries {
		if c.Code == "" || c.Name == "" {
			t.Fatalf("mock country missing identity: %+v", c)
		}
		if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
			t.Fatalf("mock country %s has out-of-range coordinates", c.Code)
		}
		if len(c.Tracks) == 0 {
			t.Fatalf("mock country %s has no tracks", c.Code)
		}
		for i, track := range c.Tracks {
			if track.Rank != i+1 {
				t.Fatalf("mock country %s rank %d at position %d", c.Code, track.Rank, i)
			}
			if i > 0 && track.Plays > c.Tracks[i-1].Plays {
				t.Fatalf("mock country %s chart not descending", c.Code)
			}
		}
	}
}
