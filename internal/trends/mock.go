package trends

import (
	"fmt"
	"math/rand"
)

// Canned countries for the offline fallback, centroids good enough for a
// terminal globe.
var mockCountries = []CountryTrend{
	{Code: "US", Name: "United States", Lat: 39.8, Lon: -98.6},
	{Code: "BR", Name: "Brazil", Lat: -10.8, Lon: -52.9},
	{Code: "GB", Name: "United Kingdom", Lat: 54.0, Lon: -2.9},
	{Code: "DE", Name: "Germany", Lat: 51.1, Lon: 10.4},
	{Code: "NG", Name: "Nigeria", Lat: 9.1, Lon: 8.7},
	{Code: "IN", Name: "India", Lat: 22.0, Lon: 79.0},
	{Code: "JP", Name: "Japan", Lat: 36.6, Lon: 138.0},
	{Code: "AU", Name: "Australia", Lat: -25.7, Lon: 134.5},
	{Code: "MX", Name: "Mexico", Lat: 23.9, Lon: -102.5},
	{Code: "SE", Name: "Sweden", Lat: 62.8, Lon: 16.7},
	{Code: "ZA", Name: "South Africa", Lat: -29.0, Lon: 25.1},
	{Code: "KR", Name: "South Korea", Lat: 36.4, Lon: 127.8},
}

var mockTitles = []string{
	"Midnight Static", "Paper Planes Home", "Glasshouse", "Northbound",
	"Violet Hour", "Satellite Heart", "Low Tide", "Neon Orchard",
	"Afterglow Avenue", "Second Summer", "Wired Awake", "Salt & Smoke",
	"Harbour Lights", "Restless Signal", "Golden Static", "Long Way Down",
}

var mockArtists = []string{
	"The Antimeridians", "Klara Voss", "Night Bus Choir", "Okafor",
	"Lumen & Ash", "Ferry Tales", "DJ Parallax", "The Small Hours",
	"Mirador", "Ada North", "Copper Veins", "Saturday Arcade",
}

// GenerateMock fabricates a plausible snapshot so the demo runs when the
// feed is unreachable.
func GenerateMock(rng *rand.Rand) []CountryTrend {
	countries := make([]CountryTrend, len(mockCountries))
	copy(countries, mockCountries)

	for i := range countries {
		n := 5 + rng.Intn(5)
		tracks := make([]Track, n)
		plays := 500000 + rng.Intn(1500000)
		for j := range tracks {
			tracks[j] = Track{
				Rank:      j + 1,
				Title:     mockTitles[rng.Intn(len(mockTitles))],
				Artist:    mockArtists[rng.Intn(len(mockArtists))],
				Plays:     plays,
				Listeners: mockListenerIPs(rng, 1+rng.Intn(3)),
			}
			// Keep the chart monotonically decreasing.
			plays -= rng.Intn(plays/n + 1)
			if plays < 1000 {
				plays = 1000
			}
		}
		countries[i].Tracks = tracks
	}

	return countries
}

func mockListenerIPs(rng *rand.Rand, n int) []string {
	ips := make([]string, n)
	for i := range ips {
		ips[i] = fmt.Sprintf("%d.%d.%d.%d",
			1+rng.Intn(223), rng.Intn(256), rng.Intn(256), 1+rng.Intn(254))
	}
	return ips
}
