package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/irokhan/earth-trending/internal/config"
	"github.com/irokhan/earth-trending/internal/dotfield"
	"github.com/irokhan/earth-trending/internal/geo"
	"github.com/irokhan/earth-trending/internal/geoip"
	"github.com/irokhan/earth-trending/internal/mask"
	"github.com/irokhan/earth-trending/internal/trends"
	"github.com/irokhan/earth-trending/internal/tui"
)

// Cap on listener markers per snapshot so a busy feed cannot flood the
// globe.
const maxListenerMarkers = 500

var debugLogger *log.Logger

func debugLog(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf(format, v...)
	}
}

func showHelp() {
	fmt.Printf(`earth-trending - terminal globe of per-country trending music

DESCRIPTION:
    Renders a rotating dot-field globe built from an equirectangular land
    raster, marks countries that have trend data, and shows the selected
    country's trending tracks in a story card. Listener positions resolved
    from a local GeoIP database appear as markers on the globe.

USAGE:
    earth-trending [OPTIONS]

OPTIONS:
    -h               Show this help message
    -c <file>        Config file (TOML)
    -d <filename>    Enable debug logging to specified file
    -s <seconds>     Globe rotation period in seconds (10-300, default: 30)
    -r <milliseconds> Globe refresh rate in milliseconds (50-1000, default: 100)
    -m               Monochrome mode (all colors set to white)
    -a <ratio>       Character aspect ratio (height/width, 1.0-4.0, default: 2.0)
    -u <url>         Base URL for the trending feed
    -p <duration>    Feed polling interval (1s-300s, default: 30s)
    -g <file>        Land raster PNG, 360x180 (default: assets/land_mask.png)

CONTROLS:
    Left/Right, h/l, Space    Cycle the selected country
    Q, X, Esc                 Exit

NOTES:
    Mock trend data is generated while the feed is unavailable.
    Without the land raster the globe renders without surface dots.
    Without a GeoIP database listener markers are simply omitted.

EXAMPLES:
    earth-trending                      # defaults
    earth-trending -s 60                # slower rotation
    earth-trending -c earth.toml -d debug.log
    earth-trending -u http://localhost:5000/api -p 5s
`)
}

func main() {
	var configPath = flag.String("c", "", "Config file (TOML)")
	var debugFile = flag.String("d", "", "Debug log filename")
	var showHelpFlag = flag.Bool("h", false, "Show help")
	var rotationPeriod = flag.Int("s", 30, "Globe rotation period in seconds (10-300)")
	var refreshRate = flag.Int("r", 100, "Globe refresh rate in milliseconds (50-1000)")
	var monochrome = flag.Bool("m", false, "Monochrome mode")
	_ = monochrome // handled by name in flag.Visit below
	var aspectRatio = flag.Float64("a", 2.0, "Character aspect ratio (height/width, 1.0-4.0)")
	var baseURL = flag.String("u", "", "Base URL for the trending feed")
	var pollInterval = flag.Duration("p", 0, "Feed polling interval")
	var rasterPath = flag.String("g", "", "Land raster PNG (360x180)")

	flag.Parse()

	if *showHelpFlag {
		showHelp()
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s":
			cfg.Display.RotationPeriod = *rotationPeriod
		case "r":
			cfg.Display.RefreshRate = *refreshRate
		case "a":
			cfg.Display.AspectRatio = *aspectRatio
		case "u":
			cfg.Feed.BaseURL = *baseURL
		case "p":
			cfg.Feed.PollInterval = pollInterval.String()
		case "g":
			cfg.Globe.RasterPath = *rasterPath
		case "m":
			cfg.Display.Theme = "mono"
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *debugFile != "" {
		file, err := os.OpenFile(*debugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Cannot open debug log file '%s': %v\n", *debugFile, err)
			os.Exit(1)
		}
		defer file.Close()
		debugLogger = log.New(file, "", log.LstdFlags|log.Lmicroseconds)
		debugLog("Debug logging started for earth-trending")
	}

	// Build the dot field once. A missing or undecodable raster skips dot
	// generation entirely and the globe renders bare; a wrong-sized raster
	// is a configuration mistake and stops startup.
	var dots []dotfield.DotRecord
	landMask, err := mask.Load(cfg.Globe.RasterPath, uint8(cfg.Globe.LandThreshold))
	switch {
	case errors.Is(err, mask.ErrInvalidRasterDimensions):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	case err != nil:
		debugLog("Mask: %v, rendering without surface dots", err)
	default:
		dots = dotfield.Generate(landMask, cfg.DotOptions())
		debugLog("Mask: %d land samples -> %d dots", landMask.LandCount(), len(dots))
	}

	resolver, err := geoip.Open(cfg.GeoIP.DatabasePath)
	if err != nil {
		debugLog("GeoIP: %v, listener markers disabled", err)
		resolver = nil
	}
	defer resolver.Close()

	store := trends.NewStore()
	client := trends.NewClient(&trends.Config{
		BaseURL:      cfg.Feed.BaseURL,
		PollInterval: cfg.PollInterval(),
		MaxCountries: cfg.Feed.MaxCountries,
	})

	t, err := tui.New(store, dots, tui.Options{
		Theme:        cfg.Display.Theme,
		Charset:      cfg.Display.Charset,
		AspectRatio:  cfg.Display.AspectRatio,
		SphereRadius: cfg.Globe.SphereRadius,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing TUI: %v\n", err)
		os.Exit(1)
	}
	defer t.Close()

	t.SetStatus(false, resolver != nil)
	quit := t.PollEvents()

	startFeedPoller(client, store, resolver, t)

	startTime := time.Now()
	lastGlobeUpdate := time.Now()
	refresh := time.Duration(cfg.Display.RefreshRate) * time.Millisecond
	period := float64(cfg.Display.RotationPeriod)

	for {
		select {
		case <-quit:
			debugLog("Quit signal received, shutting down")
			t.Close()
			fmt.Println("Exiting...")
			os.Exit(0)
		default:
		}

		now := time.Now()
		if now.Sub(lastGlobeUpdate) >= refresh {
			t.MarkGlobeChanged()
			lastGlobeUpdate = now
		}

		elapsed := now.Sub(startTime).Seconds()
		rotation := -(elapsed / period) * 2 * math.Pi

		t.Render(rotation)
		time.Sleep(50 * time.Millisecond)
	}
}

// startFeedPoller polls the trending feed in the background, falling back to
// mock data while the feed is down, and keeps the store and status
// indicators current.
func startFeedPoller(client *trends.Client, store *trends.Store, resolver *geoip.Resolver, t *tui.TUI) {
	go func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		poll := func() {
			countries, err := client.FetchTrending()
			connected := err == nil
			if err != nil {
				debugLog("Feed: fetch failed: %v", err)
				if store.Len() == 0 {
					store.SetCountries(trends.GenerateMock(rng))
					debugLog("Feed: using mock trend data")
				}
			} else {
				debugLog("Feed: %d countries", len(countries))
				store.SetCountries(countries)
			}

			if resolver != nil {
				store.SetListeners(resolveListeners(resolver, store.Countries()))
			}

			t.SetStatus(connected, resolver != nil)
			t.MarkGlobeChanged()
			t.MarkPanelChanged()
		}

		poll()
		ticker := time.NewTicker(client.PollInterval())
		defer ticker.Stop()
		for range ticker.C {
			poll()
		}
	}()
}

// resolveListeners maps the snapshot's listener IP samples to coordinates.
func resolveListeners(resolver *geoip.Resolver, countries []trends.CountryTrend) []geo.GeoPoint {
	var points []geo.GeoPoint
	for _, country := range countries {
		for _, track := range country.Tracks {
			for _, ip := range track.Listeners {
				if len(points) >= maxListenerMarkers {
					return points
				}
				if loc := resolver.LookupIP(ip); loc.Valid {
					points = append(points, geo.GeoPoint{Lat: loc.Lat, Lon: loc.Lon})
				}
			}
		}
	}
	return points
}
