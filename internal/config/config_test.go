package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.PollInterval() != 30*time.Second {
		t.Fatalf("default poll interval = %s", cfg.PollInterval())
	}

	opts := cfg.DotOptions()
	if opts.Density != 2.5 || opts.Tolerance != 0.6 || opts.SphereRadius != 20 {
		t.Fatalf("default dot options = %+v", opts)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[feed]
base_url = "http://localhost:5000/api"
poll_interval = "5s"

[display]
charset = "braille"
rotation_period = 60

[globe]
density = 3.0
raster_path = "maps/mask.png"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Feed.BaseURL != "http://localhost:5000/api" {
		t.Errorf("feed.base_url = %q", cfg.Feed.BaseURL)
	}
	if cfg.PollInterval() != 5*time.Second {
		t.Errorf("poll interval = %s", cfg.PollInterval())
	}
	if cfg.Display.Charset != "braille" || cfg.Display.RotationPeriod != 60 {
		t.Errorf("display = %+v", cfg.Display)
	}
	if cfg.Globe.Density != 3.0 || cfg.Globe.RasterPath != "maps/mask.png" {
		t.Errorf("globe = %+v", cfg.Globe)
	}
	// Untouched fields keep their defaults.
	if cfg.Display.RefreshRate != 100 || cfg.Globe.Tolerance != 0.6 {
		t.Errorf("defaults lost: refresh=%d tolerance=%g",
			cfg.Display.RefreshRate, cfg.Globe.Tolerance)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Feed.MaxCountries != 25 {
		t.Fatalf("expected defaults, got %+v", cfg.Feed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.toml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Feed.PollInterval = "soon"
	cfg.Display.Charset = "emoji"
	cfg.Display.RotationPeriod = 5
	cfg.Globe.Density = -1
	cfg.Globe.LandThreshold = 600

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{
		"poll_interval", "charset", "rotation_period", "density", "land_threshold",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error missing %q: %v", want, err)
		}
	}
}
