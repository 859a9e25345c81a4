// Package config loads the TOML configuration file and applies defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/irokhan/earth-trending/internal/dotfield"
	"github.com/irokhan/earth-trending/internal/mask"
)

// Config holds all application settings.
type Config struct {
	Feed struct {
		BaseURL      string `toml:"base_url"`
		PollInterval string `toml:"poll_interval"`
		MaxCountries int    `toml:"max_countries"`
	} `toml:"feed"`

	Display struct {
		Theme          string  `toml:"theme"`
		Charset        string  `toml:"charset"`
		RotationPeriod int     `toml:"rotation_period"`
		RefreshRate    int     `toml:"refresh_rate"`
		AspectRatio    float64 `toml:"aspect_ratio"`
	} `toml:"display"`

	Globe struct {
		RasterPath    string  `toml:"raster_path"`
		LandThreshold int     `toml:"land_threshold"`
		Density       float64 `toml:"density"`
		Tolerance     float64 `toml:"tolerance"`
		SphereRadius  float64 `toml:"sphere_radius"`
	} `toml:"globe"`

	GeoIP struct {
		DatabasePath string `toml:"database_path"`
	} `toml:"geoip"`
}

// Default returns the reference configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Feed.BaseURL = "https://feeds.earth-trending.net/api"
	cfg.Feed.PollInterval = "30s"
	cfg.Feed.MaxCountries = 25
	cfg.Display.Theme = "default"
	cfg.Display.Charset = "ascii"
	cfg.Display.RotationPeriod = 30
	cfg.Display.RefreshRate = 100
	cfg.Display.AspectRatio = 2.0
	cfg.Globe.RasterPath = "assets/land_mask.png"
	cfg.Globe.LandThreshold = mask.DefaultLandThreshold
	cfg.Globe.Density = dotfield.DefaultDensity
	cfg.Globe.Tolerance = dotfield.DefaultTolerance
	cfg.Globe.SphereRadius = dotfield.DefaultSphereRadius
	return cfg
}

// Load reads the TOML file at path over the defaults. An empty path returns
// the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// PollInterval parses the feed poll interval. Call Validate first.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Feed.PollInterval)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// DotOptions returns the generator tuning from the globe table.
func (c *Config) DotOptions() dotfield.Options {
	return dotfield.Options{
		SphereRadius: c.Globe.SphereRadius,
		Density:      c.Globe.Density,
		Tolerance:    c.Globe.Tolerance,
	}
}

// Validate checks every field and reports all violations at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Feed.BaseURL == "" {
		errs = append(errs, "feed.base_url is required")
	}
	if d, err := time.ParseDuration(c.Feed.PollInterval); err != nil {
		errs = append(errs, fmt.Sprintf("feed.poll_interval is not a duration: %v", err))
	} else if d < time.Second || d > 300*time.Second {
		errs = append(errs, fmt.Sprintf("feed.poll_interval must be 1s-300s, got %s", d))
	}
	if c.Feed.MaxCountries < 1 || c.Feed.MaxCountries > 250 {
		errs = append(errs, fmt.Sprintf("feed.max_countries must be 1-250, got %d", c.Feed.MaxCountries))
	}

	switch c.Display.Theme {
	case "default", "mono":
	default:
		errs = append(errs, fmt.Sprintf("display.theme must be default or mono, got %q", c.Display.Theme))
	}
	switch c.Display.Charset {
	case "ascii", "blocks", "braille":
	default:
		errs = append(errs, fmt.Sprintf("display.charset must be ascii, blocks, or braille, got %q", c.Display.Charset))
	}
	if c.Display.RotationPeriod < 10 || c.Display.RotationPeriod > 300 {
		errs = append(errs, fmt.Sprintf("display.rotation_period must be 10-300 seconds, got %d", c.Display.RotationPeriod))
	}
	if c.Display.RefreshRate < 50 || c.Display.RefreshRate > 1000 {
		errs = append(errs, fmt.Sprintf("display.refresh_rate must be 50-1000 milliseconds, got %d", c.Display.RefreshRate))
	}
	if c.Display.AspectRatio < 1.0 || c.Display.AspectRatio > 4.0 {
		errs = append(errs, fmt.Sprintf("display.aspect_ratio must be 1.0-4.0, got %g", c.Display.AspectRatio))
	}

	if c.Globe.LandThreshold < 0 || c.Globe.LandThreshold > 255 {
		errs = append(errs, fmt.Sprintf("globe.land_threshold must be 0-255, got %d", c.Globe.LandThreshold))
	}
	if c.Globe.Density <= 0 {
		errs = append(errs, fmt.Sprintf("globe.density must be positive, got %g", c.Globe.Density))
	}
	if c.Globe.Tolerance < 0 {
		errs = append(errs, fmt.Sprintf("globe.tolerance must not be negative, got %g", c.Globe.Tolerance))
	}
	if c.Globe.SphereRadius <= 0 {
		errs = append(errs, fmt.Sprintf("globe.sphere_radius must be positive, got %g", c.Globe.SphereRadius))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
