package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jeslor/globe-with-connecting-cities/pkg/catalog"
	"github.com/jeslor/globe-with-connecting-cities/pkg/flights"
	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
)

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the complete application configuration.
// Configuration is loaded from a JSON file and then overridden from the
// environment and an optional .env file next to it.
type Config struct {
	Globe   GlobeConfig   `json:"globe"`
	Flights FlightsConfig `json:"flights"`
	Render  RenderConfig  `json:"render"`
	Camera  CameraConfig  `json:"camera"`
	Log     LogConfig     `json:"log"`
}

// GlobeConfig describes the globe and the cities on it.
type GlobeConfig struct {
	// Tiers maps viewport width to globe radius. A tier with max_width 0
	// covers every width above the others.
	Tiers []geo.Tier `json:"tiers"`

	// ArcHeight is how far above the surface an arc's control point sits
	ArcHeight float64 `json:"arc_height"`

	// ArcSamples is the number of points sampled along each arc
	ArcSamples int `json:"arc_samples"`

	// Cities replaces the built-in city list when not empty
	Cities []CityConfig `json:"cities,omitempty"`
}

// CityConfig is a named location on the globe.
type CityConfig struct {
	// Name must be unique
	Name string `json:"name"`

	// Latitude in decimal degrees (-90 to +90)
	Latitude float64 `json:"latitude"`

	// Longitude in decimal degrees (-180 to +180)
	Longitude float64 `json:"longitude"`
}

// FlightsConfig tunes the flight animation.
type FlightsConfig struct {
	// MaxActive is the number of flights kept on screen
	MaxActive int `json:"max_active"`

	// FadeInSeconds is how long a new arc takes to become fully opaque
	FadeInSeconds float64 `json:"fade_in_seconds"`

	// FadeOutSeconds is how long a finished arc takes to disappear
	FadeOutSeconds float64 `json:"fade_out_seconds"`

	// MinDurationSeconds and MaxDurationSeconds bound the random draw time of an arc
	MinDurationSeconds float64 `json:"min_duration_seconds"`
	MaxDurationSeconds float64 `json:"max_duration_seconds"`

	// MaxDeltaSeconds caps the time step of a single frame.
	// Long stalls (suspended terminal, debugger) advance at most this much.
	MaxDeltaSeconds float64 `json:"max_delta_seconds"`
}

// RenderConfig controls the terminal renderer.
type RenderConfig struct {
	// FPS is the target frame rate
	FPS int `json:"fps"`

	// Stars is the number of background stars
	Stars int `json:"stars"`

	// ShowLabels draws city names next to visible cities
	ShowLabels bool `json:"show_labels"`

	// Seed makes a run reproducible. 0 seeds from the clock.
	Seed int64 `json:"seed"`
}

// CameraConfig controls the orbiting camera.
type CameraConfig struct {
	// AutoRotate drifts the camera around the globe when idle
	AutoRotate bool `json:"auto_rotate"`

	// AutoRotateSpeed is in turns per minute
	AutoRotateSpeed float64 `json:"auto_rotate_speed"`

	// ResumeAfterSeconds is the idle time after a manual move before drifting again
	ResumeAfterSeconds float64 `json:"resume_after_seconds"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `json:"level"`

	// File is the log file path. The terminal is owned by the UI, so logs
	// never go to stdout.
	File string `json:"file"`

	// MaxSizeMB is the size at which the log file is rotated
	MaxSizeMB int `json:"max_size_mb"`

	// MaxBackups is the number of rotated files kept
	MaxBackups int `json:"max_backups"`
}

// Load reads configuration from a JSON file.
// If the file doesn't exist, the default configuration is used.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	dotenv, err := readDotEnv(filepath.Join(filepath.Dir(path), ".env"))
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnvironmentOverrides(envLookup(dotenv)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	p := flights.DefaultParams()

	tiers := make([]geo.Tier, len(geo.DefaultTiers))
	copy(tiers, geo.DefaultTiers)

	return &Config{
		Globe: GlobeConfig{
			Tiers:      tiers,
			ArcHeight:  p.ArcHeight,
			ArcSamples: p.ArcSamples,
		},
		Flights: FlightsConfig{
			MaxActive:          p.MaxActive,
			FadeInSeconds:      p.FadeIn,
			FadeOutSeconds:     p.FadeOut,
			MinDurationSeconds: p.MinDuration,
			MaxDurationSeconds: p.MaxDuration,
			MaxDeltaSeconds:    p.MaxDelta,
		},
		Render: RenderConfig{
			FPS:        30,
			Stars:      500,
			ShowLabels: true,
		},
		Camera: CameraConfig{
			AutoRotate:         true,
			AutoRotateSpeed:    0.5,
			ResumeAfterSeconds: 2,
		},
		Log: LogConfig{
			Level:      "info",
			File:       "globe.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// FlightParams converts the flight and arc settings for the flight manager.
func (c *Config) FlightParams() flights.Params {
	return flights.Params{
		MaxActive:   c.Flights.MaxActive,
		FadeIn:      c.Flights.FadeInSeconds,
		FadeOut:     c.Flights.FadeOutSeconds,
		MinDuration: c.Flights.MinDurationSeconds,
		MaxDuration: c.Flights.MaxDurationSeconds,
		MaxDelta:    c.Flights.MaxDeltaSeconds,
		ArcHeight:   c.Globe.ArcHeight,
		ArcSamples:  c.Globe.ArcSamples,
	}
}

// Entries returns the configured cities, or the built-in list when none
// are configured.
func (c *Config) Entries() []catalog.Entry {
	if len(c.Globe.Cities) == 0 {
		return catalog.DefaultEntries
	}
	entries := make([]catalog.Entry, len(c.Globe.Cities))
	for i, city := range c.Globe.Cities {
		entries[i] = catalog.Entry{
			Name: city.Name,
			Geo:  geo.GeoPoint{Lat: city.Latitude, Lon: city.Longitude},
		}
	}
	return entries
}

// Catalog builds the city catalog projected at radius.
func (c *Config) Catalog(radius float64) (*catalog.Catalog, error) {
	return catalog.New(radius, c.Entries())
}

// Validate checks that the configuration can drive the globe.
func (c *Config) Validate() error {
	if err := c.FlightParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(c.Globe.Tiers) == 0 {
		return fmt.Errorf("%w: at least one globe tier is required", ErrInvalidConfig)
	}
	for _, t := range c.Globe.Tiers {
		if t.Radius <= 0 {
			return fmt.Errorf("%w: tier radius must be positive, got %v", ErrInvalidConfig, t.Radius)
		}
	}
	if c.Render.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.Render.FPS)
	}
	if c.Render.Stars < 0 {
		return fmt.Errorf("%w: star count must not be negative, got %d", ErrInvalidConfig, c.Render.Stars)
	}
	if len(c.Globe.Cities) > 0 {
		if _, err := c.Catalog(1); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// readDotEnv parses a .env file without touching the process environment.
// A missing file yields no values.
func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return values, nil
}

// envLookup resolves a key from the process environment first and the
// .env values second.
func envLookup(dotenv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

// applyEnvironmentOverrides applies GLOBE_* variables to the config.
func (c *Config) applyEnvironmentOverrides(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"GLOBE_MAX_FLIGHTS", &c.Flights.MaxActive},
		{"GLOBE_FPS", &c.Render.FPS},
		{"GLOBE_STARS", &c.Render.Stars},
	}
	for _, o := range ints {
		v, ok := lookup(o.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, o.key, v, err)
		}
		*o.dst = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"GLOBE_FADE_IN", &c.Flights.FadeInSeconds},
		{"GLOBE_FADE_OUT", &c.Flights.FadeOutSeconds},
		{"GLOBE_MIN_DURATION", &c.Flights.MinDurationSeconds},
		{"GLOBE_MAX_DURATION", &c.Flights.MaxDurationSeconds},
		{"GLOBE_MAX_DELTA", &c.Flights.MaxDeltaSeconds},
	}
	for _, o := range floats {
		v, ok := lookup(o.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, o.key, v, err)
		}
		*o.dst = f
	}

	if v, ok := lookup("GLOBE_SEED"); ok && strings.TrimSpace(v) != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: GLOBE_SEED=%q: %w", ErrInvalidConfig, v, err)
		}
		c.Render.Seed = seed
	}
	if v, ok := lookup("GLOBE_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("GLOBE_LOG_FILE"); ok && v != "" {
		c.Log.File = v
	}

	return nil
}
