package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pvtlab/internal/analysis"
	"github.com/san-kum/pvtlab/internal/chart"
)

const (
	DefaultChart       = "polar"
	DefaultFormat      = "ascii"
	DefaultDriver      = "memory"
	DefaultMaxPolygons = 10
	DefaultMargin      = 0.1
	DefaultWidth       = 1000
	DefaultHeight      = 600
	DefaultTheme       = "default"
)

// Drivers lists the accepted session store drivers.
var Drivers = []string{"memory", "sqlite"}

// Formats lists the accepted sweep output formats.
var Formats = []string{"ascii", "table", "csv", "json", "html", "png", "svg"}

type Config struct {
	Points int         `yaml:"points"`
	Chart  string      `yaml:"chart"`
	Format string      `yaml:"format"`
	Theme  string      `yaml:"theme"`
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	Store  StoreConfig `yaml:"store"`
	Radar  RadarConfig `yaml:"radar"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type RadarConfig struct {
	MaxPolygons int     `yaml:"max_polygons"`
	Margin      float64 `yaml:"margin"`
}

func DefaultConfig() *Config {
	return &Config{
		Points: analysis.DefaultPoints,
		Chart:  DefaultChart,
		Format: DefaultFormat,
		Theme:  DefaultTheme,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Store: StoreConfig{
			Driver: DefaultDriver,
			Path:   "pvtlab.db",
		},
		Radar: RadarConfig{
			MaxPolygons: DefaultMaxPolygons,
			Margin:      DefaultMargin,
		},
	}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Points < 2 || c.Points > analysis.MaxPoints {
		return fmt.Errorf("points must be in [2, %d], got %d", analysis.MaxPoints, c.Points)
	}
	if _, err := chart.ParseKind(c.Chart); err != nil {
		return err
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("unknown format: %s", c.Format)
	}
	if !slices.Contains(Drivers, c.Store.Driver) {
		return fmt.Errorf("unknown store driver: %s", c.Store.Driver)
	}
	if c.Store.Driver == "sqlite" && c.Store.Path == "" {
		return fmt.Errorf("sqlite store needs a path")
	}
	if c.Radar.MaxPolygons < 1 {
		return fmt.Errorf("radar max_polygons must be positive, got %d", c.Radar.MaxPolygons)
	}
	if c.Radar.Margin < 0 {
		return fmt.Errorf("radar margin must not be negative, got %g", c.Radar.Margin)
	}
	return nil
}

// ChartKind returns the configured default projection.
func (c *Config) ChartKind() chart.Kind {
	k, err := chart.ParseKind(c.Chart)
	if err != nil {
		return chart.Kinds[0]
	}
	return k
}

// ChartOptions returns the radar settings as projection options.
func (c *Config) ChartOptions() chart.Options {
	return chart.Options{MaxPolygons: c.Radar.MaxPolygons, Margin: c.Radar.Margin}
}
