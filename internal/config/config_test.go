package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pvtlab/internal/chart"
	"github.com/san-kum/pvtlab/internal/correlations"
	"github.com/san-kum/pvtlab/internal/pvt"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 50, cfg.Points)
	assert.Equal(t, chart.Polar, cfg.ChartKind())
	assert.Equal(t, "ascii", cfg.Format)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, chart.DefaultOptions(), cfg.ChartOptions())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"one point", func(c *Config) { c.Points = 1 }},
		{"too many points", func(c *Config) { c.Points = 10001 }},
		{"chart", func(c *Config) { c.Chart = "pie" }},
		{"format", func(c *Config) { c.Format = "xlsx" }},
		{"driver", func(c *Config) { c.Store.Driver = "postgres" }},
		{"sqlite without path", func(c *Config) { c.Store.Driver, c.Store.Path = "sqlite", "" }},
		{"polygons", func(c *Config) { c.Radar.MaxPolygons = 0 }},
		{"margin", func(c *Config) { c.Radar.Margin = -0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pvtlab.yaml")

	cfg := DefaultConfig()
	cfg.Points = 120
	cfg.Chart = "radar"
	cfg.Store.Driver = "sqlite"
	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("points: 25\nchart: Line\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Points)
	assert.Equal(t, chart.Line, cfg.ChartKind())
	assert.Equal(t, DefaultMaxPolygons, cfg.Radar.MaxPolygons)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("points: 1\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultPresetsMatchDeclaredDefaults(t *testing.T) {
	cat := correlations.NewCatalog()
	for _, c := range cat.List() {
		got := GetPreset(c.ID(), DefaultPreset)
		require.NotNil(t, got, "missing default preset for %s", c.ID())
		assert.Equal(t, pvt.Defaults(c), got, c.ID())
	}
	assert.Len(t, Presets, cat.Len())
}

func TestPresetsWithinRanges(t *testing.T) {
	cat := correlations.NewCatalog()
	for id, byName := range Presets {
		c, err := cat.Get(id)
		require.NoError(t, err)
		for name, snap := range byName {
			for k, v := range snap {
				spec, ok := pvt.FindParam(c, k)
				if assert.True(t, ok, "%s/%s: unknown param %s", id, name, k) {
					assert.True(t, spec.Contains(v), "%s/%s: %s=%g out of range", id, name, k, v)
				}
			}
		}
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	p := GetPreset("oil-gravity-api", "light")
	require.NotNil(t, p)
	p["Yapi"] = 0
	assert.Equal(t, 45.0, Presets["oil-gravity-api"]["light"]["Yapi"])
}

func TestGetPresetNotFound(t *testing.T) {
	assert.Nil(t, GetPreset("oil-gravity-api", "nonexistent"))
	assert.Nil(t, GetPreset("nonexistent", "default"))
}

func TestListPresets(t *testing.T) {
	assert.Equal(t, []string{"default", "heavy", "light"}, ListPresets("oil-gravity-api"))
	assert.Nil(t, ListPresets("nonexistent"))
}
