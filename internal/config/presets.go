package config

import (
	"sort"

	"github.com/san-kum/pvtlab/internal/pvt"
)

// DefaultPreset is carried by every correlation and equals its declared
// defaults.
const DefaultPreset = "default"

// Presets holds named input snapshots per correlation id. Non-default
// presets may be partial; callers merge them over the defaults.
var Presets = map[string]map[string]pvt.Snapshot{
	"oil-density-basic": {
		"default":   {"Yo": 0.8, "Yg": 0.7, "Rs": 200, "Bo": 1.2},
		"light-oil": {"Yo": 0.78, "Yg": 0.75, "Rs": 900, "Bo": 1.45},
		"heavy-oil": {"Yo": 0.95, "Yg": 0.65, "Rs": 80, "Bo": 1.05},
	},
	"oil-density-pressure": {
		"default":      {"rho_ob": 45, "Co": 1e-6, "Pb": 2000, "P": 3000},
		"undersaturated": {"rho_ob": 42, "Co": 1.5e-5, "Pb": 1800, "P": 5000},
	},
	"oil-gravity-api": {
		"default": {"Yapi": 30},
		"light":   {"Yapi": 45},
		"heavy":   {"Yapi": 15},
	},
	"mixture-density": {
		"default": {
			"C":      2,
			"mass_1": 10, "dens_1": 50,
			"mass_2": 10, "dens_2": 50,
			"mass_3": 10, "dens_3": 50,
			"mass_4": 10, "dens_4": 50,
			"mass_5": 10, "dens_5": 50,
		},
		"three-equal": {
			"C":      3,
			"mass_1": 10, "dens_1": 50,
			"mass_2": 20, "dens_2": 50,
			"mass_3": 30, "dens_3": 50,
		},
	},
	"standing-pb": {
		"default":  {"Rsb": 500, "Yg": 0.7, "Tr": 180, "Yapi": 30},
		"volatile": {"Rsb": 1500, "Yg": 0.85, "Tr": 240, "Yapi": 45},
	},
	"lasater-pb": {
		"default": {"Yapi": 30, "Rsb": 500, "Tr": 150},
		"light":   {"Yapi": 45, "Rsb": 1200, "Tr": 200},
	},
	"vasquez-beggs-pb": {
		"default":   {"Yg": 0.8, "Ts": 120, "Ps": 100, "Yapi": 30, "Rsb": 500, "Tr": 180},
		"separator": {"Yg": 0.75, "Ts": 90, "Ps": 65, "Yapi": 35, "Rsb": 750, "Tr": 200},
	},
	"standing-rs": {
		"default": {"p": 2000, "Tr": 180, "Yapi": 30},
	},
	"lasater-rs": {
		"default": {"Yo": 0.85, "Yg": 0.7, "Mo": 200},
	},
	"vasquez-beggs-rs": {
		"default":   {"Yg": 0.7, "p": 2000, "Yapi": 30, "T": 180},
		"high-pres": {"p": 4500},
	},
	"standing-bo": {
		"default": {"Rs": 500, "Yg": 0.7, "Yo": 0.85, "T": 180},
	},
	"vasquez-beggs-bo": {
		"default": {"Rs": 500, "T": 180, "Yapi": 30, "Ygc": 0.8},
		"light":   {"Rs": 1100, "T": 220, "Yapi": 42, "Ygc": 0.85},
	},
	"oil-bo": {
		"default": {"Bob": 1.2, "Pb": 2000, "p": 3000, "co": 1e-6},
	},
	"vasquez-beggs-co": {
		"default": {"Rsb": 500, "T": 180, "Yg": 0.7, "Yapi": 30, "p": 2000},
	},
	"beggs-robinson-mu": {
		"default": {"Rsb": 500, "T": 180, "Yapi": 30},
		"heavy":   {"Rsb": 100, "T": 150, "Yapi": 18},
	},
	"vasquez-beggs-mu": {
		"default": {"mu_ob": 1.0, "p": 3000, "pb": 2000},
	},
}

// GetPreset returns a copy of the preset, or nil when either name is unknown.
func GetPreset(id, preset string) pvt.Snapshot {
	byName, ok := Presets[id]
	if !ok {
		return nil
	}
	s, ok := byName[preset]
	if !ok {
		return nil
	}
	return s.Clone()
}

// ListPresets returns the preset names of id in sorted order.
func ListPresets(id string) []string {
	byName, ok := Presets[id]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
