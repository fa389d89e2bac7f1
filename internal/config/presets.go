package config

import (
	"sort"

	"github.com/san-kum/chill/internal/units"
)

// Presets are built-in networks usable without a config file.
var Presets = map[string]*Config{
	"three_plate": {
		Name: "three_plate", Dt: 0.1, Duration: 1 * units.Hour, SampleInterval: 1,
		Nodes: []NodeConfig{
			{Name: "plate-a", Temperature: 300, Material: "aluminum", Volume: 10 * units.Cm3},
			{Name: "plate-b", Temperature: 300, Material: "aluminum", Volume: 10 * units.Cm3},
			{Name: "plate-c", Temperature: 500, Material: "aluminum", Volume: 10 * units.Cm3},
		},
		Edges: []EdgeConfig{
			{Kind: "conduction", From: "plate-a", To: "plate-b", Resistance: 10},
			{Kind: "conduction", From: "plate-b", To: "plate-c", Resistance: 10},
		},
	},
	"heated_block": {
		Name: "heated_block", Dt: 0.5, Duration: 2 * units.Hour, SampleInterval: 10,
		SnapshotInitial: true,
		Nodes: []NodeConfig{
			{Name: "block", Temperature: 293.15, Material: "copper", Volume: 100 * units.Cm3},
			{Name: "ambient", Temperature: 293.15, Fixed: true},
		},
		Edges: []EdgeConfig{
			{Kind: "heater", To: "block", HeatInput: 50},
			{Kind: "conduction", From: "block", To: "ambient", Resistance: 2},
		},
	},
	"radiator": {
		Name: "radiator", Dt: 1, Duration: 10 * units.Hour, SampleInterval: 60,
		Nodes: []NodeConfig{
			{Name: "panel", Temperature: 350, Material: "aluminum", Volume: 500 * units.Cm3},
			{Name: "space", Temperature: 4, Fixed: true},
		},
		Edges: []EdgeConfig{
			// epsilon * sigma * A for a 0.5 m^2 panel with emissivity 0.9
			{Kind: "radiation", From: "panel", To: "space", RadConst: 0.9 * units.Sigma * 0.5},
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
