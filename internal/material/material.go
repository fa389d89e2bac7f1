// Package material provides thermophysical property lookup so nodes can
// be declared by substance and volume instead of raw heat capacity.
package material

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/chill/internal/thermal"
)

// Properties holds the bulk properties needed to derive a lumped heat
// capacity.
type Properties struct {
	Density      float64 // kg/m^3
	SpecificHeat float64 // J/(kg K)
}

var table = map[string]Properties{
	"aluminum": {Density: 2700, SpecificHeat: 900},
	"copper":   {Density: 8960, SpecificHeat: 385},
	"iron":     {Density: 7874, SpecificHeat: 449},
	"steel":    {Density: 7850, SpecificHeat: 490},
	"water":    {Density: 1000, SpecificHeat: 4184},
	"air":      {Density: 1.225, SpecificHeat: 1005},
	"glass":    {Density: 2500, SpecificHeat: 840},
	"concrete": {Density: 2400, SpecificHeat: 880},
}

var aliases = map[string]string{
	"al":        "aluminum",
	"aluminium": "aluminum",
	"cu":        "copper",
	"fe":        "iron",
	"h2o":       "water",
}

// Lookup resolves a material name (case-insensitive, common aliases
// accepted) to its properties.
func Lookup(name string) (Properties, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	p, ok := table[key]
	return p, ok
}

// Capacity returns the heat capacity [J/K] of a volume [m^3] of the
// named material: density * volume * specific heat.
func Capacity(name string, volume float64) (float64, error) {
	p, ok := Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: unknown material %q", thermal.ErrInvalidParameter, name)
	}
	if volume <= 0 {
		return 0, fmt.Errorf("%w: volume must be positive, got %v", thermal.ErrInvalidParameter, volume)
	}
	return p.Density * volume * p.SpecificHeat, nil
}

// Names lists the known material names, sorted.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
