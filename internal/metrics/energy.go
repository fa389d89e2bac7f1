// Package metrics provides per-run scalar metrics computed from the
// temperature trajectory.
package metrics

import (
	"math"

	"github.com/san-kum/chill/internal/thermal"
)

// TotalEnergy tracks the thermal energy sum(C_i * T_i) over the
// finite-capacity nodes. With conduction and radiation only (no heaters,
// no fixed-temperature boundaries) the value is conserved up to
// floating-point error.
type TotalEnergy struct {
	name    string
	nodes   []thermal.Node
	last    float64
	samples int
}

func NewTotalEnergy(net *thermal.Network) *TotalEnergy {
	return &TotalEnergy{
		name:  "total_energy",
		nodes: net.Nodes(),
	}
}

func (e *TotalEnergy) Name() string { return e.name }

func (e *TotalEnergy) Observe(temps []float64, t float64) {
	sum := 0.0
	for _, n := range e.nodes {
		if n.Fixed() {
			continue
		}
		sum += n.Capacity * temps[n.ID]
	}
	e.last = sum
	e.samples++
}

func (e *TotalEnergy) Value() float64 {
	return e.last
}

func (e *TotalEnergy) Reset() {
	e.last = 0
	e.samples = 0
}

// EnergyDrift tracks the maximum relative deviation of total energy from
// its first observed value.
type EnergyDrift struct {
	name     string
	energy   *TotalEnergy
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(net *thermal.Network) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		energy: NewTotalEnergy(net),
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(temps []float64, t float64) {
	e.energy.Observe(temps, t)
	current := e.energy.Value()

	if e.samples == 0 {
		e.initial = current
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(current-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.energy.Reset()
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
