package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/chill/internal/thermal"
)

// DefaultDt is the internal step size [s] used when none is set.
const DefaultDt = 0.1

// cadence comparisons tolerate the rounding error that accumulates when
// dt does not divide the sample interval exactly
const cadenceEps = 1e-9

// Simulator advances a thermal network through explicit forward-Euler
// steps and records sampled temperature history. One Simulator owns its
// network's mutable state exclusively; calls must be serialized by the
// caller.
type Simulator struct {
	net     *thermal.Network
	dt      float64
	elapsed float64
	steps   int

	history   []Sample
	metrics   []Metric
	observers []Observer

	// topology is cached on the first step; edits after that are not
	// supported
	ready bool
	nodes []thermal.Node
	edges []thermal.Edge

	snap  []float64
	acc   []float64
	flows []float64
}

func New(net *thermal.Network) *Simulator {
	return &Simulator{net: net, dt: DefaultDt}
}

// SetDt changes the internal step size. Takes effect on the next step,
// including mid-run.
func (s *Simulator) SetDt(dt float64) error {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", thermal.ErrInvalidParameter, dt)
	}
	s.dt = dt
	return nil
}

func (s *Simulator) Dt() float64               { return s.dt }
func (s *Simulator) Elapsed() float64          { return s.elapsed }
func (s *Simulator) StepCount() int            { return s.steps }
func (s *Simulator) Network() *thermal.Network { return s.net }

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) setup() {
	s.nodes = s.net.Nodes()
	s.edges = s.net.Edges()
	s.snap = make([]float64, len(s.nodes))
	s.acc = make([]float64, len(s.nodes))
	s.flows = make([]float64, len(s.edges))
	s.ready = true
}

// Step advances the network by one explicit Euler step of size dt. All
// edge flows are evaluated against the same pre-step temperature
// snapshot. Infinite-capacity nodes keep their temperature. A non-finite
// result aborts with a *thermal.StepError; temperatures of other nodes
// updated in the same step are kept, as is all recorded history.
func (s *Simulator) Step() error {
	if !s.ready {
		s.setup()
	}

	for i := range s.nodes {
		temp, _ := s.net.Temperature(thermal.NodeID(i))
		s.snap[i] = temp
		s.acc[i] = 0
	}

	for i, e := range s.edges {
		q := e.Flow(s.snap)
		s.flows[i] = q
		if e.Kind != thermal.Heater {
			s.acc[e.From] -= q
		}
		s.acc[e.To] += q
	}

	for i, n := range s.nodes {
		if n.Fixed() {
			continue
		}
		_ = s.net.SetTemperature(n.ID, s.snap[i]+s.acc[i]*s.dt/n.Capacity)
	}

	s.steps++
	s.elapsed += s.dt

	for _, n := range s.nodes {
		if n.Fixed() {
			continue
		}
		temp, _ := s.net.Temperature(n.ID)
		if math.IsNaN(temp) || math.IsInf(temp, 0) {
			return &thermal.StepError{Step: s.steps, Time: s.elapsed, Node: n.ID, Name: n.Name}
		}
	}
	return nil
}

// Execute runs internal steps until the elapsed time has advanced by at
// least duration, recording one history sample each time the accumulated
// time since the previous sample reaches sampleInterval. The final step
// may overshoot duration by less than dt. No sample is taken at the
// start; call Snapshot first to record the initial state.
//
// On failure (step error or context cancellation) history recorded so
// far is preserved and the error identifies where the run stopped.
func (s *Simulator) Execute(ctx context.Context, duration, sampleInterval float64) error {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return fmt.Errorf("%w: duration must be positive and finite, got %v", thermal.ErrInvalidParameter, duration)
	}
	if sampleInterval <= 0 || math.IsNaN(sampleInterval) || math.IsInf(sampleInterval, 0) {
		return fmt.Errorf("%w: sample interval must be positive and finite, got %v", thermal.ErrInvalidParameter, sampleInterval)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	start := s.elapsed
	sinceSample := 0.0

	for s.elapsed-start < duration-cadenceEps*duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		dt := s.dt
		if err := s.Step(); err != nil {
			return err
		}

		if len(s.metrics) > 0 || len(s.observers) > 0 {
			temps := s.net.Temperatures()
			for _, m := range s.metrics {
				m.Observe(temps, s.elapsed)
			}
			for _, obs := range s.observers {
				obs.OnStep(temps, s.elapsed)
			}
		}

		sinceSample += dt
		if sinceSample >= sampleInterval-cadenceEps*sampleInterval {
			s.history = append(s.history, Sample{Time: s.elapsed, Temps: s.net.Temperatures()})
			sinceSample -= sampleInterval
		}
	}

	return nil
}

// Snapshot appends the current temperatures to history immediately.
// Call before the first Execute to record the t=0 state.
func (s *Simulator) Snapshot() {
	s.history = append(s.history, Sample{Time: s.elapsed, Temps: s.net.Temperatures()})
}

// History returns the recorded samples in time order. The returned slice
// is owned by the simulator; callers must not modify it.
func (s *Simulator) History() []Sample { return s.history }

// ResetHistory discards all recorded samples. Elapsed time and node
// temperatures are unaffected.
func (s *Simulator) ResetHistory() { s.history = nil }

// Times returns the sample times of the recorded history.
func (s *Simulator) Times() []float64 {
	times := make([]float64, len(s.history))
	for i, sm := range s.history {
		times[i] = sm.Time
	}
	return times
}

// SeriesFor extracts one node's temperature trace from the history.
func (s *Simulator) SeriesFor(id thermal.NodeID) ([]float64, error) {
	if _, err := s.net.Node(id); err != nil {
		return nil, err
	}
	series := make([]float64, len(s.history))
	for i, sm := range s.history {
		series[i] = sm.Temps[id]
	}
	return series, nil
}
