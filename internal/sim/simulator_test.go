package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/chill/internal/thermal"
)

func twoNodeConduction(t *testing.T, t0, t1, c0, c1, r float64) (*thermal.Network, thermal.NodeID, thermal.NodeID) {
	t.Helper()
	nw := thermal.NewNetwork()
	a, err := nw.AddNode("a", t0, c0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := nw.AddNode("b", t1, c1)
	if err != nil {
		t.Fatal(err)
	}
	if err := nw.AddConduction(a, b, r); err != nil {
		t.Fatal(err)
	}
	return nw, a, b
}

func totalEnergy(nw *thermal.Network) float64 {
	sum := 0.0
	temps := nw.Temperatures()
	for _, n := range nw.Nodes() {
		if n.Fixed() {
			continue
		}
		sum += n.Capacity * temps[n.ID]
	}
	return sum
}

func TestConductionConservesEnergy(t *testing.T) {
	nw, _, _ := twoNodeConduction(t, 500, 300, 100, 250, 2.0)
	s := New(nw)
	if err := s.SetDt(0.5); err != nil {
		t.Fatal(err)
	}

	before := totalEnergy(nw)
	for i := 0; i < 1000; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}
	after := totalEnergy(nw)

	if math.Abs(after-before) > 1e-7*math.Abs(before) {
		t.Errorf("energy not conserved: %f -> %f", before, after)
	}
}

func TestConductionEquilibrates(t *testing.T) {
	nw, a, b := twoNodeConduction(t, 500, 300, 100, 100, 2.0)
	s := New(nw)
	if err := s.SetDt(1.0); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10000; i++ {
		if err := s.Step(); err != nil {
			t.Fatal(err)
		}
	}

	ta, _ := nw.Temperature(a)
	tb, _ := nw.Temperature(b)
	if math.Abs(ta-400) > 1e-6 || math.Abs(tb-400) > 1e-6 {
		t.Errorf("expected both nodes near 400, got %f and %f", ta, tb)
	}
}

func TestFixedNodeApproachedMonotonically(t *testing.T) {
	nw := thermal.NewNetwork()
	bath, _ := nw.AddNode("bath", 300, math.Inf(1))
	body, _ := nw.AddNode("body", 500, 10)
	if err := nw.AddConduction(body, bath, 1.0); err != nil {
		t.Fatal(err)
	}

	s := New(nw)
	if err := s.SetDt(0.1); err != nil {
		t.Fatal(err)
	}

	prev, _ := nw.Temperature(body)
	for i := 0; i < 5000; i++ {
		if err := s.Step(); err != nil {
			t.Fatal(err)
		}
		cur, _ := nw.Temperature(body)
		if cur > prev+1e-12 {
			t.Fatalf("step %d: temperature rose from %f to %f", i, prev, cur)
		}
		if cur < 300-1e-9 {
			t.Fatalf("step %d: overshot the bath temperature: %f", i, cur)
		}
		prev = cur
	}

	bathT, _ := nw.Temperature(bath)
	if bathT != 300 {
		t.Errorf("fixed node changed temperature: %f", bathT)
	}
	final, _ := nw.Temperature(body)
	if math.Abs(final-300) > 1e-6 {
		t.Errorf("body should approach 300, got %f", final)
	}
}

func TestHeaterAccumulatesExactly(t *testing.T) {
	nw := thermal.NewNetwork()
	block, _ := nw.AddNode("block", 250, 4)
	const heat = 8.0
	if err := nw.AddHeater(block, heat); err != nil {
		t.Fatal(err)
	}

	s := New(nw)
	const dt = 0.25
	if err := s.SetDt(dt); err != nil {
		t.Fatal(err)
	}

	const n = 400
	for i := 0; i < n; i++ {
		if err := s.Step(); err != nil {
			t.Fatal(err)
		}
	}

	// isolated node: T = T0 + n*H*dt/C with no coupling terms; the
	// per-step increment is an exact binary fraction so equality is exact
	want := 250 + n*heat*dt/4
	got, _ := nw.Temperature(block)
	if got != want {
		t.Errorf("expected exactly %f, got %f", want, got)
	}
}

func TestRadiationSymmetricConvergence(t *testing.T) {
	nw := thermal.NewNetwork()
	a, _ := nw.AddNode("a", 500, 1000)
	b, _ := nw.AddNode("b", 300, 1000)
	if err := nw.AddRadiation(a, b, 1e-9); err != nil {
		t.Fatal(err)
	}

	s := New(nw)
	if err := s.SetDt(1.0); err != nil {
		t.Fatal(err)
	}

	before := totalEnergy(nw)
	ta, _ := nw.Temperature(a)
	tb, _ := nw.Temperature(b)
	prevDiff := math.Abs(ta - tb)

	for i := 0; i < 20000; i++ {
		if err := s.Step(); err != nil {
			t.Fatal(err)
		}
		ta, _ = nw.Temperature(a)
		tb, _ = nw.Temperature(b)
		diff := math.Abs(ta - tb)
		if diff > prevDiff+1e-12 {
			t.Fatalf("step %d: temperature difference grew from %g to %g", i, prevDiff, diff)
		}
		prevDiff = diff
	}

	after := totalEnergy(nw)
	if math.Abs(after-before) > 1e-7*math.Abs(before) {
		t.Errorf("energy not conserved: %f -> %f", before, after)
	}
	if math.Abs(ta-400) > 1.0 || math.Abs(tb-400) > 1.0 {
		t.Errorf("equal capacities should converge toward the average, got %f and %f", ta, tb)
	}
}

func TestExecuteSampling(t *testing.T) {
	nw, _, _ := twoNodeConduction(t, 500, 300, 1000, 1000, 10.0)
	s := New(nw)
	if err := s.SetDt(1.0); err != nil {
		t.Fatal(err)
	}

	if err := s.Execute(context.Background(), 10, 2); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	hist := s.History()
	if len(hist) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(hist))
	}
	for i, sm := range hist {
		want := float64(2 * (i + 1))
		if math.Abs(sm.Time-want) > 1e-9 {
			t.Errorf("sample %d: expected t=%f, got %f", i, want, sm.Time)
		}
	}
	if s.Elapsed() != 10 {
		t.Errorf("expected elapsed 10, got %f", s.Elapsed())
	}
}

func TestExecuteAccumulatesAcrossCalls(t *testing.T) {
	nw, a, _ := twoNodeConduction(t, 500, 300, 1000, 1000, 10.0)
	s := New(nw)
	if err := s.SetDt(1.0); err != nil {
		t.Fatal(err)
	}

	if err := s.Execute(context.Background(), 4, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.Execute(context.Background(), 4, 2); err != nil {
		t.Fatal(err)
	}

	if len(s.History()) != 4 {
		t.Errorf("expected 4 samples across two calls, got %d", len(s.History()))
	}
	if s.Elapsed() != 8 {
		t.Errorf("expected elapsed 8, got %f", s.Elapsed())
	}

	series, err := s.SeriesFor(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 4 {
		t.Errorf("expected series of 4, got %d", len(series))
	}
}

func TestExecuteOvershoot(t *testing.T) {
	nw, _, _ := twoNodeConduction(t, 500, 300, 1000, 1000, 10.0)
	s := New(nw)
	if err := s.SetDt(0.3); err != nil {
		t.Fatal(err)
	}

	// 0.3 does not divide 1.0: the final step overshoots by < dt
	if err := s.Execute(context.Background(), 1.0, 0.3); err != nil {
		t.Fatal(err)
	}
	if s.Elapsed() < 1.0-1e-9 || s.Elapsed() >= 1.3 {
		t.Errorf("elapsed should land in [1.0, 1.3), got %f", s.Elapsed())
	}
}

func TestExecuteInvalidParameters(t *testing.T) {
	nw, _, _ := twoNodeConduction(t, 500, 300, 1000, 1000, 10.0)
	s := New(nw)

	tests := []struct {
		name     string
		duration float64
		interval float64
	}{
		{"zero duration", 0, 1},
		{"negative duration", -5, 1},
		{"zero interval", 10, 0},
		{"negative interval", 10, -1},
		{"nan duration", math.NaN(), 1},
		{"inf interval", 10, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Execute(context.Background(), tt.duration, tt.interval)
			if !errors.Is(err, thermal.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}

	if err := s.SetDt(0); !errors.Is(err, thermal.ErrInvalidParameter) {
		t.Errorf("SetDt(0): expected ErrInvalidParameter, got %v", err)
	}
}

func TestSnapshotRecordsInitialState(t *testing.T) {
	nw, _, _ := twoNodeConduction(t, 500, 300, 1000, 1000, 10.0)
	s := New(nw)
	if err := s.SetDt(1.0); err != nil {
		t.Fatal(err)
	}

	s.Snapshot()
	if err := s.Execute(context.Background(), 4, 2); err != nil {
		t.Fatal(err)
	}

	hist := s.History()
	if len(hist) != 3 {
		t.Fatalf("expected initial snapshot plus 2 samples, got %d", len(hist))
	}
	if hist[0].Time != 0 {
		t.Errorf("expected first sample at t=0, got %f", hist[0].Time)
	}
	if hist[0].Temps[0] != 500 || hist[0].Temps[1] != 300 {
		t.Errorf("snapshot should hold initial temperatures, got %v", hist[0].Temps)
	}
}

func TestInstabilityPreservesHistory(t *testing.T) {
	// tiny capacity with a huge coupling makes explicit Euler diverge
	nw, a, _ := twoNodeConduction(t, 500, 300, 1e-9, 1e-9, 1e-6)
	s := New(nw)
	if err := s.SetDt(10.0); err != nil {
		t.Fatal(err)
	}

	err := s.Execute(context.Background(), 1000, 10)
	if err == nil {
		t.Fatal("expected instability error")
	}
	if !errors.Is(err, thermal.ErrUnstable) {
		t.Fatalf("expected ErrUnstable, got %v", err)
	}

	var stepErr *thermal.StepError
	if !errors.As(err, &stepErr) {
		t.Fatal("expected *thermal.StepError")
	}
	if stepErr.Step <= 0 {
		t.Errorf("step index should be reported, got %d", stepErr.Step)
	}
	if stepErr.Node != a && stepErr.Name == "" {
		t.Errorf("offending node should be identified, got node=%d name=%q", stepErr.Node, stepErr.Name)
	}

	// samples recorded before the divergence stay finite and readable
	for i, sm := range s.History() {
		for id, temp := range sm.Temps {
			if math.IsNaN(temp) || math.IsInf(temp, 0) {
				t.Fatalf("sample %d node %d: recorded history contains non-finite value", i, id)
			}
		}
	}
}

func TestExecuteCancellation(t *testing.T) {
	nw, _, _ := twoNodeConduction(t, 500, 300, 1000, 1000, 10.0)
	s := New(nw)
	if err := s.SetDt(0.001); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Execute(ctx, 1000, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDtChangeBetweenExecutes(t *testing.T) {
	nw := thermal.NewNetwork()
	block, _ := nw.AddNode("block", 0, 1)
	if err := nw.AddHeater(block, 1); err != nil {
		t.Fatal(err)
	}

	s := New(nw)
	if err := s.SetDt(1.0); err != nil {
		t.Fatal(err)
	}
	if err := s.Execute(context.Background(), 2, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDt(0.5); err != nil {
		t.Fatal(err)
	}
	if err := s.Execute(context.Background(), 2, 1); err != nil {
		t.Fatal(err)
	}

	// heater adds H*dt/C per step regardless of dt, so T tracks elapsed time
	got, _ := nw.Temperature(block)
	if math.Abs(got-4) > 1e-9 {
		t.Errorf("expected temperature 4 after 4s of 1W into 1 J/K, got %f", got)
	}
	if math.Abs(s.Elapsed()-4) > 1e-9 {
		t.Errorf("expected elapsed 4, got %f", s.Elapsed())
	}
}

type stepCounter struct{ n int }

func (c *stepCounter) OnStep(temps []float64, t float64) { c.n++ }

func TestObserverCalledEveryStep(t *testing.T) {
	nw, _, _ := twoNodeConduction(t, 500, 300, 1000, 1000, 10.0)
	s := New(nw)
	if err := s.SetDt(1.0); err != nil {
		t.Fatal(err)
	}

	obs := &stepCounter{}
	s.AddObserver(obs)

	if err := s.Execute(context.Background(), 10, 2); err != nil {
		t.Fatal(err)
	}
	if obs.n != 10 {
		t.Errorf("expected 10 observations, got %d", obs.n)
	}
}
