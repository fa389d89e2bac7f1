// Package sim advances thermal networks through discrete time steps.
//
// The integration scheme is explicit (forward) Euler: each step
// evaluates every edge's heat flow against a single pre-step temperature
// snapshot, aggregates the signed flows per node, and updates
// T += net_flow * dt / capacity. No iteration or convergence check is
// performed; stability is the caller's responsibility via the choice of
// dt. A dt large relative to the fastest thermal time constant in the
// network will diverge, which surfaces as a *thermal.StepError with the
// recorded history intact.
//
//	net := thermal.NewNetwork()
//	// ... register nodes and edges ...
//	s := sim.New(net)
//	s.SetDt(0.1)
//	err := s.Execute(ctx, 3600, 1)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. All mutable state is owned by
// one instance; concurrent callers must serialize access.
package sim
