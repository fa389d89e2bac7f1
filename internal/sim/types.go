package sim

// Sample is one recorded history entry: all node temperatures, indexed
// by NodeID, at a given elapsed simulation time.
type Sample struct {
	Time  float64
	Temps []float64
}

// Metric accumulates a scalar over the course of an execution.
type Metric interface {
	Name() string
	Observe(temps []float64, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every internal step.
type Observer interface {
	OnStep(temps []float64, t float64)
}
