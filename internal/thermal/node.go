package thermal

import "math"

// NodeID identifies a node within one network. IDs are dense integers
// assigned in creation order and stable for the node's lifetime.
type NodeID int

// Node holds the immutable parameters of an isothermal body. The current
// temperature lives in the owning Network, not here.
type Node struct {
	ID       NodeID
	Name     string
	Capacity float64 // J/K; +Inf marks a fixed-temperature boundary
}

// Fixed reports whether the node is an infinite-capacity boundary whose
// temperature never changes.
func (n Node) Fixed() bool {
	return math.IsInf(n.Capacity, 1)
}
