package thermal

import (
	"fmt"
	"math"
)

// Network owns the node and edge registries and the mutable per-node
// temperatures. It is not safe for concurrent use; the owning simulation
// holds exclusive write access.
type Network struct {
	nodes  []Node
	temps  []float64
	edges  []Edge
	byName map[string]NodeID
}

func NewNetwork() *Network {
	return &Network{byName: make(map[string]NodeID)}
}

// AddNode registers a node and returns its id. Temperature must be
// finite. Capacity must be positive or exactly +Inf for a
// fixed-temperature boundary.
func (nw *Network) AddNode(name string, temperature, capacity float64) (NodeID, error) {
	if math.IsNaN(temperature) || math.IsInf(temperature, 0) {
		return 0, fmt.Errorf("%w: temperature must be finite, got %v", ErrInvalidParameter, temperature)
	}
	if math.IsNaN(capacity) || (capacity <= 0 && !math.IsInf(capacity, 1)) {
		return 0, fmt.Errorf("%w: capacity must be positive or +Inf, got %v", ErrInvalidParameter, capacity)
	}

	id := NodeID(len(nw.nodes))
	nw.nodes = append(nw.nodes, Node{ID: id, Name: name, Capacity: capacity})
	nw.temps = append(nw.temps, temperature)
	// first-created node wins on name collisions
	if _, ok := nw.byName[name]; !ok {
		nw.byName[name] = id
	}
	return id, nil
}

// AddConduction registers a conductive edge. Resistance zero is rejected
// (division by zero); negative resistance is accepted and reverses the
// effective flow sign.
func (nw *Network) AddConduction(from, to NodeID, resistance float64) error {
	if err := nw.checkNode(from); err != nil {
		return err
	}
	if err := nw.checkNode(to); err != nil {
		return err
	}
	if resistance == 0 || math.IsNaN(resistance) || math.IsInf(resistance, 0) {
		return fmt.Errorf("%w: resistance must be nonzero and finite, got %v", ErrInvalidParameter, resistance)
	}
	nw.edges = append(nw.edges, Edge{From: from, To: to, Kind: Conduction, Coeff: resistance})
	return nil
}

// AddRadiation registers a radiative edge. A negative radiation constant
// is accepted and reverses the effective flow sign.
func (nw *Network) AddRadiation(from, to NodeID, radConst float64) error {
	if err := nw.checkNode(from); err != nil {
		return err
	}
	if err := nw.checkNode(to); err != nil {
		return err
	}
	if math.IsNaN(radConst) || math.IsInf(radConst, 0) {
		return fmt.Errorf("%w: radiation constant must be finite, got %v", ErrInvalidParameter, radConst)
	}
	nw.edges = append(nw.edges, Edge{From: from, To: to, Kind: Radiation, Coeff: radConst})
	return nil
}

// AddHeater registers a constant external heat input into a node. The
// heater has no source node; its energy comes from outside the network.
func (nw *Network) AddHeater(to NodeID, heatInput float64) error {
	if err := nw.checkNode(to); err != nil {
		return err
	}
	if math.IsNaN(heatInput) || math.IsInf(heatInput, 0) {
		return fmt.Errorf("%w: heat input must be finite, got %v", ErrInvalidParameter, heatInput)
	}
	nw.edges = append(nw.edges, Edge{From: NoNode, To: to, Kind: Heater, Coeff: heatInput})
	return nil
}

func (nw *Network) checkNode(id NodeID) error {
	if id < 0 || int(id) >= len(nw.nodes) {
		return fmt.Errorf("%w: id %d", ErrUnknownNode, id)
	}
	return nil
}

func (nw *Network) NodeCount() int { return len(nw.nodes) }
func (nw *Network) EdgeCount() int { return len(nw.edges) }

// Node returns the immutable parameters of a node.
func (nw *Network) Node(id NodeID) (Node, error) {
	if err := nw.checkNode(id); err != nil {
		return Node{}, err
	}
	return nw.nodes[id], nil
}

// Nodes returns a copy of the node registry in id order.
func (nw *Network) Nodes() []Node {
	out := make([]Node, len(nw.nodes))
	copy(out, nw.nodes)
	return out
}

// Edges returns a copy of the edge registry in creation order.
func (nw *Network) Edges() []Edge {
	out := make([]Edge, len(nw.edges))
	copy(out, nw.edges)
	return out
}

// NodeByName resolves a name to the first-created node with that name.
func (nw *Network) NodeByName(name string) (NodeID, bool) {
	id, ok := nw.byName[name]
	return id, ok
}

// NodeNames returns node names in id order.
func (nw *Network) NodeNames() []string {
	names := make([]string, len(nw.nodes))
	for i, n := range nw.nodes {
		names[i] = n.Name
	}
	return names
}

func (nw *Network) Temperature(id NodeID) (float64, error) {
	if err := nw.checkNode(id); err != nil {
		return 0, err
	}
	return nw.temps[id], nil
}

// SetTemperature overwrites a node's temperature. Used by the integrator;
// callers setting temperatures mid-run own the consequences.
func (nw *Network) SetTemperature(id NodeID, v float64) error {
	if err := nw.checkNode(id); err != nil {
		return err
	}
	nw.temps[id] = v
	return nil
}

// Temperatures returns a snapshot of all node temperatures indexed by id.
func (nw *Network) Temperatures() []float64 {
	out := make([]float64, len(nw.temps))
	copy(out, nw.temps)
	return out
}

// Flows evaluates the instantaneous heat flow of every edge against the
// current temperatures, indexed by edge creation order. dst is reused
// when it has sufficient capacity.
func (nw *Network) Flows(dst []float64) []float64 {
	dst = dst[:0]
	for _, e := range nw.edges {
		dst = append(dst, e.Flow(nw.temps))
	}
	return dst
}
