package thermal

// EdgeKind tags the heat-transfer law an edge follows.
type EdgeKind int

const (
	Conduction EdgeKind = iota
	Radiation
	Heater
)

func (k EdgeKind) String() string {
	switch k {
	case Conduction:
		return "conduction"
	case Radiation:
		return "radiation"
	case Heater:
		return "heater"
	default:
		return "unknown"
	}
}

// NoNode is the From id of heater edges, which have no source node.
const NoNode NodeID = -1

// Edge is an immutable heat-transfer relationship. Coeff is the
// kind-specific coefficient: thermal resistance [K/W] for conduction,
// the radiative constant [W/K^4] for radiation, or the constant heat
// input [W] for heaters.
type Edge struct {
	From  NodeID
	To    NodeID
	Kind  EdgeKind
	Coeff float64
}

// Flow evaluates the instantaneous heat flow [W] for the edge against a
// temperature snapshot indexed by NodeID. Positive flow leaves From and
// enters To; heater flow enters To with no outflow anywhere.
func (e Edge) Flow(temps []float64) float64 {
	switch e.Kind {
	case Conduction:
		return (temps[e.From] - temps[e.To]) / e.Coeff
	case Radiation:
		tf, tt := temps[e.From], temps[e.To]
		return e.Coeff * (tf*tf*tf*tf - tt*tt*tt*tt)
	default:
		return e.Coeff
	}
}
