// Package thermal provides the data structures for lumped-parameter
// thermal networks.
//
// A network is a set of isothermal bodies ([Node]) indexed by [NodeID],
// connected by heat-transfer relationships ([Edge]):
//
//   - [Conduction]: flow = (T_from - T_to) / resistance
//   - [Radiation]: flow = radConst * (T_from^4 - T_to^4)
//   - [Heater]: a constant external heat input into the To node
//
// Nodes and edges are registered during setup and never removed. A node
// with capacity math.Inf(1) is a fixed-temperature boundary: it absorbs
// or emits unlimited heat without changing temperature.
//
// # Sign Convention
//
// Edge flow is heat per unit time leaving the From node and entering the
// To node; positive flow moves heat from From to To. Negative resistance
// and negative radiation constants are accepted and simply reverse the
// effective sign, which some callers use to encode reversed edge
// definitions. Only a resistance of exactly zero is rejected.
package thermal
