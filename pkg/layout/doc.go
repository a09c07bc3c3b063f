// Package layout arranges graph nodes in the plane with a force-directed
// (spring-embedder) simulation.
//
// # Overview
//
// Every edge acts as a spring pulling its endpoints toward a rest length,
// every pair of nodes repels with a force that falls off with the squared
// distance, and velocities are damped each step so the system loses energy
// and settles. The result is a balanced arrangement in which connected nodes
// sit close together and unrelated nodes keep their distance.
//
// # Basic Usage
//
// Build a [Graph] with [Graph.AddNode] and [Graph.AddEdge], create an
// [Engine] with [New], and drive it with [Run]:
//
//	g := layout.NewGraph()
//	g.AddNode(layout.Node{ID: "order"})
//	g.AddNode(layout.Node{ID: "customer"})
//	g.AddEdge(layout.Edge{ID: "places", From: "customer", To: "order"})
//
//	e, err := layout.New(g, layout.DefaultParams())
//	if err != nil {
//	    return err // INVALID_GRAPH or INVALID_PARAMS
//	}
//	res, err := layout.Run(ctx, e, layout.DefaultBounds(), nil)
//	for n, p := range e.Nodes() {
//	    fmt.Println(n.ID, p.Position)
//	}
//
// [Engine.Step] advances the simulation by a single time increment and can
// be called directly when the caller wants its own loop.
//
// # Termination
//
// The simulation has no built-in stopping rule. [Run] stops when
// [Engine.TotalEnergy] falls below [Bounds.Threshold], when
// [Bounds.MaxIterations] steps have been taken, or when the context is
// cancelled, whichever happens first. The context is only checked between
// steps. A run that hits the ceiling is not an error: graphs with disconnected
// components never come to rest because repulsion keeps pushing them apart.
//
// # Determinism
//
// Nodes without an initial position are placed uniformly in
// [-Extent, Extent]² by a PCG generator seeded with [Params.Seed]. Coincident
// nodes and zero-length springs are separated along a direction sampled from
// OpenSimplex noise with the same seed. Two engines built from the same graph
// and parameters produce identical trajectories.
package layout
