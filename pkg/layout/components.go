package layout

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Components partitions g's nodes into connected components, ignoring edge
// direction. Components are ordered by their first node's insertion index and
// list node IDs in insertion order.
//
// Components that are not connected to each other only repel, so a graph
// with more than one component never comes to rest.
func Components(g *Graph) [][]string {
	ug := simple.NewUndirectedGraph()
	for i := range g.nodes {
		ug.AddNode(simple.Node(i))
	}
	for _, e := range g.edges {
		a, b := g.index[e.From], g.index[e.To]
		if a == b {
			continue // simple graphs reject self-loops
		}
		ug.SetEdge(ug.NewEdge(simple.Node(a), simple.Node(b)))
	}

	var idx [][]int
	for _, cc := range topo.ConnectedComponents(ug) {
		ids := make([]int, len(cc))
		for i, n := range cc {
			ids[i] = int(n.ID())
		}
		slices.Sort(ids)
		idx = append(idx, ids)
	}
	slices.SortFunc(idx, func(a, b []int) int { return a[0] - b[0] })

	out := make([][]string, len(idx))
	for i, ids := range idx {
		out[i] = make([]string, len(ids))
		for j, k := range ids {
			out[i][j] = g.nodes[k].ID
		}
	}
	return out
}
