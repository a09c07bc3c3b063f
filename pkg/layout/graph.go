package layout

import (
	"errors"
	"fmt"

	"github.com/matzehuels/arrange/pkg/geom"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
)

var (
	// ErrEmptyID is returned by [Graph.AddNode] when the node ID is empty.
	ErrEmptyID = errors.New("node ID must not be empty")

	// ErrDuplicateNode is returned by [Graph.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNode = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Graph.AddEdge] and [New] when an edge
	// references a node that is not in the graph.
	ErrUnknownNode = errors.New("edge references unknown node")
)

// Node is a vertex to be positioned.
type Node struct {
	ID string

	// Position is the starting position. Nil means the engine picks one.
	Position *geom.Vec

	// Pinned nodes are never moved by the integrator.
	Pinned bool

	// Mass scales the node's inertia. Zero means 1.
	Mass float64
}

// Edge connects two nodes with a spring. Multi-edges and self-loops are
// allowed; a self-loop never moves its node.
type Edge struct {
	ID       string
	From, To string

	// Length is the spring's rest length. Zero inherits Params.RestLength.
	Length float64

	// Stiffness is the spring constant. Zero inherits Params.Stiffness.
	Stiffness float64
}

// Graph is an ordered collection of nodes and the edges between them.
// Iteration order is insertion order, which keeps simulations reproducible.
//
// The zero value is not usable; create graphs with [NewGraph].
type Graph struct {
	nodes []Node
	index map[string]int
	edges []Edge
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddNode appends n. It fails with an INVALID_GRAPH error wrapping
// [ErrEmptyID] or [ErrDuplicateNode].
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return invalidGraph(ErrEmptyID, "add node")
	}
	if _, ok := g.index[n.ID]; ok {
		return invalidGraph(ErrDuplicateNode, "add node %q", n.ID)
	}
	if n.Position != nil {
		p := *n.Position
		n.Position = &p
	}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return nil
}

// AddEdge appends e. Both endpoints must already be present; otherwise it
// fails with an INVALID_GRAPH error wrapping [ErrUnknownNode].
func (g *Graph) AddEdge(e Edge) error {
	if err := g.checkEdge(e); err != nil {
		return err
	}
	g.edges = append(g.edges, e)
	return nil
}

func (g *Graph) checkEdge(e Edge) error {
	for _, id := range [...]string{e.From, e.To} {
		if _, ok := g.index[id]; !ok {
			return invalidGraph(ErrUnknownNode, "edge %q: node %q", e.ID, id)
		}
	}
	return nil
}

// Validate re-checks every edge against the node set.
func (g *Graph) Validate() error {
	if g == nil || g.index == nil {
		return invalidGraph(errors.New("graph is nil"), "validate")
	}
	for _, e := range g.edges {
		if err := g.checkEdge(e); err != nil {
			return err
		}
	}
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Nodes returns the nodes in insertion order. The slice must not be modified.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edges in insertion order. The slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

func invalidGraph(cause error, format string, args ...any) error {
	return apperrors.Wrap(apperrors.ErrCodeInvalidGraph, cause, "%s", fmt.Sprintf(format, args...))
}
