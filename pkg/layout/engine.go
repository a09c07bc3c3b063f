package layout

import (
	"iter"
	"math"
	"math/rand/v2"
	"slices"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/matzehuels/arrange/pkg/geom"
)

// noiseScale spreads pair indices across the noise field so neighbouring
// pairs get unrelated directions.
const noiseScale = 0.731

// Point is the simulated state of one node.
type Point struct {
	Position geom.Vec
	Velocity geom.Vec
	Force    geom.Vec
	Mass     float64
	Pinned   bool
}

// Spring is the simulated state of one edge: its endpoints' points plus the
// resolved rest length and spring constant.
type Spring struct {
	From, To  Point
	Length    float64
	Stiffness float64
}

type spring struct {
	a, b      int
	length    float64
	stiffness float64
}

// Engine runs the force-directed simulation for one graph.
// It is not safe for concurrent use.
type Engine struct {
	params  Params
	nodes   []Node
	index   map[string]int
	points  []Point
	edges   []Edge
	springs []spring
	noise   opensimplex.Noise
	steps   int
}

// New validates p and g and builds one point per node and one spring per
// edge. Nodes without a position are placed pseudo-randomly in the square
// [-p.Extent, p.Extent]².
func New(g *Graph, p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	e := &Engine{
		params: p,
		nodes:  slices.Clone(g.nodes),
		index:  make(map[string]int, len(g.nodes)),
		points: make([]Point, len(g.nodes)),
		edges:  slices.Clone(g.edges),
		noise:  opensimplex.New(int64(p.Seed)),
	}

	for i, n := range g.nodes {
		e.index[n.ID] = i
		pt := Point{Mass: n.Mass, Pinned: n.Pinned}
		if pt.Mass <= 0 {
			pt.Mass = 1
		}
		if n.Position != nil {
			pt.Position = *n.Position
		} else {
			pt.Position = geom.V(
				p.Extent*(2*rng.Float64()-1),
				p.Extent*(2*rng.Float64()-1),
			)
		}
		e.points[i] = pt
	}

	e.springs = make([]spring, len(g.edges))
	for i, edge := range g.edges {
		s := spring{
			a:         e.index[edge.From],
			b:         e.index[edge.To],
			length:    edge.Length,
			stiffness: edge.Stiffness,
		}
		if s.length == 0 {
			s.length = p.RestLength
		}
		if s.stiffness == 0 {
			s.stiffness = p.Stiffness
		}
		e.springs[i] = s
	}

	return e, nil
}

// Params returns the tunables the engine was built with.
func (e *Engine) Params() Params { return e.params }

// Iterations returns the number of steps taken so far.
func (e *Engine) Iterations() int { return e.steps }

// Step advances the simulation by dt. Forces are recomputed from scratch,
// then velocities and positions of unpinned nodes are integrated.
func (e *Engine) Step(dt float64) {
	for i := range e.points {
		e.points[i].Force = geom.Vec{}
	}
	e.applySprings()
	e.applyRepulsion()
	e.applyCenterAttraction()
	e.integrate(dt)
	e.steps++
}

func (e *Engine) applySprings() {
	for i, s := range e.springs {
		if s.a == s.b {
			continue // a self-loop has no length to restore
		}
		a, b := &e.points[s.a], &e.points[s.b]
		d := b.Position.Sub(a.Position)
		dist := d.Norm()
		if dist == 0 {
			f := e.direction(s.a, len(e.points)+i).Scale(e.params.Perturbation)
			a.Force = a.Force.Sub(f)
			b.Force = b.Force.Add(f)
			continue
		}
		f := d.Scale(0.5 * s.stiffness * (dist - s.length) / dist)
		a.Force = a.Force.Add(f)
		b.Force = b.Force.Sub(f)
	}
}

func (e *Engine) applyRepulsion() {
	if e.params.Repulsion == 0 {
		return
	}
	for i := range e.points {
		for j := i + 1; j < len(e.points); j++ {
			a, b := &e.points[i], &e.points[j]
			d := b.Position.Sub(a.Position)
			dist := d.Norm()

			var dir geom.Vec
			if dist == 0 {
				dir = e.direction(i, j)
			} else {
				dir = d.Scale(1 / dist)
			}
			r := math.Max(dist, e.params.MinDistance)
			f := dir.Scale(e.params.Repulsion / (r * r))
			a.Force = a.Force.Sub(f)
			b.Force = b.Force.Add(f)
		}
	}
}

func (e *Engine) applyCenterAttraction() {
	if e.params.CenterAttraction == 0 {
		return
	}
	for i := range e.points {
		p := &e.points[i]
		p.Force = p.Force.Sub(p.Position.Scale(e.params.CenterAttraction))
	}
}

func (e *Engine) integrate(dt float64) {
	for i := range e.points {
		p := &e.points[i]
		accel := p.Force.Scale(dt / p.Mass)
		if p.Pinned {
			// Reported only; pinned velocity never accumulates.
			p.Velocity = accel.Scale(e.params.Damping)
			continue
		}
		p.Velocity = p.Velocity.Add(accel).Scale(e.params.Damping)
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
	}
}

// direction returns a deterministic unit vector for the index pair (i, j).
func (e *Engine) direction(i, j int) geom.Vec {
	n := e.noise.Eval2(float64(i)*noiseScale+0.5, float64(j)*noiseScale+0.25)
	theta := n * math.Pi * 2
	return geom.V(math.Cos(theta), math.Sin(theta))
}

// TotalEnergy returns the kinetic energy Σ ½·m·|v|² of all movable nodes.
// Pinned nodes are skipped: their reported velocity reflects residual spring
// tension that never relaxes, so counting it would keep the energy above any
// threshold and [Run] would never converge.
func (e *Engine) TotalEnergy() float64 {
	var energy float64
	for _, p := range e.points {
		if p.Pinned {
			continue
		}
		energy += 0.5 * p.Mass * p.Velocity.Norm2()
	}
	return energy
}

// Nodes yields every node with its current point state, in insertion order.
// The sequence can be ranged over any number of times.
func (e *Engine) Nodes() iter.Seq2[Node, Point] {
	return func(yield func(Node, Point) bool) {
		for i, n := range e.nodes {
			if !yield(n, e.points[i]) {
				return
			}
		}
	}
}

// Springs yields every edge with its current spring state, in insertion order.
func (e *Engine) Springs() iter.Seq2[Edge, Spring] {
	return func(yield func(Edge, Spring) bool) {
		for i, edge := range e.edges {
			s := e.springs[i]
			if !yield(edge, Spring{
				From:      e.points[s.a],
				To:        e.points[s.b],
				Length:    s.length,
				Stiffness: s.stiffness,
			}) {
				return
			}
		}
	}
}

// Position returns the current position of the node with the given ID.
func (e *Engine) Position(id string) (geom.Vec, bool) {
	i, ok := e.index[id]
	if !ok {
		return geom.Vec{}, false
	}
	return e.points[i].Position, true
}

// Bounds returns the bounding box of all node positions.
func (e *Engine) Bounds() geom.Rect {
	if len(e.points) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{X: e.points[0].Position.X, Y: e.points[0].Position.Y}
	for _, p := range e.points[1:] {
		r = r.Extend(p.Position)
	}
	return r
}
