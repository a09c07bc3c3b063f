package layout

import (
	"math"
	"testing"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
	"github.com/matzehuels/arrange/pkg/geom"
)

func at(x, y float64) *geom.Vec {
	v := geom.V(x, y)
	return &v
}

func chain(t *testing.T, ids ...string) *Graph {
	t.Helper()
	g := NewGraph()
	for _, id := range ids {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	for i := 1; i < len(ids); i++ {
		if err := g.AddEdge(Edge{ID: ids[i-1] + ids[i], From: ids[i-1], To: ids[i]}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func mustEngine(t *testing.T, g *Graph, p Params) *Engine {
	t.Helper()
	e, err := New(g, p)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func positions(e *Engine) map[string]geom.Vec {
	out := make(map[string]geom.Vec)
	for n, p := range e.Nodes() {
		out[n.ID] = p.Position
	}
	return out
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"zero stiffness", func(p *Params) { p.Stiffness = 0 }},
		{"negative repulsion", func(p *Params) { p.Repulsion = -1 }},
		{"zero damping", func(p *Params) { p.Damping = 0 }},
		{"damping above one", func(p *Params) { p.Damping = 1.5 }},
		{"NaN damping", func(p *Params) { p.Damping = math.NaN() }},
		{"zero min distance", func(p *Params) { p.MinDistance = 0 }},
		{"negative rest length", func(p *Params) { p.RestLength = -2 }},
	}

	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("DefaultParams().Validate() error = %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			_, err := New(chain(t, "a", "b"), p)
			if !apperrors.Is(err, apperrors.ErrCodeInvalidParams) {
				t.Errorf("New() error = %v, want INVALID_PARAMS", err)
			}
		})
	}
}

func TestInitialPositions(t *testing.T) {
	g := NewGraph()
	_ = g.AddNode(Node{ID: "fixed", Position: at(40, -12)})
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		_ = g.AddNode(Node{ID: id})
	}

	e := mustEngine(t, g, DefaultParams())
	for n, p := range e.Nodes() {
		if n.ID == "fixed" {
			if p.Position != geom.V(40, -12) {
				t.Errorf("fixed position = %v, want (40,-12)", p.Position)
			}
			continue
		}
		if math.Abs(p.Position.X) > DefaultExtent || math.Abs(p.Position.Y) > DefaultExtent {
			t.Errorf("%s position = %v, want within ±%v", n.ID, p.Position, DefaultExtent)
		}
		if p.Mass != 1 {
			t.Errorf("%s mass = %v, want 1", n.ID, p.Mass)
		}
	}
}

func TestStepDeterministic(t *testing.T) {
	run := func(seed uint64) map[string]geom.Vec {
		p := DefaultParams()
		p.Seed = seed
		e := mustEngine(t, chain(t, "a", "b", "c", "d"), p)
		for range 200 {
			e.Step(DefaultTimeStep)
		}
		return positions(e)
	}

	first, second := run(7), run(7)
	for id, p := range first {
		if second[id] != p {
			t.Errorf("node %s: %v then %v with the same seed", id, p, second[id])
		}
	}

	other := run(8)
	same := true
	for id, p := range first {
		if other[id] != p {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical layouts")
	}
}

func TestTotalEnergyTrend(t *testing.T) {
	e := mustEngine(t, chain(t, "a", "b", "c", "d", "e"), DefaultParams())

	const steps, window = 3000, 100
	var early, late float64
	for i := range steps {
		e.Step(DefaultTimeStep)
		energy := e.TotalEnergy()
		if energy < 0 || math.IsNaN(energy) {
			t.Fatalf("step %d: TotalEnergy() = %v, want non-negative", i, energy)
		}
		switch {
		case i < window:
			early += energy
		case i >= steps-window:
			late += energy
		}
	}
	if late >= early {
		t.Errorf("mean energy rose from %v to %v", early/window, late/window)
	}
}

func TestPinnedNodesNeverMove(t *testing.T) {
	g := NewGraph()
	_ = g.AddNode(Node{ID: "anchor", Position: at(0, 0), Pinned: true})
	_ = g.AddNode(Node{ID: "b", Position: at(0.5, 0)})
	_ = g.AddNode(Node{ID: "c", Position: at(0, 0), Pinned: true})
	_ = g.AddEdge(Edge{ID: "ab", From: "anchor", To: "b"})
	_ = g.AddEdge(Edge{ID: "bc", From: "b", To: "c"})

	e := mustEngine(t, g, DefaultParams())
	for range 500 {
		e.Step(DefaultTimeStep)
	}

	for n, p := range e.Nodes() {
		if !n.Pinned {
			continue
		}
		if p.Position != *n.Position {
			t.Errorf("pinned %s moved to %v", n.ID, p.Position)
		}
		if p.Force.IsZero() {
			t.Errorf("pinned %s reports zero force", n.ID)
		}
	}
}

func TestTotalEnergyIgnoresPinnedTension(t *testing.T) {
	g := NewGraph()
	_ = g.AddNode(Node{ID: "a", Position: at(0, 0), Pinned: true})
	_ = g.AddNode(Node{ID: "b", Position: at(100, 0), Pinned: true})
	_ = g.AddEdge(Edge{ID: "ab", From: "a", To: "b"})

	e := mustEngine(t, g, DefaultParams())
	for range 10 {
		e.Step(DefaultTimeStep)
	}

	for n, p := range e.Nodes() {
		if p.Velocity.IsZero() {
			t.Errorf("pinned %s reports zero velocity under a stretched spring", n.ID)
		}
	}
	if got := e.TotalEnergy(); got != 0 {
		t.Errorf("TotalEnergy() = %v, want 0", got)
	}
}

func TestDefaultRestLengthSpacing(t *testing.T) {
	g := chain(t, "a", "b")
	e := mustEngine(t, g, DefaultParams())
	for range 5000 {
		e.Step(DefaultTimeStep)
	}

	pos := positions(e)
	d := pos["a"].Sub(pos["b"]).Norm()
	if d < 5 || d > 20 {
		t.Errorf("settled distance = %v, want about 10", d)
	}
}

func TestSelfLoopDoesNotMoveNode(t *testing.T) {
	build := func(loop bool) *Engine {
		g := NewGraph()
		_ = g.AddNode(Node{ID: "a", Position: at(1, 1)})
		_ = g.AddNode(Node{ID: "b", Position: at(4, 2)})
		_ = g.AddEdge(Edge{ID: "ab", From: "a", To: "b"})
		if loop {
			_ = g.AddEdge(Edge{ID: "aa", From: "a", To: "a"})
		}
		return mustEngine(t, g, DefaultParams())
	}

	with, without := build(true), build(false)
	for range 300 {
		with.Step(DefaultTimeStep)
		without.Step(DefaultTimeStep)
	}

	got, want := positions(with), positions(without)
	for id := range want {
		if !got[id].IsFinite() {
			t.Fatalf("%s position = %v, want finite", id, got[id])
		}
		if got[id] != want[id] {
			t.Errorf("%s = %v with self-loop, %v without", id, got[id], want[id])
		}
	}
}

func TestSelfLoopSingleNode(t *testing.T) {
	g := NewGraph()
	_ = g.AddNode(Node{ID: "solo", Position: at(3, 3)})
	_ = g.AddEdge(Edge{ID: "loop", From: "solo", To: "solo"})

	e := mustEngine(t, g, DefaultParams())
	for range 100 {
		e.Step(DefaultTimeStep)
	}
	if p, _ := e.Position("solo"); p != geom.V(3, 3) {
		t.Errorf("Position(solo) = %v, want (3,3)", p)
	}
	if e.TotalEnergy() != 0 {
		t.Errorf("TotalEnergy() = %v, want 0", e.TotalEnergy())
	}
}

func TestCoincidentNodesSeparate(t *testing.T) {
	g := NewGraph()
	_ = g.AddNode(Node{ID: "a", Position: at(2, 2)})
	_ = g.AddNode(Node{ID: "b", Position: at(2, 2)})
	_ = g.AddEdge(Edge{ID: "ab", From: "a", To: "b"})

	e := mustEngine(t, g, DefaultParams())
	e.Step(DefaultTimeStep)

	a, _ := e.Position("a")
	b, _ := e.Position("b")
	if !a.IsFinite() || !b.IsFinite() {
		t.Fatalf("positions = %v, %v, want finite", a, b)
	}
	if a == b {
		t.Errorf("coincident nodes still coincide at %v", a)
	}
	if mid := a.Add(b).Scale(0.5); mid.Dist(geom.V(2, 2)) > 1e-9 {
		t.Errorf("midpoint drifted to %v", mid)
	}
}

func TestCenterAttraction(t *testing.T) {
	g := NewGraph()
	_ = g.AddNode(Node{ID: "a", Position: at(10, -10)})

	p := DefaultParams()
	p.CenterAttraction = 5
	e := mustEngine(t, g, p)
	for range 2000 {
		e.Step(0.05)
	}
	if pos, _ := e.Position("a"); pos.Norm() > 0.01 {
		t.Errorf("Position(a) = %v, want near origin", pos)
	}
}

// Two nodes joined by a zero-length spring with no repulsion and no damping
// oscillate about their common midpoint; on average they sit on it.
func TestTwoNodeSpringUndamped(t *testing.T) {
	g := NewGraph()
	_ = g.AddNode(Node{ID: "a", Position: at(-1, 0)})
	_ = g.AddNode(Node{ID: "b", Position: at(1, 0)})
	_ = g.AddEdge(Edge{ID: "ab", From: "a", To: "b"})

	p := DefaultParams()
	p.Stiffness, p.Repulsion, p.Damping, p.RestLength = 1, 0, 1, 0
	e := mustEngine(t, g, p)

	const steps = 20000
	var meanA, meanB geom.Vec
	for range steps {
		e.Step(DefaultTimeStep)
		a, _ := e.Position("a")
		b, _ := e.Position("b")
		if a.Dist(b) > 2+1e-3 {
			t.Fatalf("separation grew to %v", a.Dist(b))
		}
		meanA = meanA.Add(a.Scale(1.0 / steps))
		meanB = meanB.Add(b.Scale(1.0 / steps))
	}

	if meanA.Dist(geom.V(0, 0)) > 0.05 || meanB.Dist(geom.V(0, 0)) > 0.05 {
		t.Errorf("mean positions %v, %v, want both near origin", meanA, meanB)
	}
}

func TestTwoNodeSpringDamped(t *testing.T) {
	g := NewGraph()
	_ = g.AddNode(Node{ID: "a", Position: at(-1, 3)})
	_ = g.AddNode(Node{ID: "b", Position: at(1, 3)})
	_ = g.AddEdge(Edge{ID: "ab", From: "a", To: "b"})

	p := DefaultParams()
	p.Stiffness, p.Repulsion, p.Damping, p.RestLength = 1, 0, 0.9, 0
	e := mustEngine(t, g, p)
	for range 500 {
		e.Step(0.1)
	}

	a, _ := e.Position("a")
	b, _ := e.Position("b")
	if a.Dist(b) > 1e-6 {
		t.Errorf("separation = %v, want converged", a.Dist(b))
	}
	if a.Dist(geom.V(0, 3)) > 1e-6 {
		t.Errorf("meeting point = %v, want (0,3)", a)
	}
}

func TestLineGraphMidpoint(t *testing.T) {
	g := NewGraph()
	_ = g.AddNode(Node{ID: "a", Position: at(-3, 0), Pinned: true})
	_ = g.AddNode(Node{ID: "b", Position: at(0.7, 1.3)})
	_ = g.AddNode(Node{ID: "c", Position: at(3, 0), Pinned: true})
	_ = g.AddEdge(Edge{ID: "ab", From: "a", To: "b"})
	_ = g.AddEdge(Edge{ID: "bc", From: "b", To: "c"})

	p := DefaultParams()
	p.Stiffness, p.Repulsion = 10, 0.001
	e := mustEngine(t, g, p)
	for range 3000 {
		e.Step(0.1)
	}

	b, _ := e.Position("b")
	if b.Dist(geom.V(0, 0)) > 1e-3 {
		t.Errorf("Position(b) = %v, want midpoint (0,0)", b)
	}
}

func TestSpringsTraversal(t *testing.T) {
	g := chain(t, "a", "b", "c")
	_ = g.AddEdge(Edge{ID: "ac", From: "a", To: "c", Length: 7, Stiffness: 3})
	e := mustEngine(t, g, DefaultParams())

	var ids []string
	for edge, s := range e.Springs() {
		ids = append(ids, edge.ID)
		if edge.ID == "ac" && (s.Length != 7 || s.Stiffness != 3) {
			t.Errorf("spring ac = (%v, %v), want (7, 3)", s.Length, s.Stiffness)
		}
		if edge.ID == "ab" && (s.Length != DefaultRestLength || s.Stiffness != DefaultStiffness) {
			t.Errorf("spring ab = (%v, %v), want defaults", s.Length, s.Stiffness)
		}
	}
	if len(ids) != 3 || ids[0] != "ab" || ids[2] != "ac" {
		t.Errorf("Springs() order = %v, want [ab bc ac]", ids)
	}

	// restartable and stoppable
	count := 0
	for range e.Springs() {
		count++
		break
	}
	if count != 1 {
		t.Errorf("early break yielded %d springs", count)
	}
	count = 0
	for range e.Nodes() {
		count++
	}
	if count != 3 {
		t.Errorf("Nodes() second pass yielded %d nodes, want 3", count)
	}
}
