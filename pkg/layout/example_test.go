package layout_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/arrange/pkg/geom"
	"github.com/matzehuels/arrange/pkg/layout"
)

func ExampleRun() {
	left, right := geom.V(-3, 0), geom.V(3, 0)
	g := layout.NewGraph()
	_ = g.AddNode(layout.Node{ID: "left", Position: &left, Pinned: true})
	_ = g.AddNode(layout.Node{ID: "middle"})
	_ = g.AddNode(layout.Node{ID: "right", Position: &right, Pinned: true})
	_ = g.AddEdge(layout.Edge{ID: "l", From: "left", To: "middle"})
	_ = g.AddEdge(layout.Edge{ID: "r", From: "middle", To: "right"})

	p := layout.DefaultParams()
	p.Stiffness, p.Repulsion = 10, 0.001
	e, err := layout.New(g, p)
	if err != nil {
		fmt.Println(err)
		return
	}

	b := layout.DefaultBounds()
	b.TimeStep = 0.1
	b.Threshold = 1e-12
	res, _ := layout.Run(context.Background(), e, b, nil)

	mid, _ := e.Position("middle")
	fmt.Println("converged:", res.Converged)
	fmt.Println("centred:", mid.Dist(geom.V(0, 0)) < 1e-3)
	// Output:
	// converged: true
	// centred: true
}

func ExampleComponents() {
	g := layout.NewGraph()
	for _, id := range []string{"order", "customer", "invoice", "audit"} {
		_ = g.AddNode(layout.Node{ID: id})
	}
	_ = g.AddEdge(layout.Edge{ID: "places", From: "customer", To: "order"})
	_ = g.AddEdge(layout.Edge{ID: "bills", From: "invoice", To: "order"})

	fmt.Println(layout.Components(g))
	// Output: [[order customer invoice] [audit]]
}
