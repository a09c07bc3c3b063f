package layout

import (
	"slices"
	"testing"
)

func TestComponents(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{ID: "1", From: "a", To: "b"})
	_ = g.AddEdge(Edge{ID: "2", From: "d", To: "d"})
	_ = g.AddEdge(Edge{ID: "3", From: "e", To: "a"})
	_ = g.AddEdge(Edge{ID: "4", From: "b", To: "a"})

	got := Components(g)
	want := [][]string{{"a", "b", "e"}, {"c"}, {"d"}}
	if len(got) != len(want) {
		t.Fatalf("Components() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("Components()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestComponentsEmpty(t *testing.T) {
	if got := Components(NewGraph()); len(got) != 0 {
		t.Errorf("Components(empty) = %v, want none", got)
	}
}
