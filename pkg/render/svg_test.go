package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/arrange/pkg/diagram"
)

func TestSVG(t *testing.T) {
	out := string(SVG(routed(t), Options{}))

	checks := []struct {
		name string
		sub  string
		want int
	}{
		{"background and shapes", "<rect", 4},
		{"routes and open arrow", "<polyline", 3},
		{"composition diamond", "<polygon", 1},
		{"dashed dependency", "stroke-dasharray", 1},
		{"title", "<title>orders</title>", 1},
		{"shape id", `id="shape-order"`, 1},
		{"connection id", `id="connection-places"`, 1},
		{"shape label", ">Order<", 1},
		{"connection label", ">places<", 1},
	}
	for _, c := range checks {
		if got := strings.Count(out, c.sub); got != c.want {
			t.Errorf("%s: count(%q) = %d, want %d", c.name, c.sub, got, c.want)
		}
	}
	if !strings.Contains(out, `width="440" height="290"`) {
		t.Errorf("SVG() missing frame size 440x290:\n%s", out)
	}
}

func TestSVGEscapes(t *testing.T) {
	d := &diagram.Diagram{Shapes: []diagram.Shape{{ID: `a"b`, Label: "R&D", Width: 10, Height: 10}}}
	out := string(SVG(d, Options{}))

	if !strings.Contains(out, "R&amp;D") {
		t.Errorf("label not escaped:\n%s", out)
	}
	if !strings.Contains(out, `id="shape-a&#34;b"`) {
		t.Errorf("id not escaped:\n%s", out)
	}
}

func TestSVGSkipsUnroutedConnections(t *testing.T) {
	d := routed(t)
	d.Connections[0].Route = nil
	out := string(SVG(d, Options{}))
	if strings.Contains(out, "connection-places") {
		t.Errorf("unrouted connection drawn:\n%s", out)
	}
}
