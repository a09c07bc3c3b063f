package route

import (
	"testing"

	"github.com/matzehuels/arrange/pkg/geom"
)

func TestInitialOrientations(t *testing.T) {
	a := geom.R(0, 0, 100, 50)
	tests := []struct {
		name       string
		start, end geom.Rect
		wantS      Orientation
		wantE      Orientation
	}{
		{"side by side", a, geom.R(300, 0, 100, 50), Horizontal, Horizontal},
		{"side by side, reversed", geom.R(300, 0, 100, 50), a, Horizontal, Horizontal},
		{"stacked", a, geom.R(0, 200, 100, 50), Vertical, Vertical},
		{"stacked exactly at threshold", a, geom.R(0, 100, 100, 50), Vertical, Vertical},
		{"stacked below threshold", a, geom.R(0, 99, 100, 50), Vertical, Horizontal},
		{"diagonal far", a, geom.R(300, 300, 100, 50), Vertical, Vertical},
		{"diagonal close", a, geom.R(110, 60, 100, 50), Vertical, Horizontal},
		{"overlapping", a, geom.R(10, 10, 100, 50), Vertical, Horizontal},
		{"same shape", a, a, Horizontal, Vertical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e := InitialOrientations(tt.start, tt.end)
			if s != tt.wantS || e != tt.wantE {
				t.Errorf("InitialOrientations() = (%v, %v), want (%v, %v)", s, e, tt.wantS, tt.wantE)
			}
		})
	}
}

func TestInferOrientation(t *testing.T) {
	shape := geom.R(0, 0, 100, 50)
	tests := []struct {
		name    string
		p       geom.Vec
		current Orientation
		want    Orientation
	}{
		{"above", geom.V(40, -30), Horizontal, Vertical},
		{"below", geom.V(100, 90), Horizontal, Vertical},
		{"right", geom.V(140, 10), Vertical, Horizontal},
		{"left", geom.V(-20, 50), Vertical, Horizontal},
		{"corner region keeps horizontal", geom.V(150, 80), Horizontal, Horizontal},
		{"corner region keeps vertical", geom.V(-30, -30), Vertical, Vertical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferOrientation(shape, tt.p, tt.current); got != tt.want {
				t.Errorf("inferOrientation(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestOrientationText(t *testing.T) {
	for _, o := range []Orientation{Horizontal, Vertical} {
		b, err := o.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText() error = %v", err)
		}
		var got Orientation
		if err := got.UnmarshalText(b); err != nil || got != o {
			t.Errorf("UnmarshalText(%q) = %v, %v, want %v", b, got, err, o)
		}
	}

	var o Orientation
	if err := o.UnmarshalText([]byte("diagonal")); err == nil {
		t.Error("UnmarshalText(diagonal) should fail")
	}
}
