package geom

import (
	"math"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a, b := V(3, 4), V(1, -2)

	if got := a.Add(b); got != V(4, 2) {
		t.Errorf("Add() = %v, want %v", got, V(4, 2))
	}
	if got := a.Sub(b); got != V(2, 6) {
		t.Errorf("Sub() = %v, want %v", got, V(2, 6))
	}
	if got := a.Scale(0.5); got != V(1.5, 2) {
		t.Errorf("Scale() = %v, want %v", got, V(1.5, 2))
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot() = %v, want %v", got, -5)
	}
	if got := a.Norm(); got != 5 {
		t.Errorf("Norm() = %v, want %v", got, 5)
	}
	if got := a.Norm2(); got != 25 {
		t.Errorf("Norm2() = %v, want %v", got, 25)
	}
	if got := a.Dist(V(0, 0)); got != 5 {
		t.Errorf("Dist() = %v, want %v", got, 5)
	}
}

func TestVecUnit(t *testing.T) {
	tests := []struct {
		name string
		in   Vec
		want Vec
	}{
		{"axis", V(0, -7), V(0, -1)},
		{"diagonal", V(3, 4), V(0.6, 0.8)},
		{"zero", V(0, 0), V(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Unit()
			if !got.IsFinite() {
				t.Fatalf("Unit() = %v, want finite", got)
			}
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("Unit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVecCompare(t *testing.T) {
	tests := []struct {
		a, b Vec
		want int
	}{
		{V(0, 0), V(0, 0), 0},
		{V(0, 5), V(1, 0), -1},
		{V(1, 0), V(0, 5), 1},
		{V(1, 1), V(1, 2), -1},
		{V(1, 3), V(1, 2), 1},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVecIsFinite(t *testing.T) {
	if !V(1, 2).IsFinite() {
		t.Error("IsFinite() = false for ordinary vector")
	}
	if V(math.NaN(), 0).IsFinite() {
		t.Error("IsFinite() = true for NaN component")
	}
	if V(0, math.Inf(-1)).IsFinite() {
		t.Error("IsFinite() = true for infinite component")
	}
}
