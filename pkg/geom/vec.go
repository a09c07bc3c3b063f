package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a point or displacement in the plane.
type Vec struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) r2() r2.Vec { return r2.Vec(v) }

func fromR2(v r2.Vec) Vec { return Vec(v) }

// Add returns v+w.
func (v Vec) Add(w Vec) Vec { return fromR2(r2.Add(v.r2(), w.r2())) }

// Sub returns v-w.
func (v Vec) Sub(w Vec) Vec { return fromR2(r2.Sub(v.r2(), w.r2())) }

// Scale returns f·v.
func (v Vec) Scale(f float64) Vec { return fromR2(r2.Scale(f, v.r2())) }

// Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float64 { return r2.Dot(v.r2(), w.r2()) }

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 { return r2.Norm(v.r2()) }

// Norm2 returns the squared length of v.
func (v Vec) Norm2() float64 { return r2.Norm2(v.r2()) }

// Unit returns v scaled to length one, or the zero vector if v is zero.
func (v Vec) Unit() Vec {
	if v.IsZero() {
		return Vec{}
	}
	return fromR2(r2.Unit(v.r2()))
}

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Round rounds both components to the nearest integer.
func (v Vec) Round() Vec { return Vec{X: math.Round(v.X), Y: math.Round(v.Y)} }

// Dist returns the distance between v and w.
func (v Vec) Dist(w Vec) float64 { return v.Sub(w).Norm() }

func (v Vec) String() string { return fmt.Sprintf("(%g,%g)", v.X, v.Y) }

// Compare orders vectors by X, then Y. It returns -1, 0 or +1.
func (v Vec) Compare(w Vec) int {
	switch {
	case v.X < w.X:
		return -1
	case v.X > w.X:
		return 1
	case v.Y < w.Y:
		return -1
	case v.Y > w.Y:
		return 1
	}
	return 0
}
