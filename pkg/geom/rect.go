package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// R is shorthand for Rect{X: x, Y: y, Width: w, Height: h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

func (r Rect) Left() float64    { return r.X }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Right() float64   { return r.X + r.Width }
func (r Rect) Bottom() float64  { return r.Y + r.Height }
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Center returns the midpoint of r.
func (r Rect) Center() Vec { return Vec{X: r.CenterX(), Y: r.CenterY()} }

// Min returns the top-left corner.
func (r Rect) Min() Vec { return Vec{X: r.X, Y: r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Vec { return Vec{X: r.Right(), Y: r.Bottom()} }

// Box converts r to a gonum box.
func (r Rect) Box() r2.Box { return r2.Box{Min: r.Min().r2(), Max: r.Max().r2()} }

// FromBox converts a gonum box to a Rect.
func FromBox(b r2.Box) Rect {
	return Rect{X: b.Min.X, Y: b.Min.Y, Width: b.Max.X - b.Min.X, Height: b.Max.Y - b.Min.Y}
}

// SpansX reports whether x lies within [Left, Right].
func (r Rect) SpansX(x float64) bool { return x >= r.Left() && x <= r.Right() }

// SpansY reports whether y lies within [Top, Bottom].
func (r Rect) SpansY(y float64) bool { return y >= r.Top() && y <= r.Bottom() }

// Contains reports whether p lies inside or on the boundary of r.
func (r Rect) Contains(p Vec) bool { return r.SpansX(p.X) && r.SpansY(p.Y) }

// OnBoundary reports whether p lies exactly on one of r's four sides.
func (r Rect) OnBoundary(p Vec) bool {
	if !r.Contains(p) {
		return false
	}
	return p.X == r.Left() || p.X == r.Right() || p.Y == r.Top() || p.Y == r.Bottom()
}

// Clamp projects p onto the closest point inside r.
func (r Rect) Clamp(p Vec) Vec {
	return Vec{
		X: math.Min(math.Max(p.X, r.Left()), r.Right()),
		Y: math.Min(math.Max(p.Y, r.Top()), r.Bottom()),
	}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vec) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Inset returns r grown by d on every side (shrunk for negative d).
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	b := r2.Box{
		Min: r2.Vec{X: math.Min(r.Left(), s.Left()), Y: math.Min(r.Top(), s.Top())},
		Max: r2.Vec{X: math.Max(r.Right(), s.Right()), Y: math.Max(r.Bottom(), s.Bottom())},
	}
	return FromBox(b)
}

// Extend returns the smallest rectangle containing r and p.
func (r Rect) Extend(p Vec) Rect { return r.Union(Rect{X: p.X, Y: p.Y}) }

// Compare orders rectangles by X, Y, Width, then Height.
func (r Rect) Compare(s Rect) int {
	for _, d := range [...]float64{r.X - s.X, r.Y - s.Y, r.Width - s.Width, r.Height - s.Height} {
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
	}
	return 0
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.Width, r.Height)
}
