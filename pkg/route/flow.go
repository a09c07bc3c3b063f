package route

import (
	"github.com/matzehuels/arrange/pkg/geom"
)

// frame describes a flow direction: the axis it travels on and whether it
// moves toward increasing (+1) or decreasing (-1) coordinates.
type frame struct {
	fwd  axis
	sign float64
}

var frames = [...]frame{
	TopDown:     {axisY, +1},
	BottomUp:    {axisY, -1},
	LeftToRight: {axisX, +1},
	RightToLeft: {axisX, -1},
}

// progress is p's signed position along the direction of travel.
func (f frame) progress(p geom.Vec) float64 { return f.sign * f.fwd.of(p) }

func (f frame) lat(p geom.Vec) float64 { return f.fwd.other().of(p) }

// at builds the point with forward coordinate fwd and lateral coordinate lat.
func (f frame) at(fwd, lat float64) geom.Vec { return f.fwd.point(fwd, lat) }

// Transition returns the points to emit when the route, currently flowing in
// direction d and standing at p, moves on to bend point n, and the direction
// it flows in afterwards. n2 is the point after n, or n projected onto the end
// shape when n is the last bend point, in which case last is true. The
// returned points always end with n.
//
// Aligned hops need no corner. A diagonal hop gets one corner, chosen in the
// frame of d (forward axis, lateral axis):
//
//  1. n lies behind p: turn back at once; corner level with p, direction
//     reverses.
//  2. last is true and n2 sits straight ahead of n on n's lateral line:
//     jog sideways halfway between p and n, keeping d.
//  3. n2 does not lie laterally beyond p toward n, or n2 is ahead of n and
//     laterally between p and n: step sideways to n's lateral line at p,
//     then continue in direction d.
//  4. Otherwise go forward to n's level first, then turn sideways; the
//     direction points from p toward n laterally.
func Transition(d Direction, p, n, n2 geom.Vec, last bool) (Direction, []geom.Vec) {
	switch {
	case n.X == p.X && n.Y < p.Y:
		return BottomUp, []geom.Vec{n}
	case n.X == p.X:
		return TopDown, []geom.Vec{n}
	case n.Y == p.Y && n.X < p.X:
		return RightToLeft, []geom.Vec{n}
	case n.Y == p.Y:
		return LeftToRight, []geom.Vec{n}
	}

	f := frames[d]

	if f.progress(n) < f.progress(p) {
		return d.Opposite(), []geom.Vec{f.at(f.fwd.of(p), f.lat(n)), n}
	}

	if last && f.lat(n2) == f.lat(n) && f.progress(n2) >= f.progress(n) {
		c := (f.fwd.of(p) + f.fwd.of(n)) / 2
		return d, []geom.Vec{f.at(c, f.lat(p)), f.at(c, f.lat(n)), n}
	}

	s := sign(f.lat(n) - f.lat(p))
	if s*(f.lat(n2)-f.lat(p)) <= 0 || (f.progress(n2) >= f.progress(n) && s*(f.lat(n2)-f.lat(n)) < 0) {
		return d, []geom.Vec{f.at(f.fwd.of(p), f.lat(n)), n}
	}
	return f.fwd.other().toward(s), []geom.Vec{f.at(f.fwd.of(n), f.lat(p)), n}
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
