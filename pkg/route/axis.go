package route

import "github.com/matzehuels/arrange/pkg/geom"

// axis selects one coordinate of a point or one extent of a rectangle.
type axis int

const (
	axisX axis = iota
	axisY
)

func (a axis) other() axis { return 1 - a }

// along is the axis a connection travels on when it leaves a shape with
// orientation o.
func along(o Orientation) axis {
	if o == Vertical {
		return axisY
	}
	return axisX
}

func (a axis) of(v geom.Vec) float64 {
	if a == axisY {
		return v.Y
	}
	return v.X
}

func (a axis) set(v *geom.Vec, x float64) {
	if a == axisY {
		v.Y = x
	} else {
		v.X = x
	}
}

// point builds a vector whose a-coordinate is x and whose other coordinate is y.
func (a axis) point(x, y float64) geom.Vec {
	if a == axisY {
		return geom.V(y, x)
	}
	return geom.V(x, y)
}

func (a axis) lo(r geom.Rect) float64 {
	if a == axisY {
		return r.Top()
	}
	return r.Left()
}

func (a axis) hi(r geom.Rect) float64 {
	if a == axisY {
		return r.Bottom()
	}
	return r.Right()
}

func (a axis) mid(r geom.Rect) float64 {
	if a == axisY {
		return r.CenterY()
	}
	return r.CenterX()
}

func (a axis) size(r geom.Rect) float64 {
	if a == axisY {
		return r.Height
	}
	return r.Width
}

func (a axis) spans(r geom.Rect, x float64) bool { return x >= a.lo(r) && x <= a.hi(r) }

// toward is the direction moving along a with the given sign.
func (a axis) toward(sign float64) Direction {
	switch {
	case a == axisX && sign > 0:
		return LeftToRight
	case a == axisX:
		return RightToLeft
	case sign > 0:
		return TopDown
	default:
		return BottomUp
	}
}
