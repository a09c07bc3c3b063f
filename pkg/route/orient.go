package route

import (
	"math"

	"github.com/matzehuels/arrange/pkg/geom"
)

// Spacing is the distance kept between a shape and its auto-positioned bend
// points. Shapes further apart than twice the spacing on one axis get a
// straight connection along that axis.
const Spacing = 25.0

// InitialOrientations chooses both orientations for a connection whose end
// bend points are auto-positioned. It uses the router's default spacing.
func InitialOrientations(start, end geom.Rect) (Orientation, Orientation) {
	return initialOrientations(start, end, Spacing)
}

func initialOrientations(start, end geom.Rect, spacing float64) (Orientation, Orientation) {
	if start == end {
		return Horizontal, Vertical
	}

	hDiff := math.Max(start.Left()-end.Right(), end.Left()-start.Right())
	vDiff := math.Max(start.Top()-end.Bottom(), end.Top()-start.Bottom())

	switch {
	case vDiff >= 2*spacing:
		return Vertical, Vertical
	case hDiff >= 2*spacing:
		return Horizontal, Horizontal
	default:
		return Vertical, Horizontal
	}
}

// inferOrientation derives the orientation of a fixed end bend point from
// its position relative to the shape. A point above or below the shape leaves
// vertically, one beside it horizontally; otherwise current is kept.
func inferOrientation(shape geom.Rect, p geom.Vec, current Orientation) Orientation {
	switch {
	case shape.SpansX(p.X):
		return Vertical
	case shape.SpansY(p.Y):
		return Horizontal
	}
	return current
}
