package route

import (
	"fmt"
	"slices"

	"github.com/matzehuels/arrange/pkg/geom"
)

// Orientation is the axis along which a connection leaves or enters a shape.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	switch string(b) {
	case "horizontal", "h", "":
		*o = Horizontal
	case "vertical", "v":
		*o = Vertical
	default:
		return fmt.Errorf("unknown orientation %q", b)
	}
	return nil
}

// Direction is the way a route segment travels.
type Direction int

const (
	TopDown Direction = iota
	BottomUp
	LeftToRight
	RightToLeft
)

var directionNames = [...]string{"top-down", "bottom-up", "left-to-right", "right-to-left"}

func (d Direction) String() string {
	if d >= 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case TopDown:
		return BottomUp
	case BottomUp:
		return TopDown
	case LeftToRight:
		return RightToLeft
	default:
		return LeftToRight
	}
}

// BendPoint is a waypoint of a connection.
type BendPoint struct {
	Location geom.Vec `json:"location" yaml:"location"`

	// RelativeToStart marks points that move with the start shape.
	RelativeToStart bool `json:"relative_to_start,omitempty" yaml:"relative_to_start,omitempty"`

	// AutoPosition lets the router place the point.
	AutoPosition bool `json:"auto_position,omitempty" yaml:"auto_position,omitempty"`
}

// Auto returns an auto-positioned bend point anchored to the start or end.
func Auto(relativeToStart bool) BendPoint {
	return BendPoint{RelativeToStart: relativeToStart, AutoPosition: true}
}

// Fixed returns a user-placed bend point.
func Fixed(x, y float64, relativeToStart bool) BendPoint {
	return BendPoint{Location: geom.V(x, y), RelativeToStart: relativeToStart}
}

// Request describes one connection to route.
type Request struct {
	Start, End       geom.Rect
	BendPoints       []BendPoint
	StartOrientation Orientation
	EndOrientation   Orientation
}

// Reversed returns the same connection seen from its end: shapes and
// orientations swapped, bend points in reverse order with their anchor
// flipped.
func (r Request) Reversed() Request {
	return Request{
		Start:            r.End,
		End:              r.Start,
		BendPoints:       reverseBends(r.BendPoints),
		StartOrientation: r.EndOrientation,
		EndOrientation:   r.StartOrientation,
	}
}

// Result is a routed connection.
type Result struct {
	// Points is the polyline from the start shape's boundary to the end
	// shape's boundary.
	Points []geom.Vec

	// BendPoints holds the bend points after auto-positioning.
	BendPoints []BendPoint

	StartOrientation Orientation
	EndOrientation   Orientation
}

func (r Result) reversed() Result {
	pts := slices.Clone(r.Points)
	slices.Reverse(pts)
	return Result{
		Points:           pts,
		BendPoints:       reverseBends(r.BendPoints),
		StartOrientation: r.EndOrientation,
		EndOrientation:   r.StartOrientation,
	}
}

func reverseBends(in []BendPoint) []BendPoint {
	out := make([]BendPoint, len(in))
	for i, b := range in {
		b.RelativeToStart = !b.RelativeToStart
		out[len(in)-1-i] = b
	}
	return out
}
