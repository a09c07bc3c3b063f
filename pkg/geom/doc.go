// Package geom provides the planar vector and rectangle types shared by the
// layout engine, the connection router and the renderers.
//
// [Vec] is a two-component float vector backed by gonum's spatial/r2
// arithmetic. Coordinates follow screen convention: X grows to the right and
// Y grows downward, so a [Rect]'s Top is numerically smaller than its Bottom.
//
// # Zero Vectors
//
// [Vec.Unit] of the zero vector is the zero vector, never NaN. Callers that
// need a direction for coincident points supply their own fallback.
package geom
