package render

import (
	"context"
	"math"

	"github.com/matzehuels/arrange/pkg/diagram"
	"github.com/matzehuels/arrange/pkg/geom"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
)

// Output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatPNG, FormatDOT, FormatGraphviz}

// Default rendering values.
const (
	DefaultPadding  = 20.0
	DefaultFontSize = 12.0
	DefaultScale    = 1.0
)

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == FormatGraphviz {
		return "graphviz.svg"
	}
	return format
}

// Options controls the output.
type Options struct {
	Padding  float64 `json:"padding,omitempty" toml:"padding"`
	FontSize float64 `json:"font_size,omitempty" toml:"font_size"`

	// Scale multiplies the PNG resolution.
	Scale float64 `json:"scale,omitempty" toml:"scale"`
}

// WithDefaults fills unset fields.
func (o Options) WithDefaults() Options {
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	return o
}

// Render produces d in the given format.
func Render(ctx context.Context, d *diagram.Diagram, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return SVG(d, opts), nil
	case FormatPNG:
		return PNG(d, opts)
	case FormatDOT:
		return []byte(DOT(d)), nil
	case FormatGraphviz:
		return Graphviz(ctx, d)
	}
	return nil, apperrors.ValidateFormat(format, Formats...)
}

// frame is the drawing area: the diagram's bounds plus padding, with the
// translation that moves the diagram into it.
type frame struct {
	width, height int
	offset        geom.Vec
}

func newFrame(d *diagram.Diagram, padding float64) frame {
	b := d.Bounds()
	return frame{
		width:  int(math.Ceil(b.Width + 2*padding)),
		height: int(math.Ceil(b.Height + 2*padding)),
		offset: geom.V(padding-b.X, padding-b.Y),
	}
}
