package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/arrange/pkg/diagram"
	"github.com/matzehuels/arrange/pkg/geom"
)

var (
	colorBackground = color.White
	colorShape      = color.RGBA{0xf8, 0xf9, 0xfa, 0xff}
	colorInk        = color.RGBA{0x34, 0x3a, 0x40, 0xff}
)

// PNG draws d as a PNG image. Labels use gg's built-in bitmap font, so
// opts.FontSize does not apply.
func PNG(d *diagram.Diagram, opts Options) ([]byte, error) {
	opts = opts.WithDefaults()
	f := newFrame(d, opts.Padding)

	w, h := int(float64(f.width)*opts.Scale), int(float64(f.height)*opts.Scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dc := gg.NewContext(w, h)
	dc.SetColor(colorBackground)
	dc.Clear()
	dc.Scale(opts.Scale, opts.Scale)
	dc.Translate(f.offset.X, f.offset.Y)

	for _, s := range d.Shapes {
		r := s.Bounds()
		dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		dc.SetColor(colorShape)
		dc.FillPreserve()
		dc.SetColor(colorInk)
		dc.SetLineWidth(1)
		dc.Stroke()
		dc.DrawStringAnchored(s.DisplayLabel(), r.CenterX(), r.CenterY(), 0.5, 0.5)
	}

	for _, c := range d.Connections {
		if len(c.Route) < 2 {
			continue
		}
		dc.SetColor(colorInk)
		dc.SetLineWidth(1.5)
		if c.Kind.Dashed() {
			dc.SetDash(6, 4)
		}
		dc.MoveTo(c.Route[0].X, c.Route[0].Y)
		for _, p := range c.Route[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
		dc.SetDash()

		hs, he := heads(c.Kind)
		start, end := endHeads(c)
		drawHeadPNG(dc, hs, start)
		drawHeadPNG(dc, he, end)

		if c.Label != "" {
			m := labelAnchor(c.Route)
			dc.DrawStringAnchored(c.Label, m.X, m.Y-4, 0.5, 1)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeadPNG(dc *gg.Context, h head, pts []geom.Vec) {
	if len(pts) == 0 {
		return
	}
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	if !h.closed() {
		dc.Stroke()
		return
	}
	dc.ClosePath()
	if h.filled() {
		dc.SetColor(colorInk)
	} else {
		dc.SetColor(colorBackground)
	}
	dc.FillPreserve()
	dc.SetColor(colorInk)
	dc.Stroke()
}
