package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/matzehuels/arrange/pkg/diagram"
)

func TestPNG(t *testing.T) {
	data, err := PNG(routed(t), Options{Scale: 2})
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 880 || b.Dy() != 580 {
		t.Errorf("PNG() size = %dx%d, want 880x580", b.Dx(), b.Dy())
	}

	if r, g, b, _ := img.At(1, 1).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("background pixel = (%x,%x,%x), want white", r, g, b)
	}
	// Inside the "order" shape, which spans (40,40)-(240,140) after padding
	// and scaling.
	if r, g, b, _ := img.At(60, 60).RGBA(); r != 0xf8f8 || g != 0xf9f9 || b != 0xfafa {
		t.Errorf("shape fill pixel = (%x,%x,%x), want f8f9fa", r, g, b)
	}
}

func TestPNGEmptyDiagram(t *testing.T) {
	data, err := PNG(&diagram.Diagram{}, Options{})
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("PNG() size = %dx%d, want 40x40", b.Dx(), b.Dy())
	}
}
