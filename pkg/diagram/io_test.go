package diagram

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/arrange/pkg/route"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"d.json", FormatJSON},
		{"d.yaml", FormatYAML},
		{"dir/d.YML", FormatYAML},
		{"d", FormatJSON},
		{"d.txt", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	for _, name := range []string{"diagram.json", "diagram.yaml"} {
		t.Run(name, func(t *testing.T) {
			d := sample()
			d.Connections[0].BendPoints = []route.BendPoint{route.Auto(true), route.Fixed(200, -40, false), route.Auto(false)}
			d.Connections[0].StartOrientation = route.Vertical
			if _, err := d.Reroute(route.DefaultRouter()); err != nil {
				t.Fatalf("Reroute() error = %v", err)
			}

			path := filepath.Join(t.TempDir(), name)
			if err := WriteFile(d, path); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if !reflect.DeepEqual(got, d) {
				t.Errorf("ReadFile() = %+v, want %+v", got, d)
			}
		})
	}
}

func TestReadYAML(t *testing.T) {
	doc := `
shapes:
  - id: a
    width: 10
    height: 10
  - id: b
    x: 100
    width: 10
    height: 10
connections:
  - from: a
    to: b
    kind: dependency
    start_orientation: vertical
    bend_points:
      - location: {x: 50, y: 5}
`
	d, err := Read(strings.NewReader(doc), FormatYAML)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	c := d.Connections[0]
	if c.ID == "" {
		t.Errorf("connection ID not assigned")
	}
	if c.Kind != KindDependency || c.StartOrientation != route.Vertical || c.EndOrientation != route.Horizontal {
		t.Errorf("connection = %+v", c)
	}
	if len(c.BendPoints) != 1 || c.BendPoints[0].Location.X != 50 || c.BendPoints[0].AutoPosition {
		t.Errorf("bend points = %+v", c.BendPoints)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
		code   apperrors.Code
	}{
		{"malformed JSON", `{"shapes": [`, FormatJSON, apperrors.ErrCodeInvalidDiagram},
		{"malformed YAML", "shapes: [a", FormatYAML, apperrors.ErrCodeInvalidDiagram},
		{"invalid diagram", `{"shapes": [{"id": "a"}, {"id": "a"}]}`, FormatJSON, apperrors.ErrCodeInvalidDiagram},
		{"unknown format", `{}`, "toml", apperrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data), tt.format)
			if got := apperrors.GetCode(err); got != tt.code {
				t.Errorf("Unmarshal() code = %v (%v), want %v", got, err, tt.code)
			}
		})
	}
}

func TestReadEmptyYAML(t *testing.T) {
	d, err := Read(strings.NewReader(""), FormatYAML)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(d.Shapes) != 0 {
		t.Errorf("Shapes = %v, want none", d.Shapes)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestMarshalJSONOmitsDefaults(t *testing.T) {
	d := &Diagram{
		Shapes:      []Shape{{ID: "a", Width: 1, Height: 1}},
		Connections: []Connection{{ID: "c", From: "a", To: "a"}},
	}
	data, err := Marshal(d, FormatJSON)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, key := range []string{"pinned", "bend_points", "start_orientation", "route", "kind"} {
		if bytes.Contains(data, []byte(key)) {
			t.Errorf("Marshal() output contains %q:\n%s", key, data)
		}
	}
}

func TestReadExamples(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "diagrams", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example diagrams")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			d, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if err := d.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if _, err := d.Reroute(route.DefaultRouter()); err != nil {
				t.Errorf("Reroute() error = %v", err)
			}
		})
	}
}
