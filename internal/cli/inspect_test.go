package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/arrange/pkg/diagram"
)

func TestInspect(t *testing.T) {
	d, err := diagram.Unmarshal([]byte(testDiagram), diagram.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	d.Shapes = append(d.Shapes, diagram.Shape{ID: "audit", X: 500, Y: 500, Width: 40, Height: 40})

	var buf bytes.Buffer
	if err := inspect(&buf, d); err != nil {
		t.Fatalf("inspect() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"orders",
		"4 shapes",
		"2 connections",
		"2 components",
		"customer → order",
		"dependency",
		"audit",
		"Component",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect() output is missing %q:\n%s", want, out)
		}
	}
}

func TestInspectConnectedDiagramHasNoComponentTable(t *testing.T) {
	d, err := diagram.Unmarshal([]byte(testDiagram), diagram.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := inspect(&buf, d); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "Component") {
		t.Error("component table printed for a connected diagram")
	}
}

func TestInspectCommand(t *testing.T) {
	input := writeInput(t, "orders.json", testDiagram)

	out, err := execute(t, "inspect", input)
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	if !strings.Contains(out, "invoice") {
		t.Errorf("inspect output is missing shapes:\n%s", out)
	}
}
