// Package pkg provides the core libraries for arrange, a force-directed
// diagram layout engine with orthogonal connection routing.
//
// # Overview
//
// Arrange takes a diagram of rectangular shapes and the connections between
// them, settles the shapes with a spring simulation, and routes every
// connection as an axis-aligned polyline. The pkg directory is organized as:
//
//  1. [geom] - 2D vectors and rectangles
//  2. [layout] - Graph model, force-directed engine and bounded driver
//  3. [route] - Orthogonal connection router
//  4. [diagram] - Diagram documents (shapes + connections) and their I/O
//  5. [pipeline] - Orchestration (layout → route → render)
//  6. [render] - SVG, PNG, DOT and Graphviz output
//
// # Architecture
//
// The typical data flow through arrange:
//
//	Diagram (JSON/YAML)
//	         ↓
//	    [diagram] package (shapes → layout graph)
//	         ↓
//	    [layout] package (simulate until the energy settles)
//	         ↓
//	    [route] package (bend points → orthogonal routes)
//	         ↓
//	    SVG/PNG/DOT output
//
// # Quick Start
//
// Arrange a diagram file and render it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/arrange/pkg/diagram"
//	    "github.com/matzehuels/arrange/pkg/pipeline"
//	)
//
//	d, _ := diagram.ReadFile("orders.json")
//
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{pipeline.FormatSVG}
//
//	result, _ := pipeline.NewRunner(nil).Arrange(context.Background(), d, opts)
//	_ = diagram.WriteFile(result.Diagram, "orders.arranged.json")
//
// # Main Packages
//
// [layout] - Spring-model simulation. [layout.New] builds an [layout.Engine]
// from a [layout.Graph], [layout.Engine.Step] advances it by one time step and
// [layout.Run] drives it until the kinetic energy drops below a threshold or
// an iteration ceiling is hit. Pinned nodes never move.
//
// [route] - Computes bend-point paths between two shapes. Auto-positioned
// bend points are relocated next to their shape, and the flow table chooses
// horizontal or vertical segments so routes never double back.
//
// [diagram] - The document model. [diagram.Diagram.Graph] bridges shapes to
// the layout engine and [diagram.Diagram.Reroute] routes every connection.
//
// [pipeline] - [pipeline.Runner] used by the CLI and the HTTP server, so both
// validate options and report errors the same way.
//
// ## Infrastructure
//
// [errors] - Code-based structured errors (INVALID_GRAPH, INVALID_PARAMS, ...)
// and input validation helpers.
//
// [observability] - Hook registry for layout, route, render and HTTP events.
// Hooks default to no-ops.
//
// [buildinfo] - Version metadata set via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/geom
// [layout]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/layout
// [route]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/route
// [diagram]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/diagram
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/arrange/pkg/buildinfo
package pkg
