// Package diagram provides the document format arranged by arrange: shapes
// with sizes and positions, and the connections between them.
//
// A diagram is the unit the CLI and the HTTP server read, arrange and write.
// It bridges the two engines:
//
//   - [Diagram.Graph] builds a [layout.Graph] with one node per shape and one
//     spring per connection.
//   - [Diagram.ApplyPositions] copies simulated positions back onto shapes.
//   - [Diagram.Reroute] computes the orthogonal route of every connection
//     with a [route.Router].
//
// # Serialization
//
// Diagrams are stored as JSON or YAML. The format is picked from the file
// extension by [ReadFile] and [WriteFile]:
//
//	shapes:
//	  - id: order
//	    width: 120
//	    height: 60
//	  - id: customer
//	    x: 300
//	    width: 120
//	    height: 60
//	connections:
//	  - from: order
//	    to: customer
//	    kind: association
//
// Connections without an ID get a random UUID when the diagram is read.
package diagram
