package diagram_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/arrange/pkg/diagram"
	"github.com/matzehuels/arrange/pkg/route"
)

func ExampleRead() {
	doc := `{
		"shapes": [
			{"id": "order", "width": 100, "height": 50},
			{"id": "customer", "x": 300, "width": 100, "height": 50}
		],
		"connections": [
			{"id": "places", "from": "customer", "to": "order"}
		]
	}`

	d, err := diagram.Read(strings.NewReader(doc), diagram.FormatJSON)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if _, err := d.Reroute(route.DefaultRouter()); err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println(d.Connections[0].Route)
	// Output: [(300,25) (100,25)]
}

func ExampleWrite() {
	d := &diagram.Diagram{
		Shapes: []diagram.Shape{{ID: "a", Width: 10, Height: 10}},
	}
	if err := diagram.Write(d, os.Stdout, diagram.FormatJSON); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// {
	//   "shapes": [
	//     {
	//       "id": "a",
	//       "x": 0,
	//       "y": 0,
	//       "width": 10,
	//       "height": 10
	//     }
	//   ]
	// }
}
