package route_test

import (
	"fmt"

	"github.com/matzehuels/arrange/pkg/geom"
	"github.com/matzehuels/arrange/pkg/route"
)

func ExampleRoute() {
	start := geom.R(0, 0, 100, 50)
	end := geom.R(300, 0, 100, 50)

	fmt.Println(route.Route(start, end, nil, route.Horizontal, route.Horizontal))
	// Output: [(100,25) (300,25)]
}

func ExampleRouter_Solve() {
	res := route.DefaultRouter().Solve(route.Request{
		Start: geom.R(0, 0, 100, 50),
		End:   geom.R(110, 60, 100, 50),
	})

	fmt.Println(res.StartOrientation, res.EndOrientation)
	fmt.Println(res.Points)
	// Output:
	// vertical horizontal
	// [(50,50) (50,85) (110,85)]
}
