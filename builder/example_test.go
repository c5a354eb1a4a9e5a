package builder_test

import (
	"fmt"

	"github.com/katalvlaran/trimanifold/builder"
)

func ExampleBuild() {
	tri, err := builder.Build(3, []builder.BuilderOption{builder.WithLabel("L(7,1)")},
		builder.LayeredLensSpace(7, 1))
	if err != nil {
		panic(err)
	}
	fmt.Println(tri.Label(), tri.Size(), tri.HomologyH1())
	// Output:
	// L(7,1) 4 Z_7
}

func ExampleLayeredSolidTorus() {
	tri := builder.MustBuild(3, nil, builder.LayeredSolidTorus(3, 4))
	fmt.Println(tri.Size(), tri.CountBoundaryComponents(), tri.HomologyH1())
	// Output:
	// 3 1 Z
}
