package turaevviro_test

import (
	"fmt"

	"github.com/katalvlaran/trimanifold/builder"
	"github.com/katalvlaran/trimanifold/turaevviro"
)

func ExampleEvaluate() {
	s3 := builder.MustBuild(3, nil, builder.LayeredLoop(1, false))
	tv, _ := turaevviro.Evaluate(s3, 3, 2)
	fmt.Printf("%.4f\n", tv)
	// Output:
	// 0.5000
}
