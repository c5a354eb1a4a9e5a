package forms_test

import (
	"fmt"

	"github.com/katalvlaran/trimanifold/forms"
	"github.com/katalvlaran/trimanifold/matrix"
)

func ExampleForm_Signature() {
	// S² × S² plus a copy of CP².
	m := matrix.BlockDiagonal(
		matrix.MustFromRows([][]int64{{0, 1}, {1, 0}}),
		matrix.MustFromRows([][]int64{{1}}),
	)
	f, err := forms.New(m)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(f)
	// Output:
	// rank 3, signature 1, odd
}
