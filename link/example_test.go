package link_test

import (
	"fmt"

	"github.com/katalvlaran/trimanifold/link"
)

func ExampleLink_Jones() {
	trefoil, err := link.FromPD([][4]int{{1, 5, 2, 4}, {3, 1, 4, 6}, {5, 3, 6, 2}})
	if err != nil {
		fmt.Println(err)
		return
	}
	jones, _ := trefoil.Jones()
	homfly, _ := trefoil.HOMFLY()
	fmt.Println(jones.Format("√t"))
	fmt.Println(homfly.Format("α", "z"))
	// Output:
	// -√t^8 + √t^6 + √t^2
	// α^-2 z^2 + 2 α^-2 - α^-4
}
