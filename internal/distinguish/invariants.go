package distinguish

import (
	"context"
	"math"

	"github.com/katalvlaran/trimanifold/abelian"
	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/triangulation"
	"github.com/katalvlaran/trimanifold/turaevviro"
)

// tvTolerance is the relative tolerance for comparing Turaev–Viro values.
const tvTolerance = 1e-7

// TVValue is one Turaev–Viro evaluation.
type TVValue struct {
	R     int     `json:"r"`
	Root  int     `json:"root"`
	Value float64 `json:"value"`
}

// Invariants are the values compared by Run.
type Invariants struct {
	H1   abelian.Group `json:"-"`
	H1s  string        `json:"h1"`
	H2Z2 int           `json:"h2z2"`
	TV   []TVValue     `json:"tv"`
}

// TVParameters lists the pairs (r, root) with 3 ≤ r ≤ rMax, 1 ≤ root < r
// and gcd(r, root) = 1, in that order. Roots past r repeat earlier values.
func TVParameters(rMax int) [][2]int {
	var out [][2]int
	for r := 3; r <= rMax; r++ {
		for root := 1; root < r; root++ {
			if integer.GCD64(int64(r), int64(root)) == 1 {
				out = append(out, [2]int{r, root})
			}
		}
	}
	return out
}

// Compute evaluates the invariants of t. The Turaev–Viro values need a
// 3-dimensional triangulation.
func Compute(ctx context.Context, t *triangulation.Triangulation, rMax int) (Invariants, error) {
	h1 := t.HomologyH1()
	inv := Invariants{H1: h1, H1s: h1.String(), H2Z2: t.HomologyH2Z2()}
	for _, p := range TVParameters(rMax) {
		v, err := turaevviro.Evaluate(t, p[0], p[1], turaevviro.WithContext(ctx))
		if err != nil {
			return Invariants{}, err
		}
		inv.TV = append(inv.TV, TVValue{R: p[0], Root: p[1], Value: v})
	}
	return inv, nil
}

// Equal reports whether two sets of invariants agree, comparing
// Turaev–Viro values up to a relative tolerance.
func (a Invariants) Equal(b Invariants) bool {
	if !a.H1.Equal(b.H1) || a.H2Z2 != b.H2Z2 || len(a.TV) != len(b.TV) {
		return false
	}
	for i := range a.TV {
		x, y := a.TV[i], b.TV[i]
		if x.R != y.R || x.Root != y.Root {
			return false
		}
		scale := max(1, math.Abs(x.Value), math.Abs(y.Value))
		if math.Abs(x.Value-y.Value) > tvTolerance*scale {
			return false
		}
	}
	return true
}
