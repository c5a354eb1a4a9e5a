package turaevviro_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/builder"
	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/progress"
	"github.com/katalvlaran/trimanifold/triangulation"
	"github.com/katalvlaran/trimanifold/turaevviro"
)

const epsilon = 1e-7

func mustBuild(t *testing.T, cons ...builder.Constructor) *triangulation.Triangulation {
	t.Helper()
	tri, err := builder.Build(3, nil, cons...)
	require.NoError(t, err)
	return tri
}

func mustEvaluate(t *testing.T, tri *triangulation.Triangulation, r, root int) float64 {
	t.Helper()
	tv, err := turaevviro.Evaluate(tri, r, root)
	require.NoError(t, err)
	return tv
}

// roots lists 1 ≤ q < 2r coprime to r.
func roots(r int) []int {
	var out []int
	for q := 1; q < 2*r; q++ {
		if integer.GCD64(int64(q), int64(r)) == 1 {
			out = append(out, q)
		}
	}
	return out
}

func TestSphere(t *testing.T) {
	t.Parallel()
	spheres := map[string]*triangulation.Triangulation{
		"C(1)":       mustBuild(t, builder.LayeredLoop(1, false)),
		"two tets":   mustBuild(t, builder.Sphere()),
		"L(1,0)":     mustBuild(t, builder.LayeredLensSpace(1, 0)),
		"simplicial": mustBuild(t, builder.SimplexBoundary()),
	}
	for name, tri := range spheres {
		maxR := 8
		if name == "simplicial" {
			maxR = 5
		}
		for r := 3; r <= maxR; r++ {
			for _, q := range roots(r) {
				s := 2 * math.Sin(math.Pi*float64(q)/float64(r))
				want := s * s / (2 * float64(r))
				assert.InDelta(t, want, mustEvaluate(t, tri, r, q), epsilon, "%s r=%d root=%d", name, r, q)
			}
		}
	}
}

func TestProjectiveSpace(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.LayeredLoop(2, false))
	for r := 3; r <= 8; r++ {
		for _, q := range roots(r) {
			want := 0.0
			if q%2 != r%2 {
				re := math.Cos(math.Pi*float64(q)/float64(r)) - 1
				im := math.Sin(math.Pi * float64(q) / float64(r))
				want = (re*re + im*im) / float64(r)
			}
			assert.InDelta(t, want, mustEvaluate(t, tri, r, q), epsilon, "r=%d root=%d", r, q)
		}
	}
}

func TestLensSpace31(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.LayeredLensSpace(3, 1))
	for r := 4; r <= 8; r++ {
		pow := (r-2)/3 + 1
		for _, q := range roots(r) {
			s := 2 * math.Sin(math.Pi*float64(q*pow)/float64(r))
			want := s * s / (2 * float64(r))
			assert.InDelta(t, want, mustEvaluate(t, tri, r, q), epsilon, "r=%d root=%d", r, q)
		}
	}
}

func TestSphereBundle(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.LayeredLensSpace(0, 1))
	for r := 3; r <= 7; r++ {
		for _, q := range roots(r) {
			assert.InDelta(t, 1.0, mustEvaluate(t, tri, r, q), epsilon, "r=%d root=%d", r, q)
		}
	}
}

// At r = 3 with an even root the invariant is 2^(dim H_2(M; Z/2) − 1).
func TestOrderThree(t *testing.T) {
	t.Parallel()
	tris := []*triangulation.Triangulation{
		mustBuild(t, builder.LayeredLoop(1, false)),
		mustBuild(t, builder.LayeredLoop(2, false)),
		mustBuild(t, builder.LayeredLoop(3, true)),
		mustBuild(t, builder.LayeredLensSpace(8, 3)),
		mustBuild(t, builder.LayeredLensSpace(7, 1)),
		mustBuild(t, builder.LayeredLensSpace(0, 1)),
	}
	for _, tri := range tris {
		want := 0.5 * math.Pow(2, float64(tri.HomologyH2Z2()))
		for _, q := range []int{2, 4} {
			assert.InDelta(t, want, mustEvaluate(t, tri, 3, q), epsilon, "%s root=%d", tri.IsoSig(), q)
		}
	}
}

func TestEvaluateArguments(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.LayeredLoop(1, false))
	cases := []struct {
		name    string
		r, root int
	}{
		{"small r", 2, 1},
		{"zero root", 5, 0},
		{"large root", 5, 10},
		{"not coprime", 6, 3},
	}
	for _, c := range cases {
		_, err := turaevviro.Evaluate(tri, c.r, c.root)
		assert.ErrorIs(t, err, turaevviro.ErrInvalidArgument, c.name)
	}

	surf, err := builder.Build(2, nil, builder.Torus())
	require.NoError(t, err)
	_, err = turaevviro.Evaluate(surf, 3, 1)
	assert.ErrorIs(t, err, turaevviro.ErrInvalidArgument)

	_, err = turaevviro.Evaluate(nil, 3, 1)
	assert.ErrorIs(t, err, turaevviro.ErrInvalidArgument)
}

func TestEvaluateCancelled(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.LayeredLoop(2, false))

	tracker := progress.NewTracker()
	tracker.Cancel()
	_, err := turaevviro.Evaluate(tri, 5, 1, turaevviro.WithTracker(tracker))
	assert.ErrorIs(t, err, turaevviro.ErrCancelled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = turaevviro.Evaluate(tri, 5, 1, turaevviro.WithContext(ctx))
	assert.ErrorIs(t, err, turaevviro.ErrCancelled)

	done := progress.NewTracker()
	_, err = turaevviro.Evaluate(tri, 5, 1, turaevviro.WithTracker(done))
	require.NoError(t, err)
	assert.True(t, done.IsFinished())
}
