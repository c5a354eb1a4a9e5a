package angle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/angle"
	"github.com/katalvlaran/trimanifold/builder"
	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/progress"
	"github.com/katalvlaran/trimanifold/triangulation"
	"github.com/katalvlaran/trimanifold/vector"
)

func mustBuild(t *testing.T, cons ...builder.Constructor) *triangulation.Triangulation {
	t.Helper()
	tri, err := builder.Build(3, nil, cons...)
	require.NoError(t, err)
	return tri
}

func mustEnumerate(t *testing.T, tri *triangulation.Triangulation, opts ...angle.Option) *angle.List {
	t.Helper()
	list, err := angle.Enumerate(context.Background(), tri, opts...)
	require.NoError(t, err)
	require.False(t, list.Cancelled())
	return list
}

func countKinds(list *angle.List) (strict, taut, generic int) {
	for _, s := range list.Structures() {
		switch {
		case s.IsStrict():
			strict++
		case s.IsTaut():
			taut++
		default:
			generic++
		}
	}
	return strict, taut, generic
}

func TestEnumerateKnownTriangulations(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name                   string
		tri                    func(*testing.T) *triangulation.Triangulation
		size                   int
		spansStrict, spansTaut bool
		strict, taut, generic  int
	}{
		{
			name: "empty",
			tri: func(t *testing.T) *triangulation.Triangulation {
				tri, err := triangulation.New(3)
				require.NoError(t, err)
				return tri
			},
			size: 1, spansStrict: true, spansTaut: true, strict: 1,
		},
		{
			name: "lone tetrahedron",
			tri:  func(t *testing.T) *triangulation.Triangulation { return mustBuild(t, builder.Ball()) },
			size: 3, spansStrict: true, spansTaut: true, taut: 3,
		},
		{
			name: "figure eight",
			tri:  func(t *testing.T) *triangulation.Triangulation { return mustBuild(t, builder.FigureEight()) },
			size: 5, spansStrict: true, spansTaut: true, taut: 3, generic: 2,
		},
		{
			name: "C(2)",
			tri:  func(t *testing.T) *triangulation.Triangulation { return mustBuild(t, builder.LayeredLoop(2, false)) },
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			list := mustEnumerate(t, c.tri(t))
			assert.Equal(t, c.size, list.Len())
			assert.Equal(t, c.spansStrict, list.SpansStrict())
			assert.Equal(t, c.spansTaut, list.SpansTaut())
			strict, taut, generic := countKinds(list)
			assert.Equal(t, c.strict, strict)
			assert.Equal(t, c.taut, taut)
			assert.Equal(t, c.generic, generic)
			for _, s := range list.Structures() {
				assert.True(t, s.Satisfies(), "structure %s", s)
			}
		})
	}
}

func TestTautCounts(t *testing.T) {
	t.Parallel()
	cases := []struct {
		sig  string
		want int
	}{
		{"cPcbbbadu", 1},
		{"cPcbbbiht", 3},
		{"dLQbcccdero", 4},
		{"eLPkbcddddcwjb", 4},
		{"fLLQcbcdeeemgopdp", 7},
	}
	for _, c := range cases {
		t.Run(c.sig, func(t *testing.T) {
			t.Parallel()
			tri := mustBuild(t, builder.FromIsoSig(c.sig))
			taut, err := angle.Taut(context.Background(), tri)
			require.NoError(t, err)
			assert.Equal(t, c.want, taut.Len())
			assert.True(t, taut.TautOnly())

			one := integer.RationalFromInt64(1)
			for _, s := range taut.Structures() {
				require.True(t, s.IsTaut())
				for tet := 0; tet < tri.Size(); tet++ {
					pis := 0
					for p := 0; p < 3; p++ {
						a := s.Angle(tet, p)
						require.True(t, a.IsZero() || a.Equal(one), "angle %s", a)
						if !a.IsZero() {
							pis++
						}
					}
					assert.Equal(t, 1, pis)
				}
				for _, e := range tri.Edges() {
					if e.IsBoundary() {
						continue
					}
					sum := integer.RationalFromInt64(0)
					for _, emb := range e.Embeddings() {
						sum = sum.Add(s.Angle(emb.Simplex.Index(), angle.Pair(emb.Vertices.Image(0), emb.Vertices.Image(1))))
					}
					assert.True(t, sum.Equal(integer.RationalFromInt64(2)), "edge %d sums to %s", e.Index(), sum)
				}
			}

			all := mustEnumerate(t, tri)
			_, tautVertices, _ := countKinds(all)
			assert.Equal(t, c.want, tautVertices)
		})
	}
}

func TestTreeAgreesWithDoubleDescription(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.FromIsoSig("dLQbcccdero"))
	dd := mustEnumerate(t, tri, angle.WithTautOnly())
	tree := mustEnumerate(t, tri, angle.WithTautOnly(), angle.WithTreeTraversal())
	require.Equal(t, dd.Len(), tree.Len())
	for _, s := range tree.Structures() {
		found := false
		for _, o := range dd.Structures() {
			if o.Vector().Equal(s.Vector()) {
				found = true
			}
		}
		assert.True(t, found, "tree structure %s", s)
	}
}

func TestStrict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fig8 := mustBuild(t, builder.FigureEight())

	ok, err := angle.HasStrictAngleStructure(ctx, fig8)
	require.NoError(t, err)
	assert.True(t, ok)

	s, err := angle.FindStrict(ctx, fig8)
	require.NoError(t, err)
	assert.True(t, s.IsStrict())
	assert.True(t, s.Satisfies())
	assert.False(t, s.IsTaut())

	loop := mustBuild(t, builder.LayeredLoop(2, false))
	ok, err = angle.HasStrictAngleStructure(ctx, loop)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = angle.FindStrict(ctx, loop)
	assert.ErrorIs(t, err, angle.ErrNoStrict)
}

func TestVeering(t *testing.T) {
	t.Parallel()
	ball := mustEnumerate(t, mustBuild(t, builder.Ball()))
	for _, s := range ball.Structures() {
		assert.True(t, s.IsVeering(), "structure %s", s)
	}

	veering := 0
	for _, s := range mustEnumerate(t, mustBuild(t, builder.FigureEight())).Structures() {
		if s.IsVeering() {
			assert.True(t, s.IsTaut())
			veering++
		}
	}
	assert.Positive(t, veering)
}

func TestNewStructure(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.Ball())

	s, err := angle.NewStructure(tri, vector.Of(1, 1, 1, 3))
	require.NoError(t, err)
	assert.True(t, s.IsStrict())
	assert.True(t, s.Satisfies())
	assert.Equal(t, "(1/3, 1/3, 1/3)", s.String())

	bad, err := angle.NewStructure(tri, vector.Of(1, 1, 2, 3))
	require.NoError(t, err)
	assert.False(t, bad.Satisfies())

	_, err = angle.NewStructure(tri, vector.Of(1, 1, 1))
	assert.ErrorIs(t, err, angle.ErrInvalidArgument)
	_, err = angle.NewStructure(tri, vector.Of(1, 0, 0, 0))
	assert.ErrorIs(t, err, angle.ErrInvalidArgument)

	surf, err := builder.Build(2, nil, builder.Torus())
	require.NoError(t, err)
	_, err = angle.Enumerate(context.Background(), surf)
	assert.ErrorIs(t, err, angle.ErrInvalidArgument)
}

func TestEnumerateCancelled(t *testing.T) {
	t.Parallel()
	tracker := progress.NewTracker()
	tracker.Cancel()
	list, err := angle.Enumerate(context.Background(), mustBuild(t, builder.FigureEight()), angle.WithTracker(tracker))
	require.NoError(t, err)
	assert.True(t, list.Cancelled())
}
