package normal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/builder"
	"github.com/katalvlaran/trimanifold/normal"
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

func mustEnumerate(t *testing.T, tri *triangulation.Triangulation, c normal.Coords) *normal.List {
	t.Helper()
	list, err := normal.Enumerate(context.Background(), tri, c, normal.Vertex, normal.AlgDefault)
	require.NoError(t, err)
	require.False(t, list.Cancelled())
	return list
}

// profile summarises a compact surface without octagons.
type profile struct {
	euler      int64
	connected  bool
	orientable bool
	twoSided   bool
	realBdry   bool
	vertexLink bool
	edgeLinks  int
	central    int
	splitting  bool
}

func profileOf(t *testing.T, s *normal.Surface) profile {
	t.Helper()
	require.True(t, s.IsCompact(), "surface %s", s)
	chi, err := s.EulerChar()
	require.NoError(t, err)
	euler, ok := chi.Int64()
	require.True(t, ok)
	connected, err := s.IsConnected()
	require.NoError(t, err)
	orientable, err := s.IsOrientable()
	require.NoError(t, err)
	twoSided, err := s.IsTwoSided()
	require.NoError(t, err)
	_, vl := s.IsVertexLink()
	return profile{
		euler:      euler,
		connected:  connected,
		orientable: orientable,
		twoSided:   twoSided,
		realBdry:   s.HasRealBoundary(),
		vertexLink: vl,
		edgeLinks:  len(s.IsThinEdgeLink()),
		central:    s.IsCentral(),
		splitting:  s.IsSplitting(),
	}
}

func profiles(t *testing.T, list *normal.List) map[profile]int {
	t.Helper()
	out := make(map[profile]int)
	for _, s := range list.Surfaces() {
		out[profileOf(t, s)]++
	}
	return out
}

var (
	vertexSphere = profile{euler: 2, connected: true, orientable: true, twoSided: true, vertexLink: true}
	splitTorus   = profile{euler: 0, connected: true, orientable: true, twoSided: true, edgeLinks: 2, central: 1, splitting: true}
)

func TestEnumerateLoneTetrahedron(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.Ball())

	triangle := profile{euler: 1, connected: true, orientable: true, twoSided: true, realBdry: true, vertexLink: true, central: 1}
	quad := profile{euler: 1, connected: true, orientable: true, twoSided: true, realBdry: true, edgeLinks: 2, central: 1, splitting: true}

	std := mustEnumerate(t, tri, normal.Standard)
	assert.Equal(t, 7, std.Len())
	assert.Equal(t, map[profile]int{triangle: 4, quad: 3}, profiles(t, std))

	q := mustEnumerate(t, tri, normal.Quad)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, map[profile]int{quad: 3}, profiles(t, q))

	an := mustEnumerate(t, tri, normal.AlmostNormal)
	require.Equal(t, 10, an.Len())
	octs := 0
	for _, s := range an.Surfaces() {
		hasOct := false
		for o := 0; o < 3; o++ {
			if !s.Octs(0, o).IsZero() {
				hasOct = true
			}
		}
		if !hasOct {
			continue
		}
		octs++
		chi, err := s.EulerChar()
		require.NoError(t, err)
		assert.Equal(t, 0, chi.CmpInt64(1))
		assert.True(t, s.HasRealBoundary())
		assert.Empty(t, s.IsThinEdgeLink())
		assert.Equal(t, 1, s.IsCentral())
		assert.False(t, s.IsSplitting())
		_, err = s.IsConnected()
		assert.ErrorIs(t, err, normal.ErrNotImplemented)
	}
	assert.Equal(t, 3, octs)
}

func TestEnumerateLayeredLoops(t *testing.T) {
	t.Parallel()
	var (
		projPlane   = profile{euler: 1, connected: true, edgeLinks: 1, central: 2, splitting: true}
		doubleTorus = profile{euler: 0, connected: true, orientable: true, twoSided: true, edgeLinks: 2, central: 2, splitting: true}
		splitKlein  = profile{euler: 0, connected: true, edgeLinks: 1, central: 3, splitting: true}
		edgeTorus   = profile{euler: 0, connected: true, orientable: true, twoSided: true, edgeLinks: 1}
	)
	cases := []struct {
		name     string
		n        int
		twisted  bool
		quad     map[profile]int
		standard map[profile]int
	}{
		{
			name:     "C(1)",
			n:        1,
			quad:     map[profile]int{splitTorus: 1},
			standard: map[profile]int{splitTorus: 1, vertexSphere: 2},
		},
		{
			name:     "C(2)",
			n:        2,
			quad:     map[profile]int{doubleTorus: 1, projPlane: 2},
			standard: map[profile]int{doubleTorus: 1, projPlane: 2, vertexSphere: 2},
		},
		{
			name:     "C~(3)",
			n:        3,
			twisted:  true,
			quad:     map[profile]int{splitKlein: 1, edgeTorus: 3},
			standard: map[profile]int{splitKlein: 1, edgeTorus: 3, vertexSphere: 1},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			tri := mustBuild(t, builder.LayeredLoop(c.n, c.twisted))
			assert.Equal(t, c.quad, profiles(t, mustEnumerate(t, tri, normal.Quad)))
			assert.Equal(t, c.standard, profiles(t, mustEnumerate(t, tri, normal.Standard)))
		})
	}
}

func TestEnumerateAlmostNormalS3(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.LayeredLoop(1, false))
	list := mustEnumerate(t, tri, normal.AlmostNormal)
	require.Equal(t, 4, list.Len())
	withOct := 0
	for _, s := range list.Surfaces() {
		assert.True(t, s.Satisfies())
		if s.Octs(0, 0).IsZero() && s.Octs(0, 1).IsZero() && s.Octs(0, 2).IsZero() {
			continue
		}
		withOct++
		chi, err := s.EulerChar()
		require.NoError(t, err)
		assert.Equal(t, 0, chi.CmpInt64(2))
		assert.Equal(t, 1, s.IsCentral())
	}
	assert.Equal(t, 1, withOct)
}

func TestEnumerateFigureEight(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.FigureEight())
	require.True(t, tri.IsIdeal())

	std := mustEnumerate(t, tri, normal.Standard)
	require.Equal(t, 1, std.Len())
	torus := profile{euler: 0, connected: true, orientable: true, twoSided: true, vertexLink: true}
	assert.Equal(t, map[profile]int{torus: 1}, profiles(t, std))

	quad := mustEnumerate(t, tri, normal.Quad)
	require.Equal(t, 4, quad.Len())
	for _, s := range quad.Surfaces() {
		assert.False(t, s.IsCompact(), "surface %s", s)
		assert.False(t, s.IsVertexLinking())
		assert.Empty(t, s.IsThinEdgeLink())
		assert.Equal(t, 0, s.IsCentral())
		assert.False(t, s.IsSplitting())
		assert.False(t, s.HasRealBoundary())

		_, err := s.EulerChar()
		assert.ErrorIs(t, err, normal.ErrNonCompact)
		_, err = s.IsConnected()
		assert.ErrorIs(t, err, normal.ErrNonCompact)
		_, err = s.Triangulate()
		assert.ErrorIs(t, err, normal.ErrNonCompact)
		_, err = normal.ToStandard(s)
		assert.ErrorIs(t, err, normal.ErrNonCompact)
	}
}

func TestSurfacesSatisfyMatchingEquations(t *testing.T) {
	t.Parallel()
	tris := []*triangulation.Triangulation{
		mustBuild(t, builder.Ball()),
		mustBuild(t, builder.LayeredLoop(2, false)),
		mustBuild(t, builder.LayeredLoop(3, true)),
		mustBuild(t, builder.FigureEight()),
		mustBuild(t, builder.LayeredSolidTorus(2, 3)),
	}
	for _, tri := range tris {
		for _, c := range []normal.Coords{normal.Standard, normal.Quad, normal.AlmostNormal} {
			for _, s := range mustEnumerate(t, tri, c).Surfaces() {
				assert.True(t, s.Satisfies(), "%s surface %s", c, s)
				assert.True(t, s.Vector().IsNonNegative())
				assert.False(t, s.IsEmpty())
			}
		}
	}
}

func TestTriangulateAgreesWithVector(t *testing.T) {
	t.Parallel()
	tris := []*triangulation.Triangulation{
		mustBuild(t, builder.Ball()),
		mustBuild(t, builder.LayeredLoop(2, false)),
		mustBuild(t, builder.LayeredLoop(3, true)),
		mustBuild(t, builder.LayeredSolidTorus(1, 2)),
	}
	for _, tri := range tris {
		for _, s := range mustEnumerate(t, tri, normal.Standard).Surfaces() {
			surf, err := s.Triangulate()
			require.NoError(t, err)
			assert.Equal(t, 2, surf.Dim())
			assert.True(t, surf.IsValid())

			chi, err := s.EulerChar()
			require.NoError(t, err)
			assert.Equal(t, 0, chi.CmpInt64(int64(surf.EulerCharTri())), "surface %s", s)

			orientable, err := s.IsOrientable()
			require.NoError(t, err)
			assert.Equal(t, orientable, surf.IsOrientable(), "surface %s", s)

			components, err := s.CountComponents()
			require.NoError(t, err)
			assert.Equal(t, components, surf.CountComponents(), "surface %s", s)
			assert.Equal(t, s.HasRealBoundary(), surf.HasBoundary(), "surface %s", s)
		}
	}
}

func TestConversions(t *testing.T) {
	t.Parallel()
	for _, tri := range []*triangulation.Triangulation{
		mustBuild(t, builder.LayeredLoop(1, false)),
		mustBuild(t, builder.LayeredLoop(2, false)),
		mustBuild(t, builder.LayeredLoop(3, true)),
	} {
		std := mustEnumerate(t, tri, normal.Standard)
		for _, q := range mustEnumerate(t, tri, normal.Quad).Surfaces() {
			s, err := normal.ToStandard(q)
			require.NoError(t, err)
			assert.Equal(t, normal.Standard, s.Coords())
			assert.True(t, s.IsCompact())
			assert.True(t, s.Satisfies())

			found := false
			for _, other := range std.Surfaces() {
				if other.Vector().Equal(s.Vector()) {
					found = true
				}
			}
			assert.True(t, found, "converted %s is not a standard vertex surface", s)

			back, err := normal.ToQuad(s)
			require.NoError(t, err)
			assert.True(t, back.Vector().Equal(q.Vector()))
		}
		for _, s := range std.Surfaces() {
			if !s.IsVertexLinking() {
				continue
			}
			_, err := normal.ToQuad(s)
			assert.ErrorIs(t, err, normal.ErrNotApplicable)
		}
	}
}

func TestVertexAndEdgeLinks(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.LayeredLoop(2, false))
	for v := 0; v < tri.CountFaces(0); v++ {
		s, err := normal.VertexLinkSurface(tri, v)
		require.NoError(t, err)
		assert.True(t, s.Satisfies())
		got, ok := s.IsVertexLink()
		assert.True(t, ok)
		assert.Equal(t, v, got)
		chi, err := s.EulerChar()
		require.NoError(t, err)
		assert.Equal(t, 0, chi.CmpInt64(2))
	}
	_, err := normal.VertexLinkSurface(tri, tri.CountFaces(0))
	assert.ErrorIs(t, err, normal.ErrInvalidArgument)

	links := 0
	for e := 0; e < tri.CountFaces(1); e++ {
		s, err := normal.ThinEdgeLinkSurface(tri, e)
		if err != nil {
			assert.ErrorIs(t, err, normal.ErrNotApplicable)
			continue
		}
		links++
		assert.True(t, s.Satisfies())
		assert.Contains(t, s.IsThinEdgeLink(), e)
	}
	assert.Positive(t, links)
	_, err = normal.ThinEdgeLinkSurface(tri, -1)
	assert.ErrorIs(t, err, normal.ErrInvalidArgument)
}

func TestEdgeWeightsOfVertexLink(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.LayeredLoop(1, false))
	s, err := normal.VertexLinkSurface(tri, 0)
	require.NoError(t, err)
	for e := 0; e < tri.CountFaces(1); e++ {
		edge := tri.Face(1, e)
		want := int64(0)
		for i := 0; i < 2; i++ {
			if edge.Vertex(i).Index() == 0 {
				want++
			}
		}
		assert.Equal(t, 0, s.EdgeWeight(e).CmpInt64(want), "edge %d", e)
	}
}

func TestCompressingDisc(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ok, err := normal.HasCompressingDisc(ctx, mustBuild(t, builder.Ball()))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = normal.HasCompressingDisc(ctx, mustBuild(t, builder.LayeredSolidTorus(1, 2)))
	require.NoError(t, err)
	assert.True(t, ok)

	for _, s := range mustEnumerate(t, mustBuild(t, builder.Ball()), normal.Standard).Surfaces() {
		disc, err := s.IsCompressingDisc()
		require.NoError(t, err)
		assert.False(t, disc, "surface %s", s)
	}
}

func TestNewSurface(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.LayeredLoop(1, false))

	_, err := normal.NewSurface(tri, normal.Quad, vector.New(7))
	assert.ErrorIs(t, err, normal.ErrInvalidArgument)

	neg := vector.Of(-1, 0, 0)
	_, err = normal.NewSurface(tri, normal.Quad, neg)
	assert.ErrorIs(t, err, normal.ErrInvalidArgument)

	_, err = normal.NewSurface(tri, normal.Coords(0), vector.New(3))
	assert.ErrorIs(t, err, normal.ErrInvalidArgument)

	_, err = normal.NewSurface(nil, normal.Quad, vector.New(3))
	assert.ErrorIs(t, err, normal.ErrInvalidArgument)

	list := mustEnumerate(t, tri, normal.Quad)
	require.Equal(t, 1, list.Len())
	s, err := normal.NewSurface(tri, normal.Quad, list.Surface(0).Vector())
	require.NoError(t, err)
	assert.True(t, s.Satisfies())
	assert.Equal(t, list.Surface(0).String(), s.String())
}

func TestEnumerateArguments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tri := mustBuild(t, builder.LayeredLoop(1, false))

	_, err := normal.Enumerate(ctx, tri, normal.Standard, normal.Vertex|normal.Fundamental, normal.AlgDefault)
	assert.ErrorIs(t, err, normal.ErrInvalidArgument)
	_, err = normal.Enumerate(ctx, tri, normal.Standard, normal.EmbeddedOnly|normal.ImmersedSingular, normal.AlgDefault)
	assert.ErrorIs(t, err, normal.ErrInvalidArgument)
	_, err = normal.Enumerate(ctx, tri, normal.Standard, normal.Fundamental, normal.AlgDD)
	assert.ErrorIs(t, err, normal.ErrInvalidArgument)
	_, err = normal.Enumerate(ctx, tri, normal.Standard, normal.Vertex, normal.AlgHilbertPrimal)
	assert.ErrorIs(t, err, normal.ErrInvalidArgument)

	surf, err := builder.Build(2, nil, builder.Torus())
	require.NoError(t, err)
	_, err = normal.Enumerate(ctx, surf, normal.Standard, normal.Vertex, normal.AlgDefault)
	assert.ErrorIs(t, err, normal.ErrInvalidArgument)

	list, err := normal.Enumerate(ctx, tri, normal.Quad, 0, normal.AlgDefault)
	require.NoError(t, err)
	assert.Equal(t, normal.Vertex|normal.EmbeddedOnly, list.Which())
	assert.Equal(t, normal.AlgDD, list.Algorithm())

	empty, err := triangulation.New(3)
	require.NoError(t, err)
	list, err = normal.Enumerate(ctx, empty, normal.Standard, normal.Vertex, normal.AlgDefault)
	require.NoError(t, err)
	assert.Zero(t, list.Len())
}

func TestEnumerateAlgorithmsAgree(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.LayeredLoop(2, false))
	ctx := context.Background()
	dd, err := normal.Enumerate(ctx, tri, normal.Quad, normal.Vertex, normal.AlgDD)
	require.NoError(t, err)
	tree, err := normal.Enumerate(ctx, tri, normal.Quad, normal.Vertex, normal.AlgTree)
	require.NoError(t, err)
	assert.Equal(t, dd.Len(), tree.Len())
	for _, s := range tree.Surfaces() {
		found := false
		for _, o := range dd.Surfaces() {
			if o.Vector().Equal(s.Vector()) {
				found = true
			}
		}
		assert.True(t, found, "tree surface %s", s)
	}

	for _, alg := range []normal.Algorithm{normal.AlgHilbertPrimal, normal.AlgHilbertDual} {
		fund, err := normal.Enumerate(ctx, tri, normal.Quad, normal.Fundamental, alg)
		require.NoError(t, err, "%s", alg)
		assert.GreaterOrEqual(t, fund.Len(), dd.Len(), "%s", alg)
		for _, s := range fund.Surfaces() {
			assert.True(t, s.Satisfies())
		}
	}
}

func TestEnumerateCancelled(t *testing.T) {
	t.Parallel()
	tracker := progress.NewTracker()
	tracker.Cancel()
	tri := mustBuild(t, builder.LayeredLoop(3, true))
	list, err := normal.Enumerate(context.Background(), tri, normal.Standard, normal.Vertex, normal.AlgDD,
		normal.WithTracker(tracker))
	require.NoError(t, err)
	assert.True(t, list.Cancelled())
}

func TestMatchingEquationsShape(t *testing.T) {
	t.Parallel()
	tri := mustBuild(t, builder.LayeredLoop(2, false))
	m, err := normal.MatchingEquations(tri, normal.Standard)
	require.NoError(t, err)
	assert.Equal(t, 14, m.Cols())
	q, err := normal.MatchingEquations(tri, normal.Quad)
	require.NoError(t, err)
	assert.Equal(t, 6, q.Cols())
	an, err := normal.MatchingEquations(tri, normal.AlmostNormal)
	require.NoError(t, err)
	assert.Equal(t, 20, an.Cols())

	cons, err := normal.ValidityConstraints(tri, normal.AlmostNormal)
	require.NoError(t, err)
	assert.Len(t, cons, 3)
}
