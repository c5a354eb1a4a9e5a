package recognise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/abelian"
	"github.com/katalvlaran/trimanifold/builder"
	"github.com/katalvlaran/trimanifold/recognise"
	"github.com/katalvlaran/trimanifold/triangulation"
)

func mustBuild(t *testing.T, dim int, opts []builder.BuilderOption, cons ...builder.Constructor) *triangulation.Triangulation {
	t.Helper()
	tri, err := builder.Build(dim, opts, cons...)
	require.NoError(t, err)
	return tri
}

func TestRecognise(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		con      builder.Constructor
		want     recognise.Standard
		text     string
		manifold string
	}{
		{"ball", builder.Ball(), recognise.TrivialTri{Kind: recognise.Tetrahedron}, "B3 (1)", "B3"},
		{"snapped ball", builder.SnappedBall(), recognise.SnappedBall{}, "Snap", "B3"},
		{"two-tetrahedron sphere", builder.Sphere(), recognise.TrivialTri{Kind: recognise.TwoTetrahedronSphere}, "S3 (2)", "S3"},
		{"pentachoron boundary", builder.SimplexBoundary(), recognise.TrivialTri{Kind: recognise.PentachoronBoundary}, "S3 (5)", "S3"},
		{"L(5,2)", builder.LayeredLensSpace(5, 2), recognise.LayeredLensSpace{P: 5, Q: 2}, "L(5,2)", "L(5,2)"},
		{"L(8,3)", builder.LayeredLensSpace(8, 3), recognise.LayeredLensSpace{P: 8, Q: 3}, "L(8,3)", "L(8,3)"},
		{"C(4)", builder.LayeredLoop(4, false), recognise.LayeredLoop{N: 4}, "C(4)", "L(4,1)"},
		{"LST(1,2,3)", builder.LayeredSolidTorus(1, 2), recognise.LayeredSolidTorus{A: 1, B: 2, C: 3}, "LST(1,2,3)", "B2 x S1"},
		{"LST(3,4,7)", builder.LayeredSolidTorus(3, 4), recognise.LayeredSolidTorus{A: 3, B: 4, C: 7}, "LST(3,4,7)", "B2 x S1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tri := mustBuild(t, 3, []builder.BuilderOption{builder.WithRandomRelabel(11)}, tc.con)
			require.Equal(t, 1, tri.CountComponents())

			got, ok := recognise.Recognise(tri.Component(0))
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.text, got.Name())

			m, err := got.Manifold()
			require.NoError(t, err)
			assert.Equal(t, tc.manifold, m)

			h, err := got.Homology()
			require.NoError(t, err)
			assert.True(t, h.Equal(tri.HomologyH1()), "homology %s, computed %s", h, tri.HomologyH1())

			back, err := got.Construct()
			require.NoError(t, err)
			assert.Equal(t, tri.IsoSig(), back.IsoSig())
		})
	}
}

func TestTwistedLoop(t *testing.T) {
	t.Parallel()

	tri := mustBuild(t, 3, nil, builder.LayeredLoop(3, true))
	got, ok := recognise.Recognise(tri.Component(0))
	require.True(t, ok)
	assert.Equal(t, recognise.LayeredLoop{N: 3, Twisted: true}, got)
	assert.Equal(t, "C~(3)", got.Name())
	assert.Equal(t, "\\tilde{C}_{3}", got.TeXName())

	_, err := got.Manifold()
	assert.ErrorIs(t, err, recognise.ErrNotImplemented)

	h, err := got.Homology()
	require.NoError(t, err)
	assert.True(t, h.Equal(tri.HomologyH1()))
}

func TestNotRecognised(t *testing.T) {
	t.Parallel()

	for name, tri := range map[string]*triangulation.Triangulation{
		"figure eight": mustBuild(t, 3, nil, builder.FigureEight()),
		"dimension 4":  mustBuild(t, 4, nil, builder.Sphere()),
		"dimension 2":  mustBuild(t, 2, nil, builder.Torus()),
	} {
		_, ok := recognise.Recognise(tri.Component(0))
		assert.False(t, ok, name)
	}
	_, ok := recognise.Recognise(nil)
	assert.False(t, ok)
}

func TestRecogniseAll(t *testing.T) {
	t.Parallel()

	tri := mustBuild(t, 3, nil, builder.Ball(), builder.LayeredLoop(4, false), builder.FigureEight())
	got := recognise.RecogniseAll(tri)
	require.Len(t, got, 3)
	assert.Equal(t, recognise.TrivialTri{Kind: recognise.Tetrahedron}, got[0])
	assert.Equal(t, recognise.LayeredLoop{N: 4}, got[1])
	assert.Nil(t, got[2])
}

func TestVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s        recognise.Standard
		tex      string
		manifold string
		homology abelian.Group
	}{
		{recognise.LayeredLensSpace{P: 0, Q: 1}, "L_{0,1}", "S2 x S1", abelian.Free(1)},
		{recognise.LayeredLensSpace{P: 1, Q: 0}, "L_{1,0}", "S3", abelian.Trivial()},
		{recognise.LayeredLensSpace{P: 2, Q: 1}, "L_{2,1}", "RP3", abelian.Cyclic(2)},
		{recognise.LayeredLoop{N: 1}, "C_{1}", "S3", abelian.Trivial()},
		{recognise.LayeredSolidTorus{A: 1, B: 2, C: 3}, "\\mathit{LST}(1,2,3)", "B2 x S1", abelian.Free(1)},
		{recognise.SnappedBall{}, "\\mathit{Snap}", "B3", abelian.Trivial()},
		{recognise.TrivialTri{Kind: recognise.PentachoronBoundary}, "S^3_{5}", "S3", abelian.Trivial()},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.tex, tc.s.TeXName())
		m, err := tc.s.Manifold()
		require.NoError(t, err)
		assert.Equal(t, tc.manifold, m, tc.s.Name())
		h, err := tc.s.Homology()
		require.NoError(t, err)
		assert.True(t, tc.homology.Equal(h), tc.s.Name())
	}

	_, err := recognise.LayeredSolidTorus{A: 1, B: 2, C: 4}.Construct()
	assert.ErrorIs(t, err, recognise.ErrInvalidArgument)
	_, err = recognise.LayeredLensSpace{P: 4, Q: 2}.Construct()
	assert.ErrorIs(t, err, recognise.ErrInvalidArgument)
	_, err = recognise.TrivialTri{Kind: 9}.Manifold()
	assert.ErrorIs(t, err, recognise.ErrNotImplemented)
}
