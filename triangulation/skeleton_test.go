package triangulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/builder"
	"github.com/katalvlaran/trimanifold/perm"
	"github.com/katalvlaran/trimanifold/triangulation"
)

func TestSphereSkeletons(t *testing.T) {
	t.Parallel()
	cases := []struct {
		dim   int
		fvec  []int
		euler int
	}{
		{2, []int{3, 3, 2}, 2},
		{3, []int{4, 6, 4, 2}, 0},
		{4, []int{5, 10, 10, 5, 2}, 2},
	}
	for _, c := range cases {
		tri := doubleSimplex(t, c.dim)
		assert.Equal(t, c.fvec, tri.FVector(), "dim %d", c.dim)
		assert.Equal(t, c.euler, tri.EulerCharTri())
		assert.True(t, tri.IsValid())
		assert.True(t, tri.IsClosed())
		assert.True(t, tri.IsOrientable())
		assert.False(t, tri.IsIdeal())
		assert.True(t, tri.IsConnected())
		for _, f := range tri.Faces(0) {
			assert.Equal(t, 2, f.Degree())
		}
	}
}

func TestFigureEightSkeleton(t *testing.T) {
	t.Parallel()
	tri := mustFromSig(t, 3, figureEightSig)
	require.Equal(t, 2, tri.Size())
	assert.Equal(t, []int{1, 2, 4, 2}, tri.FVector())
	assert.True(t, tri.IsValid())
	assert.True(t, tri.IsIdeal())
	assert.True(t, tri.IsStandard())
	assert.True(t, tri.IsOrientable())
	assert.False(t, tri.HasBoundaryFacets())
	assert.Equal(t, 1, tri.EulerCharTri())
	assert.Equal(t, 0, tri.EulerCharManifold())

	v := tri.Face(0, 0)
	assert.Equal(t, triangulation.LinkTorus, v.Link())
	assert.True(t, v.IsIdeal())
	assert.True(t, v.IsBoundary())
	assert.Equal(t, 0, v.LinkEulerChar())
	assert.Equal(t, 8, v.Degree())

	for _, e := range tri.Edges() {
		assert.Equal(t, 6, e.Degree())
		assert.True(t, e.IsValid())
	}

	require.Equal(t, 1, tri.CountBoundaryComponents())
	bc := tri.BoundaryComponent(0)
	assert.True(t, bc.IsIdeal())
	assert.Equal(t, v, bc.IdealVertex())
	assert.Equal(t, 0, bc.EulerChar())
	assert.True(t, bc.IsOrientable())

	link, err := tri.VertexLink(0)
	require.NoError(t, err)
	assert.Equal(t, 8, link.Size())
	assert.Equal(t, 0, link.EulerCharTri())
	assert.False(t, link.HasBoundaryFacets())
}

func TestSingleTetrahedronBall(t *testing.T) {
	t.Parallel()
	tri := triangulation.MustNew(3)
	tri.NewSimplex()
	assert.Equal(t, []int{4, 6, 4, 1}, tri.FVector())
	assert.True(t, tri.IsValid())
	assert.False(t, tri.IsClosed())
	assert.Equal(t, 4, tri.CountBoundaryFacets())
	for _, v := range tri.Vertices() {
		assert.Equal(t, triangulation.LinkDisc, v.Link())
		assert.True(t, v.IsBoundary())
	}

	require.Equal(t, 1, tri.CountBoundaryComponents())
	bc := tri.BoundaryComponent(0)
	assert.True(t, bc.IsReal())
	assert.Equal(t, 4, bc.CountFacets())
	assert.Equal(t, 2, bc.EulerChar())
	assert.Len(t, bc.Vertices(), 4)

	b, m, err := bc.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, b.Dim())
	assert.Equal(t, 4, b.Size())
	assert.Len(t, m, 4)
	assert.True(t, b.IsClosed())
	assert.Equal(t, 2, b.EulerCharTri())
}

func TestSurfaceBoundaryIsNotBuilt(t *testing.T) {
	t.Parallel()
	tri := triangulation.MustNew(2)
	tri.NewSimplex()
	require.Equal(t, 1, tri.CountBoundaryComponents())
	_, _, err := tri.BoundaryComponent(0).Build()
	assert.ErrorIs(t, err, triangulation.ErrNotApplicable)
}

func TestBadIdentification(t *testing.T) {
	t.Parallel()
	// Gluing facet 0 to facet 1 by 1→0, 2→3, 3→2 maps edge 23 onto itself
	// reversed.
	tri := triangulation.MustNew(3)
	s := tri.NewSimplex()
	require.NoError(t, s.Join(0, s, perm.Of(1, 0, 3, 2)))
	assert.False(t, tri.IsValid())
	invalid := 0
	for _, e := range tri.Edges() {
		if e.HasBadIdentification() {
			invalid++
		}
	}
	assert.Equal(t, 1, invalid)
}

func TestNonOrientableGluing(t *testing.T) {
	t.Parallel()
	// Two triangles glued along all edges, one of them by an odd
	// permutation, cannot be consistently oriented.
	tri := triangulation.MustNew(2)
	s := tri.NewSimplices(2)
	require.NoError(t, s[0].Join(0, s[1], perm.Identity(3)))
	require.NoError(t, s[0].Join(1, s[1], perm.Identity(3)))
	require.NoError(t, s[0].Join(2, s[1], perm.Of(1, 0, 2)))
	assert.False(t, tri.IsOrientable())
	assert.False(t, tri.IsOriented())
}

func TestComponentBuild(t *testing.T) {
	t.Parallel()
	tri := doubleSimplex(t, 3)
	require.NoError(t, tri.InsertTriangulation(mustFromSig(t, 3, figureEightSig)))
	require.Equal(t, 2, tri.CountComponents())
	c := tri.Component(1)
	assert.Equal(t, 2, c.Size())
	assert.True(t, c.IsIdeal())
	assert.False(t, tri.Component(0).IsIdeal())
	assert.Equal(t, figureEightSig, c.Build().IsoSig())
}

// coneOver returns the cone over a 3-dimensional triangulation: one
// pentachoron per tetrahedron, with vertex 4 as the cone point and facet 4
// on the boundary.
func coneOver(t *testing.T, base *triangulation.Triangulation) *triangulation.Triangulation {
	t.Helper()
	tri := triangulation.MustNew(4)
	pent := tri.NewSimplices(base.Size())
	for i, s := range base.Simplices() {
		for f := 0; f < 4; f++ {
			adj := s.Adjacent(f)
			if adj == nil || pent[i].Adjacent(f) != nil {
				continue
			}
			g := s.Gluing(f)
			require.NoError(t, pent[i].Join(f, pent[adj.Index()], perm.Of(g.Image(0), g.Image(1), g.Image(2), g.Image(3), 4)))
		}
	}
	return tri
}

func TestFourDimensionalVertexLinks(t *testing.T) {
	t.Parallel()
	lens, err := builder.Build(3, nil, builder.LayeredLensSpace(7, 1))
	require.NoError(t, err)
	cases := []struct {
		name  string
		base  *triangulation.Triangulation
		valid bool
		ideal bool
	}{
		{name: "Ball", base: doubleSimplex(t, 3), valid: true},
		{name: "LensSpaceCusp", base: lens, valid: true, ideal: true},
		{name: "TorusCusp", base: mustFromSig(t, 3, figureEightSig)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			tri := coneOver(t, c.base)
			assert.Equal(t, c.valid, tri.IsValid())
			assert.Equal(t, c.ideal, tri.IsIdeal())
			assert.True(t, tri.HasBoundaryFacets())
		})
	}
}
