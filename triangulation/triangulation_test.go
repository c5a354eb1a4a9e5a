package triangulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/perm"
	"github.com/katalvlaran/trimanifold/triangulation"
)

const figureEightSig = "cPcbbbiht"

// doubleSimplex glues two dim-simplices along all facets by the identity,
// giving the dim-sphere.
func doubleSimplex(t *testing.T, dim int) *triangulation.Triangulation {
	t.Helper()
	tri := triangulation.MustNew(dim)
	s := tri.NewSimplices(2)
	for f := 0; f <= dim; f++ {
		require.NoError(t, s[0].Join(f, s[1], perm.Identity(dim+1)))
	}
	return tri
}

func mustFromSig(t *testing.T, dim int, sig string) *triangulation.Triangulation {
	t.Helper()
	tri, err := triangulation.FromIsoSig(dim, sig)
	require.NoError(t, err)
	return tri
}

func TestNewRejectsDimension(t *testing.T) {
	for _, d := range []int{-1, 0, 1, 5} {
		_, err := triangulation.New(d)
		assert.ErrorIs(t, err, triangulation.ErrInvalidDimension, "dim %d", d)
	}
}

func TestFaceNumbering(t *testing.T) {
	t.Parallel()
	cases := []struct {
		dim, k int
		verts  []int
		want   int
	}{
		{3, 0, []int{2}, 2},
		{3, 1, []int{0, 1}, 0},
		{3, 1, []int{0, 3}, 2},
		{3, 1, []int{3, 2}, 5},
		{3, 2, []int{1, 2, 3}, 0},
		{3, 2, []int{0, 1, 2}, 3},
		{4, 2, []int{2, 3, 4}, 0},
		{4, 2, []int{0, 1, 2}, 9},
		{4, 3, []int{0, 1, 2, 3}, 4},
		{2, 1, []int{0, 2}, 1},
		{3, 1, []int{1, 1}, -1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, triangulation.FaceNumber(c.dim, c.k, c.verts...), "%d-face %v in dim %d", c.k, c.verts, c.dim)
	}
	assert.Equal(t, 10, triangulation.FaceCount(4, 2))
	assert.Equal(t, []int{1, 2, 3}, triangulation.FaceVertices(3, 2, 0))
	for k := 0; k < 4; k++ {
		for i := 0; i < triangulation.FaceCount(3, k); i++ {
			vs := triangulation.FaceVertices(3, k, i)
			assert.Equal(t, i, triangulation.FaceNumber(3, k, vs...))
			p := triangulation.FaceOrdering(3, k, i)
			for j, v := range vs {
				assert.Equal(t, v, p.Image(j))
			}
		}
	}
}

func TestJoinValidation(t *testing.T) {
	t.Parallel()
	tri := triangulation.MustNew(3)
	s := tri.NewSimplices(2)
	id := perm.Identity(4)

	require.NoError(t, s[0].Join(0, s[1], id))
	assert.Equal(t, s[0], s[1].Adjacent(0))
	assert.Equal(t, 0, s[1].AdjacentFacet(0))

	err := s[0].Join(0, s[1], perm.Transposition(4, 0, 1))
	assert.ErrorIs(t, err, triangulation.ErrInvalidArgument)
	err = s[0].Join(1, s[0], id)
	assert.ErrorIs(t, err, triangulation.ErrInvalidArgument)
	err = s[0].Join(4, s[1], id)
	assert.ErrorIs(t, err, triangulation.ErrInvalidArgument)
	err = s[0].Join(1, s[1], perm.Identity(3))
	assert.ErrorIs(t, err, triangulation.ErrInvalidArgument)

	// A self-gluing swapping two facets is fine.
	require.NoError(t, s[0].Join(1, s[0], perm.Transposition(4, 1, 2)))
	assert.Equal(t, 1, s[0].AdjacentFacet(2))

	other, err := s[0].Unjoin(0)
	require.NoError(t, err)
	assert.Equal(t, s[1], other)
	assert.Nil(t, s[1].Adjacent(0))
}

func TestGluingsRoundTrip(t *testing.T) {
	t.Parallel()
	fig8 := mustFromSig(t, 3, figureEightSig)
	gl := fig8.Gluings()
	assert.Len(t, gl, 4)
	u, err := triangulation.FromGluings(3, fig8.Size(), gl)
	require.NoError(t, err)
	assert.True(t, u.IsIdenticalTo(fig8))
}

func TestLocks(t *testing.T) {
	t.Parallel()
	tri := doubleSimplex(t, 3)
	s := tri.Simplex(0)

	s.Lock()
	assert.ErrorIs(t, tri.RemoveSimplex(s), triangulation.ErrLocked)
	_, err := tri.OneToMany(s, false, true)
	assert.ErrorIs(t, err, triangulation.ErrLocked)
	s.Unlock()

	require.NoError(t, s.LockFacet(2))
	assert.True(t, tri.Simplex(1).IsFacetLocked(2))
	_, err = s.Unjoin(2)
	assert.ErrorIs(t, err, triangulation.ErrLocked)
	_, err = tri.TwoToMany(s, 2, false, true)
	assert.ErrorIs(t, err, triangulation.ErrLocked)

	s.UnlockAll()
	assert.False(t, tri.Simplex(1).IsFacetLocked(2))
	assert.Zero(t, s.LockMask())
}

func TestChangeSpans(t *testing.T) {
	t.Parallel()
	tri := doubleSimplex(t, 3)
	g := tri.Generation()

	tri.SetLabel("S3")
	assert.Equal(t, g, tri.Generation())
	assert.Equal(t, "S3", tri.Label())

	span := tri.BeginChange(triangulation.AllCleared)
	tri.NewSimplex()
	tri.NewSimplex()
	assert.Equal(t, g, tri.Generation(), "inner changes merge into the open span")
	span.End()
	span.End()
	assert.Equal(t, g+1, tri.Generation())
	assert.Equal(t, 3, tri.CountComponents())
}

func TestRemoveSimplexReindexes(t *testing.T) {
	t.Parallel()
	tri := triangulation.MustNew(2)
	s := tri.NewSimplices(3)
	require.NoError(t, s[1].Join(0, s[2], perm.Identity(3)))
	require.NoError(t, tri.RemoveSimplex(s[0]))
	assert.Equal(t, 2, tri.Size())
	assert.Equal(t, 0, s[1].Index())
	assert.Equal(t, 1, s[2].Index())
	assert.Nil(t, s[0].Triangulation())
	assert.Equal(t, 1, tri.CountComponents())
}

func TestInsertTriangulation(t *testing.T) {
	t.Parallel()
	tri := doubleSimplex(t, 3)
	require.NoError(t, tri.InsertTriangulation(tri))
	assert.Equal(t, 4, tri.Size())
	assert.Equal(t, 2, tri.CountComponents())
	assert.ErrorIs(t, tri.InsertTriangulation(triangulation.MustNew(2)), triangulation.ErrInvalidArgument)
}

func TestPairing(t *testing.T) {
	t.Parallel()
	tri := triangulation.MustNew(3)
	s := tri.NewSimplices(2)
	require.NoError(t, s[0].Join(3, s[1], perm.Transposition(4, 2, 3)))
	p := tri.Pairing()
	require.Len(t, p, 8)
	assert.Equal(t, triangulation.FacetSpec{Simp: 1, Facet: 2}, p[3])
	assert.Equal(t, triangulation.FacetSpec{Simp: 0, Facet: 3}, p[6])
	assert.Equal(t, triangulation.FacetSpec{Simp: 2, Facet: 0}, p[0])
}
