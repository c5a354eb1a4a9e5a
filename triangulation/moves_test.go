package triangulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/triangulation"
)

func TestOneToManyAllDimensions(t *testing.T) {
	t.Parallel()
	for _, dim := range []int{2, 3, 4} {
		tri := doubleSimplex(t, dim)
		euler := tri.EulerCharTri()
		ok, err := tri.OneToMany(tri.Simplex(1), false, true)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, dim+2, tri.Size())
		assert.Equal(t, dim+2, tri.CountFaces(0))
		assert.Equal(t, euler, tri.EulerCharTri(), "dim %d", dim)
		assert.True(t, tri.IsValid())
		assert.True(t, tri.IsClosed())
		assert.True(t, tri.IsOrientable())
		assert.True(t, tri.HomologyH1().IsTrivial())
	}
}

func TestTwoToManyAllDimensions(t *testing.T) {
	t.Parallel()
	for _, dim := range []int{2, 3, 4} {
		tri := doubleSimplex(t, dim)
		_, err := tri.OneToMany(tri.Simplex(0), false, true)
		require.NoError(t, err)
		size := tri.Size()
		edges := tri.CountFaces(1)

		ok, err := tri.TwoToMany(tri.Simplex(0), 1, true, false)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, size, tri.Size(), "check only")

		_, err = tri.TwoToMany(tri.Simplex(0), 1, false, true)
		require.NoError(t, err)
		assert.Equal(t, size+dim-2, tri.Size(), "dim %d", dim)
		if dim > 2 {
			assert.Equal(t, edges+1, tri.CountFaces(1))
		}
		assert.True(t, tri.IsValid())
		assert.True(t, tri.IsOrientable())
		assert.True(t, tri.HomologyH1().IsTrivial())
	}
}

func TestTwoThreeThenThreeTwo(t *testing.T) {
	t.Parallel()
	tri := mustFromSig(t, 3, figureEightSig)
	_, err := tri.TwoToMany(tri.Simplex(0), 0, false, true)
	require.NoError(t, err)
	require.Equal(t, 3, tri.Size())
	assert.Equal(t, 3, tri.CountFaces(1))
	assert.True(t, tri.IsValid())
	assert.True(t, tri.IsIdeal())
	assert.True(t, tri.HomologyH1().IsZ())

	var undone bool
	for _, e := range tri.Edges() {
		if ok, _ := tri.ThreeTwo(e, true, false); !ok {
			continue
		}
		_, err := tri.ThreeTwo(e, false, true)
		require.NoError(t, err)
		undone = true
		break
	}
	require.True(t, undone, "the new edge has degree three")
	assert.Equal(t, 2, tri.Size())
	assert.True(t, tri.IsValid())
	assert.True(t, tri.HomologyH1().IsZ())
	assert.Equal(t, 0, tri.EulerCharManifold())
}

func TestMovesRefuseBadPositions(t *testing.T) {
	t.Parallel()
	tri := triangulation.MustNew(3)
	tri.NewSimplex()
	ok, err := tri.TwoToMany(tri.Simplex(0), 0, true, true)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = tri.TwoToMany(tri.Simplex(0), 0, false, true)
	assert.ErrorIs(t, err, triangulation.ErrNotApplicable)

	ok, err = tri.ThreeTwo(tri.Face(1, 0), true, true)
	require.NoError(t, err)
	assert.False(t, ok)

	surf := doubleSimplex(t, 2)
	_, err = surf.ThreeTwo(surf.Face(1, 0), true, true)
	assert.ErrorIs(t, err, triangulation.ErrNotApplicable)
}

func TestMovesKeepTopologyCache(t *testing.T) {
	t.Parallel()
	tri := mustFromSig(t, 3, figureEightSig)
	h1 := tri.HomologyH1()
	g := tri.Generation()
	_, err := tri.OneToMany(tri.Simplex(0), false, true)
	require.NoError(t, err)
	assert.Greater(t, tri.Generation(), g)
	assert.True(t, h1.Equal(tri.HomologyH1()))
	assert.Equal(t, 5, tri.Size())
}

func TestShellBoundary(t *testing.T) {
	t.Parallel()
	ball := triangulation.MustNew(3)
	ball.NewSimplex()
	_, err := ball.OneToMany(ball.Simplex(0), false, true)
	require.NoError(t, err)
	require.Equal(t, 4, ball.Size())

	ok, err := ball.ShellBoundary(ball.Simplex(0), true, false)
	require.NoError(t, err)
	require.True(t, ok, "one boundary facet, interior apex")
	_, err = ball.ShellBoundary(ball.Simplex(0), false, true)
	require.NoError(t, err)
	assert.Equal(t, 3, ball.Size())
	assert.True(t, ball.IsValid())
	assert.Equal(t, 1, ball.CountBoundaryComponents())

	assert.True(t, ball.Simplify())
	assert.Equal(t, 1, ball.Size())
	assert.False(t, ball.Simplify())

	closed := doubleSimplex(t, 3)
	ok, err = closed.ShellBoundary(closed.Simplex(0), true, true)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = closed.ShellBoundary(closed.Simplex(0), false, true)
	assert.ErrorIs(t, err, triangulation.ErrNotApplicable)

	surf := doubleSimplex(t, 2)
	_, err = surf.ShellBoundary(surf.Simplex(0), true, true)
	assert.ErrorIs(t, err, triangulation.ErrNotApplicable)
}
