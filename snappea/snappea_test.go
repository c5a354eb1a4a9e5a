package snappea_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/builder"
	"github.com/katalvlaran/trimanifold/snappea"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// sphereText is the two-tetrahedron 3-sphere as another program writes it,
// with a filled cusp record and shapes.
const sphereText = `% triangulation

Two tetrahedron sphere
geometric_solution  2.0298832128
oriented_manifold
CS_known -0.0000000000000000

1 0
    torus   0.000000000000   0.000000000000

2
   1    1    1    1 
 0123 0123 0123 0123
   0    0    0    0 
  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0
  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0
  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0
  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0
  0.500000000000   0.866025403784

   0    0    0    0 
 0123 0123 0123 0123
   0    0    0    0 
  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0
  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0
  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0
  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0  0
  0.500000000000   0.866025403784
`

func mustBuild(t *testing.T, opts []builder.BuilderOption, con builder.Constructor) *triangulation.Triangulation {
	t.Helper()
	tri, err := builder.Build(3, opts, con)
	require.NoError(t, err)
	return tri
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		con   builder.Constructor
		label string
		want  string
	}{
		{"figure eight", builder.FigureEight(), "Figure eight", "Figure_eight"},
		{"sphere", builder.Sphere(), "", "Unnamed_Triangulation"},
		{"L(8,3)", builder.LayeredLensSpace(8, 3), "L(8,3)", "L(8,3)"},
		{"pentachoron boundary", builder.SimplexBoundary(), "S3\tfive", "S3_five"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tri := mustBuild(t, []builder.BuilderOption{builder.WithRandomRelabel(5), builder.WithLabel(tc.label)}, tc.con)

			text, err := snappea.String(tri)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(text, "% Triangulation\n"+tc.want+"\n"), text)

			back, err := snappea.ReadString(text)
			require.NoError(t, err)
			assert.Equal(t, tri.Size(), back.Size())
			assert.Equal(t, tri.IsoSig(), back.IsoSig())
			assert.Equal(t, tc.want, back.Label())
			for i := 0; i < tri.Size(); i++ {
				for f := 0; f < 4; f++ {
					assert.Equal(t, tri.Simplex(i).Adjacent(f).Index(), back.Simplex(i).Adjacent(f).Index())
					assert.Equal(t, tri.Simplex(i).Gluing(f), back.Simplex(i).Gluing(f))
				}
			}
		})
	}
}

func TestReadForeign(t *testing.T) {
	t.Parallel()

	tri, err := snappea.ReadString(sphereText)
	require.NoError(t, err)
	assert.Equal(t, "Two tetrahedron sphere", tri.Label())
	assert.Equal(t, 2, tri.Size())
	assert.True(t, tri.IsValid())
	assert.True(t, tri.IsClosed())
	assert.True(t, tri.HomologyH1().IsTrivial())
}

func TestReadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", snappea.ErrInvalidInput},
		{"missing marker", strings.Replace(sphereText, "% triangulation", "% Graph", 1), snappea.ErrInvalidInput},
		{"truncated", sphereText[:len(sphereText)/2], snappea.ErrInvalidInput},
		{"bad gluing", strings.Replace(sphereText, " 0123 0123 0123 0123", " 0124 0123 0123 0123", 1), snappea.ErrInvalidInput},
		{"bad neighbour", strings.Replace(sphereText, "   1    1    1    1 ", "   1    1    1    2 ", 1), snappea.ErrInvalidInput},
		{"negative neighbour", strings.Replace(sphereText, "   1    1    1    1 ", "   1    1    1   -1 ", 1), snappea.ErrInvalidInput},
		{"bad CS marker", strings.Replace(sphereText, "CS_known", "CS_maybe", 1), snappea.ErrInvalidInput},
		{"inconsistent gluing", strings.Replace(sphereText, " 0123 0123 0123 0123", " 1023 0123 0123 0123", 1), snappea.ErrInvalidArgument},
		{"one-sided neighbour", strings.Replace(sphereText, "   1    1    1    1 ", "   1    1    1    0 ", 1), snappea.ErrInvalidArgument},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := snappea.ReadString(tc.text)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sphere.tri")
	require.NoError(t, os.WriteFile(path, []byte(sphereText), 0o644))

	tri, err := snappea.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tri.Size())

	_, err = snappea.ReadFile(filepath.Join(dir, "missing.tri"))
	require.ErrorIs(t, err, snappea.ErrFile)
}

func TestWriteRejects(t *testing.T) {
	t.Parallel()

	empty, err := triangulation.New(3)
	require.NoError(t, err)
	surface, err := builder.Build(2, nil, builder.Torus())
	require.NoError(t, err)

	tests := []struct {
		name string
		tri  *triangulation.Triangulation
	}{
		{"nil", nil},
		{"empty", empty},
		{"boundary", mustBuild(t, nil, builder.Ball())},
		{"solid torus", mustBuild(t, nil, builder.LayeredSolidTorus(1, 2))},
		{"dimension 2", surface},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var sb strings.Builder
			require.ErrorIs(t, snappea.Write(&sb, tc.tri), snappea.ErrInvalidArgument)
			assert.Empty(t, sb.String())
		})
	}
}
