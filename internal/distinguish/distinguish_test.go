package distinguish_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/trimanifold/builder"
	"github.com/katalvlaran/trimanifold/internal/distinguish"
	"github.com/katalvlaran/trimanifold/snappea"
	"github.com/katalvlaran/trimanifold/triangulation"
	"github.com/katalvlaran/trimanifold/turaevviro"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func build(t *testing.T, seed int64, con builder.Constructor) *triangulation.Triangulation {
	t.Helper()
	var opts []builder.BuilderOption
	if seed != 0 {
		opts = append(opts, builder.WithRandomRelabel(seed))
	}
	tri, err := builder.Build(3, opts, con)
	require.NoError(t, err)
	return tri
}

func fixture(t *testing.T) []distinguish.Container {
	t.Helper()
	return []distinguish.Container{
		{Name: "L(5,2)", Members: []distinguish.Member{
			distinguish.NewMember("a", build(t, 0, builder.LayeredLensSpace(5, 2))),
			distinguish.NewMember("b", build(t, 7, builder.LayeredLensSpace(5, 2))),
		}},
		{Name: "S3", Members: []distinguish.Member{
			distinguish.NewMember("two", build(t, 0, builder.Sphere())),
			distinguish.NewMember("five", build(t, 0, builder.SimplexBoundary())),
		}},
		{Name: "mixed", Members: []distinguish.Member{
			distinguish.NewMember("lens", build(t, 0, builder.LayeredLensSpace(8, 3))),
			distinguish.NewMember("sphere", build(t, 0, builder.Sphere())),
		}},
		{Name: "S3 copy", Members: []distinguish.Member{
			distinguish.NewMember("two", build(t, 3, builder.Sphere())),
		}},
		{Name: "empty"},
	}
}

func testConfig() distinguish.Config {
	cfg := distinguish.DefaultConfig()
	cfg.RMax = 4
	cfg.Workers = 3
	return cfg
}

func TestTVParameters(t *testing.T) {
	t.Parallel()

	want := [][2]int{{3, 1}, {3, 2}, {4, 1}, {4, 3}, {5, 1}, {5, 2}, {5, 3}, {5, 4}, {6, 1}, {6, 5}}
	if diff := cmp.Diff(want, distinguish.TVParameters(6)); diff != "" {
		t.Errorf("TVParameters mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, distinguish.TVParameters(2))
}

func TestRun(t *testing.T) {
	t.Parallel()

	rep, err := distinguish.Run(context.Background(), fixture(t), testConfig())
	require.NoError(t, err)

	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, 4, rep.RMax)
	assert.Equal(t, 7, rep.Triangulations)
	assert.Equal(t, []string{"mixed"}, rep.Disagreements)
	assert.Equal(t, []distinguish.Match{{A: "S3", B: "S3 copy"}}, rep.Matches)

	require.Len(t, rep.Containers, 5)
	lens := rep.Containers[0].Members[0].Invariants
	assert.Equal(t, "Z_5", lens.H1s)
	assert.Equal(t, 0, lens.H2Z2)
	assert.Len(t, lens.TV, 4)
	assert.True(t, rep.Containers[4].Consistent)
	assert.Empty(t, rep.Containers[4].Members)
}

func TestReportWriters(t *testing.T) {
	t.Parallel()

	rep, err := distinguish.Run(context.Background(), fixture(t), testConfig())
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, rep.WriteText(&text))
	out := text.String()
	assert.Contains(t, out, "Run "+rep.RunID)
	assert.Contains(t, out, "Inconsistent containers:\n  mixed\n")
	assert.Contains(t, out, "    lens: H1 = Z_8, H2(Z_2) rank 1, TV(3,1) = ")
	assert.Contains(t, out, "  S3 == S3 copy\n")
	assert.NotContains(t, out, "  L(5,2)\n")

	var buf bytes.Buffer
	require.NoError(t, rep.WriteJSON(&buf))
	var decoded struct {
		RunID         string              `json:"run_id"`
		Disagreements []string            `json:"disagreements"`
		Matches       []distinguish.Match `json:"matches"`
		Containers    []struct {
			Name    string `json:"name"`
			Members []struct {
				Invariants struct {
					H1 string `json:"h1"`
				} `json:"invariants"`
			} `json:"members"`
		} `json:"containers"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rep.RunID, decoded.RunID)
	assert.Equal(t, []string{"mixed"}, decoded.Disagreements)
	assert.Equal(t, rep.Matches, decoded.Matches)
	assert.Equal(t, "Z_8", decoded.Containers[2].Members[0].Invariants.H1)
}

func TestRunEmptyReportJSON(t *testing.T) {
	t.Parallel()

	rep, err := distinguish.Run(context.Background(), nil, testConfig())
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, rep.WriteJSON(&buf))
	assert.Contains(t, buf.String(), `"disagreements": []`)
	assert.Contains(t, buf.String(), `"matches": []`)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	bad := testConfig()
	bad.Workers = 0
	_, err := distinguish.Run(context.Background(), fixture(t), bad)
	require.ErrorIs(t, err, distinguish.ErrInvalidArgument)

	bad = testConfig()
	bad.RMax = 1
	_, err = distinguish.Run(context.Background(), fixture(t), bad)
	require.ErrorIs(t, err, distinguish.ErrInvalidArgument)

	missing := []distinguish.Container{{Name: "x", Members: []distinguish.Member{{Name: "nothing"}}}}
	_, err = distinguish.Run(context.Background(), missing, testConfig())
	require.ErrorIs(t, err, distinguish.ErrInvalidArgument)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = distinguish.Run(ctx, fixture(t), testConfig())
	require.ErrorIs(t, err, turaevviro.ErrCancelled)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lens := build(t, 0, builder.LayeredLensSpace(5, 2))
	text, err := snappea.String(build(t, 4, builder.LayeredLensSpace(5, 2)))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lens.tri"), []byte(text), 0o644))

	doc := `containers:
  - name: L(5,2)
    triangulations:
      - name: from sig
        sig: ` + lens.IsoSig() + `
      - snappea: lens.tri
  - name: nothing
`
	path := filepath.Join(dir, "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cs, err := distinguish.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	require.Len(t, cs[0].Members, 2)
	assert.Equal(t, "from sig", cs[0].Members[0].Name)
	assert.Equal(t, "lens.tri", cs[0].Members[1].Name)
	assert.Equal(t, lens.IsoSig(), cs[0].Members[1].Triangulation().IsoSig())
	assert.Empty(t, cs[1].Members)

	rep, err := distinguish.Run(context.Background(), cs, testConfig())
	require.NoError(t, err)
	assert.Empty(t, rep.Disagreements)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"not yaml", "containers: [\n"},
		{"unknown field", "containers:\n  - name: a\n    colour: red\n"},
		{"no name", "containers:\n  - triangulations:\n      - sig: bkaagb\n"},
		{"both", "containers:\n  - name: a\n    triangulations:\n      - sig: bkaagb\n        snappea: x.tri\n"},
		{"neither", "containers:\n  - name: a\n    triangulations:\n      - name: lonely\n"},
		{"bad sig", "containers:\n  - name: a\n    triangulations:\n      - sig: \"!!\"\n"},
		{"missing file", "containers:\n  - name: a\n    triangulations:\n      - snappea: missing.tri\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := distinguish.Load(strings.NewReader(tc.doc), t.TempDir())
			require.ErrorIs(t, err, distinguish.ErrInvalidInput)
		})
	}
}
