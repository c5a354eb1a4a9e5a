package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/builder"
)

func writeInput(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	lens := builder.MustBuild(3, nil, builder.LayeredLensSpace(5, 2))
	sphere := builder.MustBuild(3, nil, builder.Sphere())
	doc := "containers:\n" +
		"  - name: L(5,2)\n    triangulations:\n      - sig: " + lens.IsoSig() + "\n" +
		"  - name: S3\n    triangulations:\n      - sig: " + sphere.IsoSig() + "\n" +
		"  - name: S3 again\n    triangulations:\n      - sig: " + sphere.IsoSig() + "\n"
	path := filepath.Join(dir, "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestText(t *testing.T) {
	out, err := execute(t, "--rmax", "3", writeInput(t))
	require.NoError(t, err)
	assert.Contains(t, out, "3 containers, 3 triangulations, r <= 3")
	assert.Contains(t, out, "  S3 == S3 again\n")
}

func TestJSONFromConfig(t *testing.T) {
	input := writeInput(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("rmax: 4\njson: true\nworkers: 2\n"), 0o644))

	out, err := execute(t, "--config", cfgPath, input)
	require.NoError(t, err)
	var rep struct {
		RMax    int `json:"rmax"`
		Matches []struct {
			A string `json:"a"`
			B string `json:"b"`
		} `json:"matches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 4, rep.RMax)
	require.Len(t, rep.Matches, 1)
	assert.Equal(t, "S3", rep.Matches[0].A)

	out, err = execute(t, "--config", cfgPath, "--rmax", "3", input)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 3, rep.RMax)
}

func TestErrors(t *testing.T) {
	_, err := execute(t)
	require.Error(t, err)

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	_, err = execute(t, missing)
	require.ErrorContains(t, err, "load "+missing)

	_, err = execute(t, "--config", missing, writeInput(t))
	require.ErrorContains(t, err, "read config")

	_, err = execute(t, "--rmax", "1", writeInput(t))
	require.ErrorContains(t, err, "run ")
}
