package snappea

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/trimanifold/perm"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// tokens walks the whitespace-separated fields after the name line.
type tokens struct {
	fields []string
	pos    int
}

func (t *tokens) next(what string) (string, error) {
	if t.pos >= len(t.fields) {
		return "", snapErrorf("Read", ErrInvalidInput, "input ends before %s", what)
	}
	t.pos++
	return t.fields[t.pos-1], nil
}

func (t *tokens) int(what string) (int, error) {
	s, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, snapErrorf("Read", ErrInvalidInput, "%s: %q is not an integer", what, s)
	}
	return v, nil
}

func (t *tokens) float(what string) error {
	s, err := t.next(what)
	if err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return snapErrorf("Read", ErrInvalidInput, "%s: %q is not a number", what, s)
	}
	return nil
}

type tetRecord struct {
	adj  [4]int
	glue [4]perm.Perm
}

// Read parses one SnapPea triangulation.
func Read(r io.Reader) (*triangulation.Triangulation, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	nextLine := func() (string, bool) {
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				return line, true
			}
		}
		return "", false
	}
	marker, ok := nextLine()
	if !ok || (marker != "% Triangulation" && marker != "% triangulation") {
		return nil, snapErrorf("Read", ErrInvalidInput, "missing %q marker", "% Triangulation")
	}
	name, ok := nextLine()
	if !ok {
		return nil, snapErrorf("Read", ErrInvalidInput, "input ends before the manifold name")
	}
	var rest []string
	for sc.Scan() {
		rest = append(rest, strings.Fields(sc.Text())...)
	}
	if err := sc.Err(); err != nil {
		return nil, snapErrorf("Read", ErrFile, "%v", err)
	}
	tok := &tokens{fields: rest}

	if _, err := tok.next("solution type"); err != nil {
		return nil, err
	}
	if err := tok.float("volume"); err != nil {
		return nil, err
	}
	if _, err := tok.next("orientability"); err != nil {
		return nil, err
	}
	cs, err := tok.next("Chern-Simons marker")
	if err != nil {
		return nil, err
	}
	switch cs {
	case "CS_known":
		if err := tok.float("Chern-Simons invariant"); err != nil {
			return nil, err
		}
	case "CS_unknown":
	default:
		return nil, snapErrorf("Read", ErrInvalidInput, "unknown Chern-Simons marker %q", cs)
	}

	orientable, err := tok.int("orientable cusp count")
	if err != nil {
		return nil, err
	}
	nonOrientable, err := tok.int("non-orientable cusp count")
	if err != nil {
		return nil, err
	}
	if orientable < 0 || nonOrientable < 0 {
		return nil, snapErrorf("Read", ErrInvalidInput, "negative cusp count")
	}
	for c := 0; c < orientable+nonOrientable; c++ {
		if _, err := tok.next("cusp type"); err != nil {
			return nil, err
		}
		if err := tok.float("meridian filling"); err != nil {
			return nil, err
		}
		if err := tok.float("longitude filling"); err != nil {
			return nil, err
		}
	}

	n, err := tok.int("tetrahedron count")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, snapErrorf("Read", ErrInvalidInput, "negative tetrahedron count %d", n)
	}
	tets := make([]tetRecord, n)
	for i := range tets {
		if tets[i], err = readTet(tok, i, n); err != nil {
			return nil, err
		}
	}

	t, err := triangulation.New(3)
	if err != nil {
		return nil, err
	}
	simps := t.NewSimplices(n)
	for i, rec := range tets {
		for f := 0; f < 4; f++ {
			j, g := rec.adj[f], rec.glue[f]
			back := g.Image(f)
			if tets[j].adj[back] != i || tets[j].glue[back] != g.Inverse() {
				return nil, snapErrorf("Read", ErrInvalidArgument,
					"tetrahedron %d facet %d disagrees with tetrahedron %d facet %d", i, f, j, back)
			}
			if j == i && back == f {
				return nil, snapErrorf("Read", ErrInvalidArgument, "tetrahedron %d facet %d glued to itself", i, f)
			}
			if j < i || (j == i && back < f) {
				continue
			}
			if err := simps[i].Join(f, simps[j], g); err != nil {
				return nil, snapErrorf("Read", ErrInvalidArgument, "%v", err)
			}
		}
	}
	t.SetLabel(name)
	return t, nil
}

func readTet(tok *tokens, i, n int) (tetRecord, error) {
	var rec tetRecord
	for f := 0; f < 4; f++ {
		j, err := tok.int("neighbour index")
		if err != nil {
			return rec, err
		}
		if j < 0 || j >= n {
			return rec, snapErrorf("Read", ErrInvalidInput, "tetrahedron %d facet %d: neighbour %d out of range", i, f, j)
		}
		rec.adj[f] = j
	}
	for f := 0; f < 4; f++ {
		s, err := tok.next("gluing permutation")
		if err != nil {
			return rec, err
		}
		g, err := perm.Parse(s)
		if err != nil || g.Size() != 4 {
			return rec, snapErrorf("Read", ErrInvalidInput, "tetrahedron %d facet %d: bad gluing %q", i, f, s)
		}
		rec.glue[f] = g
	}
	for k := 0; k < 4; k++ {
		if _, err := tok.int("cusp index"); err != nil {
			return rec, err
		}
	}
	for k := 0; k < 64; k++ {
		if _, err := tok.int("peripheral curve entry"); err != nil {
			return rec, err
		}
	}
	for k := 0; k < 2; k++ {
		if err := tok.float("shape"); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// ReadString parses SnapPea data held in a string.
func ReadString(s string) (*triangulation.Triangulation, error) {
	return Read(strings.NewReader(s))
}

// ReadFile parses the SnapPea file at path.
func ReadFile(path string) (*triangulation.Triangulation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, snapErrorf("ReadFile", ErrFile, "%v", err)
	}
	defer f.Close()
	return Read(f)
}
