package snappea

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/katalvlaran/trimanifold/triangulation"
)

// defaultName is written when the triangulation has no label.
const defaultName = "Unnamed_Triangulation"

// Write emits t in SnapPea format. t must be 3-dimensional, valid and
// non-empty, with no boundary facets. Whitespace in the label becomes '_'.
func Write(w io.Writer, t *triangulation.Triangulation) error {
	switch {
	case t == nil:
		return snapErrorf("Write", ErrInvalidArgument, "nil triangulation")
	case t.Dim() != 3:
		return snapErrorf("Write", ErrInvalidArgument, "dimension %d, want 3", t.Dim())
	case t.IsEmpty():
		return snapErrorf("Write", ErrInvalidArgument, "empty triangulation")
	case !t.IsValid():
		return snapErrorf("Write", ErrInvalidArgument, "triangulation is not valid")
	case t.HasBoundaryFacets():
		return snapErrorf("Write", ErrInvalidArgument, "%d boundary facets", t.CountBoundaryFacets())
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "% Triangulation")
	fmt.Fprintln(bw, fileName(t.Label()))
	fmt.Fprintln(bw, "not_attempted 0.0")
	fmt.Fprintln(bw, "unknown_orientability")
	fmt.Fprintln(bw, "CS_unknown")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "0 0")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, t.Size())
	for _, s := range t.Simplices() {
		for f := 0; f < 4; f++ {
			fmt.Fprintf(bw, "   %d ", s.Adjacent(f).Index())
		}
		fmt.Fprintln(bw)
		for f := 0; f < 4; f++ {
			fmt.Fprintf(bw, " %s", s.Gluing(f))
		}
		fmt.Fprintln(bw)
		for f := 0; f < 4; f++ {
			fmt.Fprint(bw, "  -1 ")
		}
		fmt.Fprintln(bw)
		for line := 0; line < 4; line++ {
			fmt.Fprintln(bw, strings.Repeat("  0", 16))
		}
		fmt.Fprintln(bw, "0.0 0.0")
	}
	if err := bw.Flush(); err != nil {
		return snapErrorf("Write", ErrFile, "%v", err)
	}
	return nil
}

// String returns the SnapPea text for t.
func String(t *triangulation.Triangulation) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, t); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func fileName(label string) string {
	if strings.TrimSpace(label) == "" {
		return defaultName
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, label)
}
