package normal

// quadSeparating[i][j] is the quad type keeping tetrahedron vertices i and
// j together. Quad type q keeps the ends of edge q together.
var quadSeparating = [4][4]int{
	{-1, 0, 1, 2},
	{0, -1, 2, 1},
	{1, 2, -1, 0},
	{2, 1, 0, -1},
}

// quadMeeting[i][j] lists the two quad types that meet edge ij.
var quadMeeting = [4][4][2]int{
	{{-1, -1}, {1, 2}, {0, 2}, {0, 1}},
	{{1, 2}, {-1, -1}, {0, 1}, {0, 2}},
	{{0, 2}, {0, 1}, {-1, -1}, {1, 2}},
	{{0, 1}, {0, 2}, {1, 2}, {-1, -1}},
}

// quadDefn[q] lists the pairs {0,1} and {2,3} kept together by quad q.
// The first pair always contains vertex 0.
var quadDefn = [3][4]int{
	{0, 1, 2, 3},
	{0, 2, 1, 3},
	{0, 3, 1, 2},
}

// quadPartner[q][v] is the vertex paired with v by quad q.
var quadPartner = [3][4]int{
	{1, 0, 3, 2},
	{2, 3, 0, 1},
	{3, 2, 1, 0},
}

// onVertexZeroSide reports whether quad q places v with vertex 0.
func onVertexZeroSide(q, v int) bool { return v == 0 || quadPartner[q][v] == 0 }

// faceOthers returns the two vertices of face f other than w, ascending.
func faceOthers(f, w int) (x, y int) {
	x = -1
	for v := 0; v < 4; v++ {
		if v == f || v == w {
			continue
		}
		if x < 0 {
			x = v
		} else {
			y = v
		}
	}
	return x, y
}

// discKind distinguishes the elementary disc shapes.
type discKind uint8

const (
	triangleDisc discKind = iota
	quadDisc
	octDisc
)

// discType names one disc type inside one tetrahedron.
type discType struct {
	tet  int
	kind discKind
	typ  int
}

// arc is the place where a disc meets a face: on face f of its
// tetrahedron, cutting off corner w.
type arc struct {
	f, w int
}

// arcsOf lists the arcs of a triangle or quad type in the order they are
// traversed by the disc's canonical boundary orientation.
func arcsOf(kind discKind, typ int) []arc {
	if kind == triangleDisc {
		a, b, c := others(typ)
		return []arc{{c, typ}, {a, typ}, {b, typ}}
	}
	d := quadDefn[typ]
	return []arc{{d[1], d[0]}, {d[2], d[3]}, {d[0], d[1]}, {d[3], d[2]}}
}

// others returns the three vertices other than v, ascending.
func others(v int) (a, b, c int) {
	var out [3]int
	k := 0
	for i := 0; i < 4; i++ {
		if i != v {
			out[k] = i
			k++
		}
	}
	return out[0], out[1], out[2]
}

// canonicalArc returns the direction (x→y) in which the canonical boundary
// orientation of the disc runs along its arc a: from the edge joining a.w
// to x towards the edge joining a.w to y.
func canonicalArc(kind discKind, typ int, a arc) (x, y int) {
	if kind == triangleDisc {
		p, q, r := others(typ)
		switch a.f {
		case r:
			return p, q
		case p:
			return q, r
		default:
			return r, p
		}
	}
	d := quadDefn[typ]
	switch a.w {
	case d[0]:
		return d[2], d[3]
	case d[3]:
		return d[0], d[1]
	case d[1]:
		return d[3], d[2]
	default:
		return d[1], d[0]
	}
}

// normalTowardsCorner reports whether the canonical normal of the disc
// points towards corner a.w along arc a. Triangles face their vertex and
// quads face the side holding vertex 0.
func normalTowardsCorner(kind discKind, typ int, a arc) bool {
	if kind == triangleDisc {
		return true
	}
	return onVertexZeroSide(typ, a.w)
}

// cornerEdges returns the tetrahedron edges, as vertex pairs, on which the
// vertices of the disc lie, in boundary order.
func cornerEdges(kind discKind, typ int) [][2]int {
	if kind == triangleDisc {
		a, b, c := others(typ)
		return [][2]int{{typ, a}, {typ, b}, {typ, c}}
	}
	d := quadDefn[typ]
	return [][2]int{{d[0], d[2]}, {d[0], d[3]}, {d[1], d[3]}, {d[1], d[2]}}
}
