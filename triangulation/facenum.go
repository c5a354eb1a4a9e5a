package triangulation

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/katalvlaran/trimanifold/perm"
)

// Face numbering inside a single dim-simplex.
//
// A k-face with k ≤ dim−1−k is numbered by the lexicographic position of its
// sorted vertex set among all (k+1)-subsets of {0..dim}. Any larger face is
// numbered by its complement: k-face i is the complement of the
// (dim−1−k)-face i. In particular facet i is opposite vertex i, and in
// dimension 4 triangle i is opposite edge i.

type faceTable struct {
	verts    [][]int
	masks    []uint16
	ordering []perm.Perm
	byMask   map[uint16]int
}

// faceTables[dim][k], for 2 ≤ dim ≤ 4 and 0 ≤ k ≤ dim.
var faceTables = buildFaceTables()

func buildFaceTables() [5][]faceTable {
	var out [5][]faceTable
	for dim := 2; dim <= 4; dim++ {
		out[dim] = make([]faceTable, dim+1)
		lex := make([][][]int, dim+1)
		for k := 0; k <= dim; k++ {
			c := combin.Combinations(dim+1, k+1)
			slices.SortFunc(c, slices.Compare[[]int])
			lex[k] = c
		}
		for k := 0; k <= dim; k++ {
			var verts [][]int
			switch {
			case k == dim:
				verts = lex[dim]
			case k <= dim-1-k:
				verts = lex[k]
			default:
				for _, co := range lex[dim-1-k] {
					verts = append(verts, complement(dim, co))
				}
			}
			tab := faceTable{verts: verts, byMask: make(map[uint16]int, len(verts))}
			for i, v := range verts {
				tab.byMask[maskOf(v)] = i
				tab.masks = append(tab.masks, maskOf(v))
				tab.ordering = append(tab.ordering, orderingOf(dim, v))
			}
			out[dim][k] = tab
		}
	}
	return out
}

func complement(dim int, vs []int) []int {
	in := maskOf(vs)
	out := make([]int, 0, dim+1-len(vs))
	for v := 0; v <= dim; v++ {
		if in&(1<<v) == 0 {
			out = append(out, v)
		}
	}
	return out
}

func maskOf(vs []int) uint16 {
	var m uint16
	for _, v := range vs {
		m |= 1 << v
	}
	return m
}

// orderingOf sends 0..k to the face vertices and k+1..dim to the rest, each
// block in increasing order.
func orderingOf(dim int, vs []int) perm.Perm {
	img := append(slices.Clone(vs), complement(dim, vs)...)
	p, err := perm.FromImages(img...)
	if err != nil {
		panic(err)
	}
	return p
}

func checkFace(dim, k int) {
	if dim < 2 || dim > 4 || k < 0 || k > dim {
		panic(fmt.Sprintf("triangulation: no %d-faces in dimension %d", k, dim))
	}
}

// FaceCount returns the number of k-faces of a single dim-simplex.
func FaceCount(dim, k int) int {
	checkFace(dim, k)
	return combin.Binomial(dim+1, k+1)
}

// FaceVertices returns the vertices of k-face i of a dim-simplex in
// increasing order.
func FaceVertices(dim, k, i int) []int {
	checkFace(dim, k)
	return slices.Clone(faceTables[dim][k].verts[i])
}

// FaceNumber returns the number of the k-face of a dim-simplex spanned by
// the given vertices, or -1 if they do not span a k-face.
func FaceNumber(dim, k int, vertices ...int) int {
	checkFace(dim, k)
	if len(vertices) != k+1 {
		return -1
	}
	for _, v := range vertices {
		if v < 0 || v > dim {
			return -1
		}
	}
	if i, ok := faceTables[dim][k].byMask[maskOf(vertices)]; ok {
		return i
	}
	return -1
}

// FaceOrdering returns the canonical permutation of k-face i: it sends
// 0..k to the face's vertices and k+1..dim to the remaining vertices, both in
// increasing order.
func FaceOrdering(dim, k, i int) perm.Perm {
	checkFace(dim, k)
	return faceTables[dim][k].ordering[i]
}

// faceOfHead returns the k-face spanned by p(0..k).
func faceOfHead(dim, k int, p perm.Perm) int {
	var m uint16
	for i := 0; i <= k; i++ {
		m |= 1 << p.Image(i)
	}
	return faceTables[dim][k].byMask[m]
}

// inHead reports whether v ∈ p(0..k).
func inHead(p perm.Perm, k, v int) bool {
	for i := 0; i <= k; i++ {
		if p.Image(i) == v {
			return true
		}
	}
	return false
}

func sameHead(p, q perm.Perm, k int) bool {
	for i := 0; i <= k; i++ {
		if p.Image(i) != q.Image(i) {
			return false
		}
	}
	return true
}

// faceInFacet reports whether k-face i lies in facet f (that is, does not
// contain vertex f).
func faceInFacet(dim, k, i, f int) bool {
	return faceTables[dim][k].masks[i]&(1<<f) == 0
}
