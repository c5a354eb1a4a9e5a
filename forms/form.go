package forms

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/matrix"
)

// Form is an integral symmetric bilinear form. It is immutable.
type Form struct {
	m *matrix.Dense
}

// New returns the form with Gram matrix m. The matrix is copied.
func New(m *matrix.Dense) (*Form, error) {
	switch {
	case m == nil:
		return nil, formsErrorf("New", ErrInvalidArgument, "nil matrix")
	case m.Rows() != m.Cols():
		return nil, formsErrorf("New", ErrInvalidArgument, "%dx%d matrix is not square", m.Rows(), m.Cols())
	case !m.IsSymmetric():
		return nil, formsErrorf("New", ErrInvalidArgument, "matrix is not symmetric")
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if m.Entry(i, j).IsInfinite() {
				return nil, formsErrorf("New", ErrInvalidArgument, "infinite entry at (%d, %d)", i, j)
			}
		}
	}
	return &Form{m: m.Clone()}, nil
}

// Matrix returns a copy of the Gram matrix.
func (f *Form) Matrix() *matrix.Dense { return f.m.Clone() }

// Size returns the dimension of the underlying lattice.
func (f *Form) Size() int { return f.m.Rows() }

// Rank returns the rank of the Gram matrix.
func (f *Form) Rank() int { return f.m.Rank() }

// IsNonDegenerate reports whether the Gram matrix has full rank.
func (f *Form) IsNonDegenerate() bool { return f.Rank() == f.Size() }

// IsEven reports whether x·x is even for every lattice vector x, which
// holds exactly when every diagonal entry is even.
func (f *Form) IsEven() bool {
	two := integer.New(2)
	for i := 0; i < f.Size(); i++ {
		r, _ := f.m.Entry(i, i).Mod(two)
		if !r.IsZero() {
			return false
		}
	}
	return true
}

// IsOdd reports whether the form is not even.
func (f *Form) IsOdd() bool { return !f.IsEven() }

// Type returns "even" or "odd".
func (f *Form) Type() string {
	if f.IsEven() {
		return "even"
	}
	return "odd"
}

// Signature returns the number of positive minus the number of negative
// eigenvalues. It fails with ErrArithmetic when the form is singular.
func (f *Form) Signature() (int, error) {
	pos, neg, zero := f.inertia()
	if zero > 0 {
		return 0, formsErrorf("Signature", ErrArithmetic, "form of size %d has nullity %d", f.Size(), zero)
	}
	return pos - neg, nil
}

// inertia diagonalises the form by simultaneous row and column operations
// over Q and counts the signs on the diagonal.
func (f *Form) inertia() (pos, neg, zero int) {
	n := f.Size()
	a := make([][]integer.Rational, n)
	for i := range a {
		a[i] = make([]integer.Rational, n)
		for j := range a[i] {
			a[i][j], _ = integer.RationalFromInt(f.m.Entry(i, j))
		}
	}
	swap := func(i, j int) {
		a[i], a[j] = a[j], a[i]
		for _, row := range a {
			row[i], row[j] = row[j], row[i]
		}
	}
	// addTo adds row and column j to row and column i.
	addTo := func(i, j int) {
		for k := range a {
			a[i][k] = a[i][k].Add(a[j][k])
		}
		for k := range a {
			a[k][i] = a[k][i].Add(a[k][j])
		}
	}

	for k := 0; k < n; k++ {
		p := -1
		for i := k; i < n; i++ {
			if !a[i][i].IsZero() {
				p = i
				break
			}
		}
		if p < 0 {
			// Every remaining diagonal entry is zero; an off-diagonal x at
			// (i, j) turns a[i][i] into 2x after adding j to i.
			for i := k; i < n && p < 0; i++ {
				for j := i + 1; j < n; j++ {
					if !a[i][j].IsZero() {
						addTo(i, j)
						p = i
						break
					}
				}
			}
		}
		if p < 0 {
			zero += n - k
			break
		}
		swap(k, p)
		piv := a[k][k]
		if piv.Sign() > 0 {
			pos++
		} else {
			neg++
		}
		for i := k + 1; i < n; i++ {
			if a[i][k].IsZero() {
				continue
			}
			c, _ := a[i][k].Div(piv)
			for j := k; j < n; j++ {
				a[i][j] = a[i][j].Sub(c.Mul(a[k][j]))
			}
			for j := k; j < n; j++ {
				a[j][i] = a[i][j]
			}
		}
	}
	return pos, neg, zero
}

// SignatureFloat computes the signature from the eigenvalues of the Gram
// matrix in floating point. Eigenvalues within a relative tolerance of zero
// make the form singular.
func (f *Form) SignatureFloat() (int, error) {
	n := f.Size()
	if n == 0 {
		return 0, nil
	}
	data := make([]float64, n*n)
	scale := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			q, _ := integer.RationalFromInt(f.m.Entry(i, j))
			data[i*n+j] = q.Float64()
			scale = math.Max(scale, math.Abs(data[i*n+j]))
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(mat.NewSymDense(n, data), false); !ok {
		return 0, formsErrorf("SignatureFloat", ErrArithmetic, "eigen decomposition did not converge")
	}
	tol := 1e-9 * math.Max(scale, 1) * float64(n)
	sig := 0
	for _, v := range eig.Values(nil) {
		switch {
		case v > tol:
			sig++
		case v < -tol:
			sig--
		default:
			return 0, formsErrorf("SignatureFloat", ErrArithmetic, "eigenvalue %g is numerically zero", v)
		}
	}
	return sig, nil
}

// String returns "rank r, signature s, even|odd", with the signature
// replaced by "singular" for a degenerate form.
func (f *Form) String() string {
	sig := "singular"
	if s, err := f.Signature(); err == nil {
		sig = fmt.Sprint(s)
	}
	return fmt.Sprintf("rank %d, signature %s, %s", f.Rank(), sig, f.Type())
}
