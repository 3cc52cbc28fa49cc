package native

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"strings"
)

// Matrix is a dense square complex matrix stored row-major.
type Matrix [][]complex128

// NewMatrix returns an n×n zero matrix.
func NewMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]complex128, n)
	}
	return m
}

// Identity returns the n×n identity.
func Identity(n int) Matrix {
	m := NewMatrix(n)
	for i := range n {
		m[i][i] = 1
	}
	return m
}

// Diagonal returns the matrix with d on its diagonal.
func Diagonal(d ...complex128) Matrix {
	m := NewMatrix(len(d))
	for i, v := range d {
		m[i][i] = v
	}
	return m
}

// Dim returns the dimension of a square matrix, or -1 if m is empty or
// not square.
func (m Matrix) Dim() int {
	n := len(m)
	if n == 0 {
		return -1
	}
	for _, row := range m {
		if len(row) != n {
			return -1
		}
	}
	return n
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]complex128(nil), row...)
	}
	return out
}

// Mul returns m·o. Both must have the same dimension.
func (m Matrix) Mul(o Matrix) Matrix {
	n := len(m)
	out := NewMatrix(n)
	for i := range n {
		for k := range n {
			if m[i][k] == 0 {
				continue
			}
			for j := range n {
				out[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return out
}

// Scale returns c·m.
func (m Matrix) Scale(c complex128) Matrix {
	out := m.Clone()
	for i := range out {
		for j := range out[i] {
			out[i][j] *= c
		}
	}
	return out
}

// Dagger returns the conjugate transpose of m.
func (m Matrix) Dagger() Matrix {
	n := len(m)
	out := NewMatrix(n)
	for i := range n {
		for j := range n {
			out[j][i] = cmplx.Conj(m[i][j])
		}
	}
	return out
}

// Kron returns the Kronecker product m⊗o.
func (m Matrix) Kron(o Matrix) Matrix {
	a, b := len(m), len(o)
	out := NewMatrix(a * b)
	for i := range a {
		for j := range a {
			for k := range b {
				for l := range b {
					out[i*b+k][j*b+l] = m[i][j] * o[k][l]
				}
			}
		}
	}
	return out
}

// AllClose reports whether every entry of m is within tol of o.
func (m Matrix) AllClose(o Matrix, tol float64) bool {
	if m.Dim() != o.Dim() {
		return false
	}
	for i := range m {
		for j := range m[i] {
			if cmplx.Abs(m[i][j]-o[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// MaxDiff returns the largest entrywise distance between m and o.
func (m Matrix) MaxDiff(o Matrix) float64 {
	if m.Dim() != o.Dim() {
		return math.Inf(1)
	}
	d := 0.0
	for i := range m {
		for j := range m[i] {
			d = max(d, cmplx.Abs(m[i][j]-o[i][j]))
		}
	}
	return d
}

// IsUnitary reports whether m·m† is the identity within tol.
func (m Matrix) IsUnitary(tol float64) bool {
	n := m.Dim()
	if n < 0 {
		return false
	}
	return m.Mul(m.Dagger()).AllClose(Identity(n), tol)
}

// PhaseTo returns the unit-modulus c for which c·m best matches o, taken
// at the largest entry of m. It returns 1 when m is zero.
func (m Matrix) PhaseTo(o Matrix) complex128 {
	bi, bj, best := 0, 0, 0.0
	for i := range m {
		for j := range m[i] {
			if a := cmplx.Abs(m[i][j]); a > best {
				bi, bj, best = i, j, a
			}
		}
	}
	if best == 0 {
		return 1
	}
	c := o[bi][bj] / m[bi][bj]
	if a := cmplx.Abs(c); a > 0 {
		c /= complex(a, 0)
	}
	return c
}

// EqualUpToGlobalPhase reports whether m equals c·o for some unit c.
func (m Matrix) EqualUpToGlobalPhase(o Matrix, tol float64) bool {
	if m.Dim() != o.Dim() {
		return false
	}
	return o.Scale(o.PhaseTo(m)).AllClose(m, tol)
}

// IsIdentityUpToPhase reports whether m is a scalar multiple of the
// identity within tol.
func (m Matrix) IsIdentityUpToPhase(tol float64) bool {
	n := m.Dim()
	return n > 0 && m.EqualUpToGlobalPhase(Identity(n), tol)
}

func (m Matrix) String() string {
	var sb strings.Builder
	for i, row := range m {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, v := range row {
			if j > 0 {
				sb.WriteString("  ")
			}
			fmt.Fprintf(&sb, "%+.4f%+.4fi", real(v), imag(v))
		}
	}
	return sb.String()
}

// RandomUnitary returns an n×n unitary obtained by Gram-Schmidt
// orthonormalisation of a complex Gaussian matrix.
func RandomUnitary(rng *rand.Rand, n int) Matrix {
	cols := make([][]complex128, n)
	for j := range n {
		for {
			v := make([]complex128, n)
			for i := range n {
				v[i] = complex(rng.NormFloat64(), rng.NormFloat64())
			}
			for _, q := range cols[:j] {
				var dot complex128
				for i := range n {
					dot += cmplx.Conj(q[i]) * v[i]
				}
				for i := range n {
					v[i] -= dot * q[i]
				}
			}
			norm := 0.0
			for i := range n {
				norm += real(v[i] * cmplx.Conj(v[i]))
			}
			norm = math.Sqrt(norm)
			if norm < 1e-8 {
				continue
			}
			for i := range n {
				v[i] /= complex(norm, 0)
			}
			cols[j] = v
			break
		}
	}
	m := NewMatrix(n)
	for i := range n {
		for j := range n {
			m[i][j] = cols[j][i]
		}
	}
	return m
}
