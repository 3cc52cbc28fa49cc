package native

import (
	"math"
	"math/cmplx"
)

// tiny is the magnitude below which a matrix entry is treated as zero
// during elimination.
const tiny = 1e-12

// rawOp is an intermediate step of a synthesis: a CZ or a Sycamore gate
// between the two targets, or a 2×2 matrix on target q.
type rawOp struct {
	cz  bool
	syc bool
	q   int
	m   Matrix
}

func single(q int, m Matrix) rawOp { return rawOp{q: q, m: m} }

var (
	pauliX   = Matrix{{0, 1}, {1, 0}}
	hadamard = Matrix{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}
)

func rz(theta float64) Matrix {
	return Diagonal(cmplx.Exp(complex(0, -theta/2)), cmplx.Exp(complex(0, theta/2)))
}

func ry(theta float64) Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Matrix{{c, -s}, {s, c}}
}

// expX returns exp(-iθX).
func expX(theta float64) Matrix {
	c := complex(math.Cos(theta), 0)
	s := complex(0, -math.Sin(theta))
	return Matrix{{c, s}, {s, c}}
}

// expZ returns exp(-iθZ).
func expZ(theta float64) Matrix {
	return Diagonal(cmplx.Exp(complex(0, -theta)), cmplx.Exp(complex(0, theta)))
}

// phaseGate returns diag(1, e^{iθ}).
func phaseGate(theta float64) Matrix {
	return Diagonal(1, cmplx.Exp(complex(0, theta)))
}

// zyz splits a 2×2 unitary into u = phase · Rz(phi) · Ry(theta) · Rz(lambda)
// with theta in [0, π].
func zyz(u Matrix) (phase complex128, phi, theta, lambda float64) {
	det := u[0][0]*u[1][1] - u[0][1]*u[1][0]
	root := cmplx.Sqrt(det)
	if cmplx.Abs(root) < tiny {
		root = 1
	}
	// u/root = [[a, -b*], [b, a*]]
	a := u[0][0] / root
	b := u[1][0] / root

	theta = 2 * math.Atan2(cmplx.Abs(b), cmplx.Abs(a))
	phi = cmplx.Phase(b) - cmplx.Phase(a)
	lambda = -cmplx.Phase(a) - cmplx.Phase(b)
	phase = root / complex(cmplx.Abs(root), 0)
	return phase, phi, theta, lambda
}

// phasedXZ returns the PhasedXZ gate equal to u up to global phase.
func phasedXZ(u Matrix) PhasedXZGate {
	_, phi, theta, lambda := zyz(u)
	return PhasedXZGate{
		X: theta / math.Pi,
		Z: wrapHalfTurns((phi + lambda) / math.Pi),
		A: wrapHalfTurns(0.5 - lambda/math.Pi),
	}
}

// wrapHalfTurns maps a Z exponent into [-1, 1]; Z^t has period 2.
func wrapHalfTurns(t float64) float64 {
	t = math.Remainder(t, 2)
	if t == -1 {
		t = 1
	}
	if math.Abs(t) < tiny {
		t = 0
	}
	return t
}

// cnot emits a CNOT onto target, controlled by the other qubit, as H·CZ·H.
func cnot(target int) []rawOp {
	return []rawOp{single(target, hadamard), {cz: true}, single(target, hadamard)}
}

// controlled emits a gate applying u to target when ctrl is in state
// value, as A·X·B·X·C on the target with a phase correction on the control.
func controlled(ctrl, target, value int, u Matrix) []rawOp {
	phase, phi, theta, lambda := zyz(u)
	a := rz(phi).Mul(ry(theta / 2))
	b := ry(-theta / 2).Mul(rz(-(lambda + phi) / 2))
	c := rz((lambda - phi) / 2)

	var ops []rawOp
	if value == 0 {
		ops = append(ops, single(ctrl, pauliX))
	}
	ops = append(ops, single(target, c))
	ops = append(ops, cnot(target)...)
	ops = append(ops, single(target, b))
	ops = append(ops, cnot(target)...)
	ops = append(ops, single(target, a))
	ops = append(ops, single(ctrl, Diagonal(1, phase)))
	if value == 0 {
		ops = append(ops, single(ctrl, pauliX))
	}
	return ops
}

// grayOrder lists the two-qubit basis states so that neighbours differ in
// one bit: 00, 01, 11, 10.
var grayOrder = [4]int{0, 1, 3, 2}

type givens struct {
	pos int // rotation acts on Gray positions pos and pos+1
	g   Matrix
}

// twoLevel emits the two-level unitary m acting on Gray positions pos and
// pos+1 as a controlled single-qubit gate.
func twoLevel(pos int, m Matrix, tol float64) []rawOp {
	if m.AllClose(Identity(2), tol) {
		return nil
	}
	switch pos {
	case 0: // 00, 01: q1 flips while q0 is 0
		return controlled(0, 1, 0, m)
	case 1: // 01, 11: q0 flips while q1 is 1
		return controlled(1, 0, 1, m)
	default: // 11, 10: q1 flips while q0 is 1, basis order reversed
		return controlled(0, 1, 1, Matrix{
			{m[1][1], m[1][0]},
			{m[0][1], m[0][0]},
		})
	}
}

// twoQubit synthesises a 4×4 unitary from single-qubit matrices and CZs.
// Product unitaries need no CZ. Otherwise Givens rotations between
// Gray-adjacent basis states reduce u to a diagonal; each rotation becomes
// one controlled gate.
func twoQubit(u Matrix, tol float64) []rawOp {
	if a, b, ok := splitProduct(u, tol); ok {
		return []rawOp{single(0, a), single(1, b)}
	}

	v := NewMatrix(4)
	for i := range 4 {
		for j := range 4 {
			v[i][j] = u[grayOrder[i]][grayOrder[j]]
		}
	}

	var rots []givens
	for c := 0; c < 3; c++ {
		for r := 3; r > c; r-- {
			a, b := v[r-1][c], v[r][c]
			if cmplx.Abs(b) < tiny {
				continue
			}
			n := complex(math.Hypot(cmplx.Abs(a), cmplx.Abs(b)), 0)
			g := Matrix{
				{cmplx.Conj(a) / n, cmplx.Conj(b) / n},
				{-b / n, a / n},
			}
			for j := range 4 {
				x, y := v[r-1][j], v[r][j]
				v[r-1][j] = g[0][0]*x + g[0][1]*y
				v[r][j] = g[1][0]*x + g[1][1]*y
			}
			rots = append(rots, givens{pos: r - 1, g: g})
		}
	}

	// u = G1† · G2† ⋯ Gk† · D, so D runs first and G1† last.
	var d [4]float64
	for i := range 4 {
		d[grayOrder[i]] = cmplx.Phase(v[i][i])
	}
	ops := []rawOp{
		single(0, phaseGate(d[2]-d[0])),
		single(1, phaseGate(d[1]-d[0])),
	}
	if k := d[3] - d[2] - d[1] + d[0]; math.Abs(math.Remainder(k, 2*math.Pi)) > tol {
		ops = append(ops, controlled(0, 1, 1, phaseGate(k))...)
	}
	for i := len(rots) - 1; i >= 0; i-- {
		ops = append(ops, twoLevel(rots[i].pos, rots[i].g.Dagger(), tol)...)
	}
	return ops
}

// splitProduct factors u as a⊗b when it acts on the two qubits
// independently.
func splitProduct(u Matrix, tol float64) (a, b Matrix, ok bool) {
	block := func(i, j int) Matrix {
		return Matrix{
			{u[2*i][2*j], u[2*i][2*j+1]},
			{u[2*i+1][2*j], u[2*i+1][2*j+1]},
		}
	}
	norm := func(m Matrix) float64 {
		s := 0.0
		for _, row := range m {
			for _, x := range row {
				s += real(x)*real(x) + imag(x)*imag(x)
			}
		}
		return math.Sqrt(s)
	}

	// Block (i, j) of a⊗b is a[i][j]·b; the heaviest block fixes b.
	bi, bj, best := 0, 0, 0.0
	for i := range 2 {
		for j := range 2 {
			if n := norm(block(i, j)); n > best {
				bi, bj, best = i, j, n
			}
		}
	}
	if best < tiny {
		return nil, nil, false
	}
	b = block(bi, bj).Scale(complex(math.Sqrt2/best, 0))

	a = NewMatrix(2)
	for i := range 2 {
		for j := range 2 {
			blk := block(i, j)
			var tr complex128
			for k := range 2 {
				for l := range 2 {
					tr += cmplx.Conj(b[k][l]) * blk[k][l]
				}
			}
			a[i][j] = tr / 2
		}
	}
	if !a.Kron(b).AllClose(u, tol) {
		return nil, nil, false
	}
	return a, b, true
}

// sycamoreCZ holds the single-qubit layers that turn two Sycamore gates
// into a CZ up to global phase: pre, SYC, mid, SYC, post.
var sycamoreCZ = buildSycamoreCZ()

type czLayers struct {
	pre, mid, post [2]Matrix
}

// buildSycamoreCZ derives the layers from SYC = e^{-iπ/24}·Lz·N with
// Lz = exp(iπ/24·(Z⊗I + I⊗Z)) and N = exp(-i(π/4·(XX+YY) + π/24·ZZ)).
//
// X rotations commute with XX, so N·L·N = -i·XX·E·L·E where E is the YY
// and ZZ part of N. On each eigenspace s = ±1 of XX, ZZ and X⊗I act as
// Pauli σz and σx, I⊗X acts as s·σx, and E = exp(-iγσz) with
// γ = π/24 - s·π/4.
// L = exp(-iδσx) is chosen per eigenspace so that exp(-iγσz)·L·exp(-iγσz)
// equals R·exp(iπ/4·σz)·R for an X rotation R, which makes N·L·N a CZ up
// to the local layers below.
func buildSycamoreCZ() czLayers {
	const (
		xy = math.Pi / 4  // XX and YY weight of SYC
		zz = math.Pi / 24 // ZZ weight of SYC
	)
	gp, gm := zz-xy, zz+xy
	dp := math.Acos(1 / (math.Sqrt2 * math.Abs(math.Sin(2*gp))))
	dm := math.Pi - dp

	// exp(-iγσz)·exp(-iδσx)·exp(-iγσz) = R·exp(-iμσz)·R with
	// R = exp(-iρσx); ρ is read off the symmetric middle entry.
	rho := func(gamma, delta float64) float64 {
		c, s := math.Cos(gamma), math.Sin(gamma)
		m00 := complex(c*c, 0)*cmplx.Exp(complex(0, -delta)) - complex(s*s, 0)*cmplx.Exp(complex(0, delta))
		return -cmplx.Phase(m00) / 2
	}
	rp, rm := rho(gp, dp), rho(gm, dm)

	// exp(-i(p·X⊗I + q·I⊗X)) acts as exp(-i(p + s·q)σx) on eigenspace s.
	p, q := (rp+rm)/2, (rp-rm)/2
	alpha, beta := (dp+dm)/2, (dp-dm)/2

	lz := expZ(zz) // inverse of the Lz factor on one qubit
	s := Diagonal(1, 1i)
	return czLayers{
		pre:  [2]Matrix{expX(-p).Mul(s), expX(-q).Mul(s)},
		mid:  [2]Matrix{expX(alpha).Mul(lz), expX(beta).Mul(lz)},
		post: [2]Matrix{expX(-p).Mul(pauliX).Mul(lz), expX(-q).Mul(pauliX).Mul(lz)},
	}
}

// czToSycamore replaces each CZ in raw with two Sycamore gates.
func czToSycamore(raw []rawOp) []rawOp {
	var out []rawOp
	for _, r := range raw {
		if !r.cz {
			out = append(out, r)
			continue
		}
		l := sycamoreCZ
		out = append(out,
			single(0, l.pre[0]), single(1, l.pre[1]),
			rawOp{syc: true},
			single(0, l.mid[0]), single(1, l.mid[1]),
			rawOp{syc: true},
			single(0, l.post[0]), single(1, l.post[1]),
		)
	}
	return out
}

// merge folds runs of single-qubit matrices into one PhasedXZ per qubit,
// dropping those within tol of the identity up to phase.
func merge(raw []rawOp, qubits []Qubit, tol float64) []Operation {
	var (
		ops     []Operation
		pending = make([]Matrix, len(qubits))
	)
	flush := func(q int) {
		if pending[q] == nil {
			return
		}
		if !pending[q].IsIdentityUpToPhase(tol) {
			ops = append(ops, On(phasedXZ(pending[q]), qubits[q]))
		}
		pending[q] = nil
	}
	for _, r := range raw {
		if r.cz || r.syc {
			flush(0)
			flush(1)
			var g Gate = CZGate{}
			if r.syc {
				g = SycamoreGate{}
			}
			ops = append(ops, On(g, qubits[0], qubits[1]))
			continue
		}
		if pending[r.q] == nil {
			pending[r.q] = r.m
		} else {
			pending[r.q] = r.m.Mul(pending[r.q])
		}
	}
	for q := range qubits {
		flush(q)
	}
	return ops
}
