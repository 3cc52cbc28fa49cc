package native

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// MatrixGateLabel is the display label of wrapped caller matrices.
const MatrixGateLabel = "ζ"

// Gate is a quantum gate with a known unitary.
type Gate interface {
	// NumQubits is the number of qubits the gate acts on.
	NumQubits() int
	// Unitary returns the 2^n × 2^n matrix the gate implements.
	Unitary() Matrix
	String() string
}

// Operation is a gate applied to an ordered list of qubits. The first
// qubit is the most significant bit of the gate's matrix index.
type Operation struct {
	Gate   Gate
	Qubits []Qubit
}

// On applies g to qubits.
func On(g Gate, qubits ...Qubit) Operation {
	return Operation{Gate: g, Qubits: qubits}
}

func (op Operation) String() string {
	names := make([]string, len(op.Qubits))
	for i, q := range op.Qubits {
		names[i] = q.String()
	}
	return fmt.Sprintf("%s(%s)", op.Gate, strings.Join(names, ", "))
}

// SingleQubitMatrixGate wraps a 2×2 unitary as a one-qubit gate.
type SingleQubitMatrixGate struct {
	Matrix Matrix
}

func (SingleQubitMatrixGate) NumQubits() int    { return 1 }
func (g SingleQubitMatrixGate) Unitary() Matrix { return g.Matrix }
func (SingleQubitMatrixGate) String() string    { return MatrixGateLabel }

// TwoQubitMatrixGate wraps a 4×4 unitary as a two-qubit gate.
type TwoQubitMatrixGate struct {
	Matrix Matrix
}

func (TwoQubitMatrixGate) NumQubits() int    { return 2 }
func (g TwoQubitMatrixGate) Unitary() Matrix { return g.Matrix }
func (TwoQubitMatrixGate) String() string    { return MatrixGateLabel }

// PhasedXZGate is the native single-qubit gate Z^z · Z^a · X^x · Z^-a.
// Exponents are in half turns.
type PhasedXZGate struct {
	X float64 // x exponent
	Z float64 // z exponent
	A float64 // axis phase exponent
}

func (PhasedXZGate) NumQubits() int { return 1 }

func (g PhasedXZGate) Unitary() Matrix {
	return zPow(g.Z).Mul(zPow(g.A)).Mul(xPow(g.X)).Mul(zPow(-g.A))
}

func (g PhasedXZGate) String() string {
	return fmt.Sprintf("PhXZ(a=%.4g,x=%.4g,z=%.4g)", g.A, g.X, g.Z)
}

// CZGate is the native two-qubit entangler diag(1, 1, 1, -1).
type CZGate struct{}

func (CZGate) NumQubits() int  { return 2 }
func (CZGate) Unitary() Matrix { return Diagonal(1, 1, 1, -1) }
func (CZGate) String() string  { return "CZ" }

// GlobalPhaseGate multiplies the state by a unit coefficient. It acts on
// no qubits.
type GlobalPhaseGate struct {
	Coefficient complex128
}

func (GlobalPhaseGate) NumQubits() int { return 0 }

func (g GlobalPhaseGate) Unitary() Matrix {
	return Matrix{{g.Coefficient}}
}

func (g GlobalPhaseGate) String() string {
	return fmt.Sprintf("GlobalPhase(%.4gπ)", cmplx.Phase(g.Coefficient)/math.Pi)
}

// SycamoreGate is the Sycamore entangler FSim(π/2, π/6): it swaps |01⟩ and
// |10⟩ with a -i phase and puts e^{-iπ/6} on |11⟩.
type SycamoreGate struct{}

func (SycamoreGate) NumQubits() int { return 2 }

func (SycamoreGate) Unitary() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 0, -1i, 0},
		{0, -1i, 0, 0},
		{0, 0, 0, cmplx.Exp(complex(0, -math.Pi/6))},
	}
}

func (SycamoreGate) String() string { return "SYC" }

// IsNative reports whether g is one of the hardware gates the package
// emits. Each gate set passes through only its own subset; see Native on
// CZGateset and SycamoreGateset.
func IsNative(g Gate) bool {
	switch g.(type) {
	case PhasedXZGate, CZGate, SycamoreGate, GlobalPhaseGate:
		return true
	}
	return false
}

// zPow returns diag(1, e^{iπt}).
func zPow(t float64) Matrix {
	return Diagonal(1, cmplx.Exp(complex(0, math.Pi*t)))
}

// xPow returns X^t = e^{iπt/2}·Rx(πt).
func xPow(t float64) Matrix {
	g := cmplx.Exp(complex(0, math.Pi*t/2))
	c := complex(math.Cos(math.Pi*t/2), 0)
	s := complex(0, -math.Sin(math.Pi*t/2))
	return Matrix{
		{g * c, g * s},
		{g * s, g * c},
	}
}
