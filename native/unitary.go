package native

import (
	"fmt"
	"slices"
)

// Unitary returns the matrix implemented by ops in time order, in the
// basis defined by qubits (qubits[0] is the most significant bit).
func Unitary(ops []Operation, qubits []Qubit) (Matrix, error) {
	n := len(qubits)
	u := Identity(1 << n)
	for _, op := range ops {
		f, err := embed(op, qubits)
		if err != nil {
			return nil, err
		}
		u = f.Mul(u)
	}
	return u, nil
}

// embed lifts op's gate matrix into the full 2^n space.
func embed(op Operation, qubits []Qubit) (Matrix, error) {
	n := len(qubits)
	dim := 1 << n
	g := op.Gate.Unitary()
	k := len(op.Qubits)
	if g.Dim() != 1<<k {
		return nil, fmt.Errorf("%w: %s has %d qubits for a %d×%d unitary", ErrUnsupportedGate, op.Gate, k, len(g), len(g))
	}

	bits := make([]int, k)
	mask := 0
	for m, q := range op.Qubits {
		p := slices.Index(qubits, q)
		if p < 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownQubit, q)
		}
		bits[m] = 1 << (n - 1 - p)
		mask |= bits[m]
	}

	sub := func(i int) int {
		s := 0
		for m, bit := range bits {
			if i&bit != 0 {
				s |= 1 << (k - 1 - m)
			}
		}
		return s
	}

	f := NewMatrix(dim)
	for i := range dim {
		for j := range dim {
			if i&^mask != j&^mask {
				continue
			}
			f[i][j] = g[sub(i)][sub(j)]
		}
	}
	return f, nil
}
