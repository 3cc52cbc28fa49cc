package native

import "fmt"

// Converter rewrites an operation into an equivalent sequence restricted to
// a hardware-native gate vocabulary.
type Converter interface {
	Convert(op Operation) ([]Operation, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(op Operation) ([]Operation, error)

func (f ConverterFunc) Convert(op Operation) ([]Operation, error) { return f(op) }

// Result is the output of MatrixToOperations.
type Result struct {
	Operations []Operation
	// Ancillas lists qubits allocated besides the targets. No ancillas are
	// ever allocated, so it is always empty.
	Ancillas []Qubit
}

// MatrixToOperations returns operations on targets that implement m, as
// produced by conv. The order of targets fixes the basis: targets[0] is
// the most significant bit of the matrix index.
//
// m must be 2×2 (one target) or 4×4 (two targets); any other shape yields
// ErrUnsupportedSize. m is assumed unitary and is passed to conv as is.
func MatrixToOperations(targets []Qubit, m Matrix, conv Converter) (Result, error) {
	if conv == nil {
		return Result{}, ErrNoConverter
	}

	var op Operation
	switch dim := m.Dim(); dim {
	case 4:
		if len(targets) != 2 {
			return Result{}, fmt.Errorf("%w: 4×4 matrix needs 2 qubits, got %d", ErrQubitCount, len(targets))
		}
		if targets[0] == targets[1] {
			return Result{}, fmt.Errorf("%w: repeated qubit %s", ErrQubitCount, targets[0])
		}
		op = On(TwoQubitMatrixGate{Matrix: m}, targets[0], targets[1])
	case 2:
		if len(targets) != 1 {
			return Result{}, fmt.Errorf("%w: 2×2 matrix needs 1 qubit, got %d", ErrQubitCount, len(targets))
		}
		op = On(SingleQubitMatrixGate{Matrix: m}, targets[0])
	default:
		return Result{}, fmt.Errorf("%w: %d×%d", ErrUnsupportedSize, len(m), rowLen(m))
	}

	ops, err := conv.Convert(op)
	if err != nil {
		return Result{}, fmt.Errorf("convert %s: %w", op, err)
	}
	return Result{Operations: ops, Ancillas: []Qubit{}}, nil
}

func rowLen(m Matrix) int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}
