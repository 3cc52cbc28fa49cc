package native

import "errors"

// Sentinel errors returned by the converter and its helpers.
var (
	// ErrUnsupportedSize is returned when a matrix is not square or its
	// dimension is neither 2 nor 4.
	ErrUnsupportedSize = errors.New("native: unsupported matrix size")

	// ErrQubitCount is returned when the target qubits don't match the
	// number of qubits the matrix acts on.
	ErrQubitCount = errors.New("native: target qubit count does not match matrix")

	// ErrNoConverter is returned when MatrixToOperations is called without
	// a gate-set converter.
	ErrNoConverter = errors.New("native: no converter")

	// ErrNotUnitary is returned by CZGateset when the unitary check is on
	// and the input matrix is not unitary within tolerance.
	ErrNotUnitary = errors.New("native: matrix is not unitary")

	// ErrUnsupportedGate is returned for gates the gate set cannot convert.
	ErrUnsupportedGate = errors.New("native: unsupported gate")

	// ErrDecomposition is returned when a synthesized circuit does not
	// reproduce its target unitary.
	ErrDecomposition = errors.New("native: decomposition mismatch")

	// ErrUnknownQubit is returned when an operation references a qubit
	// outside the qubit order passed to Unitary.
	ErrUnknownQubit = errors.New("native: operation on unknown qubit")
)
