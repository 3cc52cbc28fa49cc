// Package native converts one- and two-qubit unitaries into operations
// over a hardware-native gate vocabulary.
//
// MatrixToOperations wraps a caller's matrix in a gate, applies it to the
// target qubits and hands it to a Converter. SycamoreGateset emits PhasedXZ
// single-qubit gates and Sycamore entanglers. CZGateset emits CZ entanglers
// instead. Both append a GlobalPhaseGate so the product matches the input
// exactly.
//
//	q0, q1 := native.GridQubit(0, 0), native.GridQubit(0, 1)
//	res, err := native.MatrixToOperations([]native.Qubit{q0, q1}, m, native.NewSycamoreGateset())
package native
