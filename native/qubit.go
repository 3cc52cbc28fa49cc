package native

import "fmt"

// Qubit is a qubit addressed by its position on the processor grid.
type Qubit struct {
	Row int
	Col int
}

// GridQubit returns the qubit at (row, col).
func GridQubit(row, col int) Qubit {
	return Qubit{Row: row, Col: col}
}

func (q Qubit) String() string {
	return fmt.Sprintf("q(%d, %d)", q.Row, q.Col)
}
