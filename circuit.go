package main

import (
	"math"
	"math/cmplx"
	"slices"

	"qtermsyc/native"
)

// Gate is an operation placed on the circuit grid.
type Gate struct {
	Type    string // "PhXZ", "CZ", "SYC", or the label of a non-native gate
	Target  int
	Control int       // -1 if not a two-qubit gate
	Step    int       // moment index
	Params  []float64 // x, z, a exponents for PhXZ
	Op      native.Operation
}

// Circuit holds a converted operation sequence laid out in moments.
type Circuit struct {
	Qubits   []native.Qubit
	Gates    []Gate
	MaxSteps int
	// GlobalPhase is the product of all global phase operations.
	GlobalPhase complex128
}

// newCircuit lays ops out on a grid with one wire per qubit. Ops on qubits
// missing from qubits get a wire appended after them.
func newCircuit(ops []native.Operation, qubits []native.Qubit) Circuit {
	c := Circuit{Qubits: slices.Clone(qubits), GlobalPhase: 1}
	wire := func(q native.Qubit) int {
		i := slices.Index(c.Qubits, q)
		if i < 0 {
			c.Qubits = append(c.Qubits, q)
			i = len(c.Qubits) - 1
		}
		return i
	}

	for step, moment := range native.Moments(ops) {
		for _, op := range moment {
			if gp, ok := op.Gate.(native.GlobalPhaseGate); ok {
				c.GlobalPhase *= gp.Coefficient
				continue
			}
			if len(op.Qubits) == 0 {
				continue
			}
			g := Gate{Type: op.Gate.String(), Target: wire(op.Qubits[0]), Control: -1, Step: step, Op: op}
			switch gate := op.Gate.(type) {
			case native.PhasedXZGate:
				g.Type = "PhXZ"
				g.Params = []float64{gate.X, gate.Z, gate.A}
			case native.CZGate, native.SycamoreGate:
				g.Control = g.Target
				g.Target = wire(op.Qubits[1])
			default:
				if len(op.Qubits) == 2 {
					g.Control = g.Target
					g.Target = wire(op.Qubits[1])
				}
			}
			c.Gates = append(c.Gates, g)
			c.MaxSteps = max(c.MaxSteps, step+1)
		}
	}
	return c
}

// NumQubits returns the number of wires.
func (c *Circuit) NumQubits() int {
	return len(c.Qubits)
}

// GlobalPhaseTurns returns the global phase angle in half turns.
func (c *Circuit) GlobalPhaseTurns() float64 {
	t := cmplx.Phase(c.GlobalPhase) / math.Pi
	if math.Abs(t) < 1e-12 {
		return 0
	}
	return t
}

// gateReferences reports whether the gate references the given qubit.
func (g Gate) gateReferences(qubit int) bool {
	return g.Target == qubit || g.Control == qubit
}

// GetGateAt returns the gate at the given step and qubit, or nil.
func (c *Circuit) GetGateAt(step, qubit int) *Gate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.gateReferences(qubit) {
			return g
		}
	}
	return nil
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *Gate
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

// getCellInfo returns rendering information for the cell at (step, qubit).
func (c *Circuit) getCellInfo(step, qubit int) cellInfo {
	var info cellInfo

	gate := c.GetGateAt(step, qubit)
	if gate != nil {
		info.gate = gate
		info.isControl = gate.Control == qubit
		info.isTarget = gate.Target == qubit && gate.Control >= 0
	}

	// Vertical connections for two-qubit gates
	for _, g := range c.Gates {
		if g.Step != step || g.Control < 0 {
			continue
		}
		minQ, maxQ := min(g.Control, g.Target), max(g.Control, g.Target)
		if qubit >= minQ && qubit <= maxQ {
			if qubit > minQ {
				info.vertAbove = true
			}
			if qubit < maxQ {
				info.vertBelow = true
			}
			if qubit > minQ && qubit < maxQ && info.gate == nil {
				info.passThrough = true
			}
		}
	}

	return info
}
