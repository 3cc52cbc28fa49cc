package native

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"
	"strings"
)

// ToQASM renders ops as OpenQASM 2.0 over a register ordered like qubits.
// PhasedXZ becomes rz·rx·rz and SYC an opaque syc gate. qelib1's rz and rx
// differ from Z^t and X^t by a phase; that phase and any GlobalPhaseGate,
// which QASM cannot express, are summed into a closing comment so the
// program times e^{i·phase} equals ops.
func ToQASM(ops []Operation, qubits []Qubit) (string, error) {
	var (
		body    strings.Builder
		phase   float64
		usesSYC bool
	)
	for _, op := range ops {
		idx := make([]int, len(op.Qubits))
		for i, q := range op.Qubits {
			idx[i] = slices.Index(qubits, q)
			if idx[i] < 0 {
				return "", fmt.Errorf("%w: %s", ErrUnknownQubit, q)
			}
		}

		switch g := op.Gate.(type) {
		case PhasedXZGate:
			// Z^t = e^{iπt/2}·rz(πt), X^t = e^{iπt/2}·rx(πt).
			q := idx[0]
			phase += math.Pi * (g.X + g.Z) / 2
			phase += writeRotation(&body, "rz", -g.A*math.Pi, q)
			phase += writeRotation(&body, "rx", g.X*math.Pi, q)
			phase += writeRotation(&body, "rz", (g.A+g.Z)*math.Pi, q)
		case CZGate:
			fmt.Fprintf(&body, "cz q[%d], q[%d];\n", idx[0], idx[1])
		case SycamoreGate:
			usesSYC = true
			fmt.Fprintf(&body, "syc q[%d], q[%d];\n", idx[0], idx[1])
		case GlobalPhaseGate:
			phase += cmplx.Phase(g.Coefficient)
		default:
			regs := make([]string, len(idx))
			for i, q := range idx {
				regs[i] = fmt.Sprintf("q[%d]", q)
			}
			fmt.Fprintf(&body, "// unitary %s %s\n", g, strings.Join(regs, ", "))
		}
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	if usesSYC {
		sb.WriteString("// syc = fsim(pi/2, pi/6)\n")
		sb.WriteString("opaque syc a, b;\n\n")
	}
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", max(len(qubits), 1))
	sb.WriteString(body.String())
	if p := math.Remainder(phase, 2*math.Pi); math.Abs(p) > 1e-12 {
		fmt.Fprintf(&sb, "// global phase %s\n", formatAngle(p))
	}
	return sb.String(), nil
}

// writeRotation writes name(angle) on q with angle reduced into [-π, π].
// rz and rx have period 4π, so each 2π removed flips the sign; the
// returned phase restores it.
func writeRotation(sb *strings.Builder, name string, angle float64, q int) float64 {
	reduced := math.Remainder(angle, 2*math.Pi)
	turns := math.Round((angle - reduced) / (2 * math.Pi))
	if math.Abs(reduced) >= 1e-12 {
		fmt.Fprintf(sb, "%s(%s) q[%d];\n", name, formatAngle(reduced), q)
	}
	return math.Pi * turns
}

// formatAngle formats an angle in radians, using pi notation for common
// fractions of pi.
func formatAngle(val float64) string {
	type piForm struct {
		value   float64
		display string
	}
	piForms := []piForm{
		{2 * math.Pi, "2*pi"},
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 3, "pi/3"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 6, "pi/6"},
		{math.Pi / 8, "pi/8"},
		{3 * math.Pi / 4, "3*pi/4"},
		{3 * math.Pi / 2, "3*pi/2"},
		{2 * math.Pi / 3, "2*pi/3"},
	}

	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}

	return fmt.Sprintf("%g", val)
}
