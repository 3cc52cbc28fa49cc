package main

import (
	"fmt"
	"io"
	"math"
	"math/cmplx"

	"gopkg.in/yaml.v3"

	"qtermsyc/native"
)

// Output formats accepted by the convert command.
var validFormats = []string{"text", "qasm", "yaml"}

// Gate sets accepted by --gateset. The first is the default.
var validGatesets = []string{"sycamore", "cz"}

// newGateset returns the converter for a gate set name.
func newGateset(name string, opts ...native.Option) (native.Converter, error) {
	switch name {
	case "sycamore":
		return native.NewSycamoreGateset(opts...), nil
	case "cz":
		return native.NewCZGateset(opts...), nil
	}
	return nil, fmt.Errorf("unknown gate set %q: must be one of %v", name, validGatesets)
}

// conversion is a converted matrix together with what the views show.
type conversion struct {
	Targets []native.Qubit
	Input   native.Matrix
	Result  native.Result
	// Error is the largest entry-wise difference between the unitary of
	// the operations and the input, up to global phase.
	Error float64
	QASM  string
}

// convert runs MatrixToOperations and scores the reconstruction.
func convert(targets []native.Qubit, m native.Matrix, conv native.Converter) (conversion, error) {
	res, err := native.MatrixToOperations(targets, m, conv)
	if err != nil {
		return conversion{}, err
	}
	u, err := native.Unitary(res.Operations, targets)
	if err != nil {
		return conversion{}, err
	}
	qasm, err := native.ToQASM(res.Operations, targets)
	if err != nil {
		return conversion{}, err
	}
	return conversion{
		Targets: targets,
		Input:   m,
		Result:  res,
		Error:   u.Scale(u.PhaseTo(m)).MaxDiff(m),
		QASM:    qasm,
	}, nil
}

// writeOutput writes c to w in the given format.
func writeOutput(w io.Writer, format string, c conversion) error {
	switch format {
	case "qasm":
		_, err := io.WriteString(w, c.QASM)
		return err
	case "yaml":
		return writeYAML(w, c)
	default:
		return writeText(w, c)
	}
}

// writeText writes the circuit diagram, one line per operation and a summary.
func writeText(w io.Writer, c conversion) error {
	circ := newCircuit(c.Result.Operations, c.Targets)
	if _, err := io.WriteString(w, renderDiagram(&circ)); err != nil {
		return err
	}
	for _, op := range c.Result.Operations {
		if _, err := fmt.Fprintf(w, "  %s\n", op); err != nil {
			return err
		}
	}
	ops := c.Result.Operations
	_, err := fmt.Fprintf(w, "ops: %d  syc: %d  cz: %d  ancillas: %d  error: %.3g\n",
		len(ops), native.CountSycamore(ops), native.CountCZ(ops), len(c.Result.Ancillas), c.Error)
	return err
}

// yamlReport is the YAML form of a conversion.
type yamlReport struct {
	Qubits     []string        `yaml:"qubits"`
	Operations []yamlOperation `yaml:"operations"`
	Ancillas   []string        `yaml:"ancillas"`
	SYCCount   int             `yaml:"syc_count"`
	CZCount    int             `yaml:"cz_count"`
	Error      float64         `yaml:"error"`
}

// yamlOperation is one operation; exponents are in half turns.
type yamlOperation struct {
	Gate   string   `yaml:"gate"`
	Qubits []string `yaml:"qubits,flow,omitempty"`
	X      *float64 `yaml:"x,omitempty"`
	Z      *float64 `yaml:"z,omitempty"`
	A      *float64 `yaml:"a,omitempty"`
	Phase  *float64 `yaml:"phase,omitempty"`
}

func writeYAML(w io.Writer, c conversion) error {
	report := yamlReport{
		Qubits:     qubitNames(c.Targets),
		Operations: make([]yamlOperation, 0, len(c.Result.Operations)),
		Ancillas:   qubitNames(c.Result.Ancillas),
		SYCCount:   native.CountSycamore(c.Result.Operations),
		CZCount:    native.CountCZ(c.Result.Operations),
		Error:      c.Error,
	}
	for _, op := range c.Result.Operations {
		yop := yamlOperation{Gate: op.Gate.String(), Qubits: qubitNames(op.Qubits)}
		switch g := op.Gate.(type) {
		case native.PhasedXZGate:
			yop.Gate = "phased_xz"
			yop.X, yop.Z, yop.A = &g.X, &g.Z, &g.A
		case native.CZGate:
			yop.Gate = "cz"
		case native.SycamoreGate:
			yop.Gate = "syc"
		case native.GlobalPhaseGate:
			yop.Gate = "global_phase"
			turns := cmplx.Phase(g.Coefficient) / math.Pi
			yop.Phase = &turns
		}
		report.Operations = append(report.Operations, yop)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func qubitNames(qs []native.Qubit) []string {
	names := make([]string, len(qs))
	for i, q := range qs {
		names[i] = q.String()
	}
	return names
}
