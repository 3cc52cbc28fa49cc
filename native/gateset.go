package native

import (
	"fmt"
	"io"
	"math/cmplx"

	"github.com/charmbracelet/log"
)

// DefaultTolerance is the default tolerance for dropping near-identity
// gates and for the unitary check.
const DefaultTolerance = 1e-8

// verifyTolerance bounds the reconstruction error of a synthesized circuit.
const verifyTolerance = 1e-6

// config holds the settings shared by the gate sets.
type config struct {
	tolerance   float64
	globalPhase bool
	checkInput  bool
	logger      *log.Logger
}

// Option configures a gate set.
type Option func(*config)

// WithTolerance sets the tolerance used to drop near-identity gates.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.tolerance = tol
		}
	}
}

// WithGlobalPhase controls whether a GlobalPhaseGate is appended so the
// product equals the input exactly rather than up to phase. On by default.
func WithGlobalPhase(on bool) Option {
	return func(c *config) { c.globalPhase = on }
}

// WithUnitaryCheck controls whether inputs are checked for unitarity
// before synthesis. On by default.
func WithUnitaryCheck(on bool) Option {
	return func(c *config) { c.checkInput = on }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		tolerance:   DefaultTolerance,
		globalPhase: true,
		checkInput:  true,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Tolerance returns the configured tolerance.
func (c *config) Tolerance() float64 { return c.tolerance }

// SycamoreGateset converts one- and two-qubit operations into PhasedXZ
// gates and Sycamore entanglers. Each CZ the synthesis needs costs two
// SycamoreGates.
type SycamoreGateset struct {
	config
}

// NewSycamoreGateset returns a converter targeting the Sycamore gate set.
func NewSycamoreGateset(opts ...Option) *SycamoreGateset {
	return &SycamoreGateset{config: newConfig(opts)}
}

// Native reports whether gate passes through the converter unchanged.
func (g *SycamoreGateset) Native(gate Gate) bool {
	switch gate.(type) {
	case PhasedXZGate, SycamoreGate, GlobalPhaseGate:
		return true
	}
	return false
}

// Convert implements Converter.
func (g *SycamoreGateset) Convert(op Operation) ([]Operation, error) {
	if g.Native(op.Gate) {
		return []Operation{op}, nil
	}
	return g.synthesize(op, true)
}

// CZGateset converts one- and two-qubit operations into PhasedXZ gates
// and CZ entanglers.
type CZGateset struct {
	config
}

// NewCZGateset returns a converter targeting the CZ gate set.
func NewCZGateset(opts ...Option) *CZGateset {
	return &CZGateset{config: newConfig(opts)}
}

// Native reports whether gate passes through the converter unchanged.
func (g *CZGateset) Native(gate Gate) bool {
	switch gate.(type) {
	case PhasedXZGate, CZGate, GlobalPhaseGate:
		return true
	}
	return false
}

// Convert implements Converter.
func (g *CZGateset) Convert(op Operation) ([]Operation, error) {
	if g.Native(op.Gate) {
		return []Operation{op}, nil
	}
	return g.synthesize(op, false)
}

// synthesize decomposes op from its unitary and checks the result. With
// syc set, entanglers are Sycamore gates instead of CZs.
func (c *config) synthesize(op Operation, syc bool) ([]Operation, error) {
	k := op.Gate.NumQubits()
	if k != len(op.Qubits) {
		return nil, fmt.Errorf("%w: %s expects %d qubits, got %d", ErrUnsupportedGate, op.Gate, k, len(op.Qubits))
	}
	u := op.Gate.Unitary()
	if u.Dim() != 1<<k {
		return nil, fmt.Errorf("%w: %s has a %d×%d unitary", ErrUnsupportedGate, op.Gate, len(u), rowLen(u))
	}
	if c.checkInput && !u.IsUnitary(max(c.tolerance, verifyTolerance)) {
		return nil, ErrNotUnitary
	}

	var raw []rawOp
	switch k {
	case 1:
		raw = []rawOp{single(0, u)}
	case 2:
		if op.Qubits[0] == op.Qubits[1] {
			return nil, fmt.Errorf("%w: repeated qubit %s", ErrUnsupportedGate, op.Qubits[0])
		}
		switch {
		case syc && u.EqualUpToGlobalPhase(SycamoreGate{}.Unitary(), c.tolerance):
			raw = []rawOp{{syc: true}}
		case u.EqualUpToGlobalPhase(CZGate{}.Unitary(), c.tolerance):
			raw = []rawOp{{cz: true}}
		default:
			raw = twoQubit(u, c.tolerance)
		}
		if syc {
			raw = czToSycamore(raw)
		}
	default:
		return nil, fmt.Errorf("%w: %d-qubit %s", ErrUnsupportedGate, k, op.Gate)
	}

	ops := merge(raw, op.Qubits, c.tolerance)
	got, err := Unitary(ops, op.Qubits)
	if err != nil {
		return nil, err
	}
	phase := got.PhaseTo(u)
	diff := got.Scale(phase).MaxDiff(u)
	if diff > max(verifyTolerance, 10*c.tolerance) {
		return nil, fmt.Errorf("%w: %s off by %.3g", ErrDecomposition, op, diff)
	}
	if c.globalPhase && cmplx.Abs(phase-1) > c.tolerance {
		ops = append(ops, On(GlobalPhaseGate{Coefficient: phase}))
	}

	c.logger.Debug("converted", "op", op, "ops", len(ops), "cz", CountCZ(ops), "syc", CountSycamore(ops), "error", diff)
	return ops, nil
}

// CountCZ returns the number of CZ gates in ops.
func CountCZ(ops []Operation) int {
	n := 0
	for _, op := range ops {
		if _, ok := op.Gate.(CZGate); ok {
			n++
		}
	}
	return n
}

// CountSycamore returns the number of Sycamore gates in ops.
func CountSycamore(ops []Operation) int {
	n := 0
	for _, op := range ops {
		if _, ok := op.Gate.(SycamoreGate); ok {
			n++
		}
	}
	return n
}
