package native

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeQubitGate is a gate the CZ gate set refuses.
type threeQubitGate struct{}

func (threeQubitGate) NumQubits() int  { return 3 }
func (threeQubitGate) Unitary() Matrix { return Identity(8) }
func (threeQubitGate) String() string  { return "CCZ" }

func TestCZGatesetPassesNativeThrough(t *testing.T) {
	g := NewCZGateset()
	for _, op := range []Operation{
		On(CZGate{}, q0, q1),
		On(PhasedXZGate{X: 0.5}, q0),
		On(GlobalPhaseGate{Coefficient: -1}),
	} {
		got, err := g.Convert(op)
		require.NoError(t, err)
		assert.Equal(t, []Operation{op}, got)
	}
}

func TestSycamoreGatesetPassesNativeThrough(t *testing.T) {
	g := NewSycamoreGateset()
	for _, op := range []Operation{
		On(SycamoreGate{}, q0, q1),
		On(PhasedXZGate{X: 0.5}, q0),
		On(GlobalPhaseGate{Coefficient: -1}),
	} {
		got, err := g.Convert(op)
		require.NoError(t, err)
		assert.Equal(t, []Operation{op}, got)
	}
}

func TestSycamoreGatesetConvertsCZ(t *testing.T) {
	ops, err := NewSycamoreGateset().Convert(On(CZGate{}, q0, q1))
	require.NoError(t, err)
	assert.Equal(t, 2, CountSycamore(ops))
	assert.Zero(t, CountCZ(ops))

	got, err := Unitary(ops, []Qubit{q0, q1})
	require.NoError(t, err)
	assert.True(t, got.AllClose(CZGate{}.Unitary(), 1e-6), "got\n%s", got)
}

func TestCZGatesetConvertsSycamore(t *testing.T) {
	ops, err := NewCZGateset().Convert(On(SycamoreGate{}, q0, q1))
	require.NoError(t, err)
	assert.Zero(t, CountSycamore(ops))

	got, err := Unitary(ops, []Qubit{q0, q1})
	require.NoError(t, err)
	assert.True(t, got.AllClose(SycamoreGate{}.Unitary(), 1e-6), "got\n%s", got)
}

func TestCZGatesetRejectsNonUnitary(t *testing.T) {
	m := Matrix{{1, 1}, {0, 1}}

	_, err := NewCZGateset().Convert(On(SingleQubitMatrixGate{Matrix: m}, q0))
	require.ErrorIs(t, err, ErrNotUnitary)

	_, err = NewCZGateset(WithUnitaryCheck(false)).Convert(On(SingleQubitMatrixGate{Matrix: m}, q0))
	require.ErrorIs(t, err, ErrDecomposition)
}

func TestCZGatesetWithoutGlobalPhase(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 22))
	g := NewCZGateset(WithGlobalPhase(false))
	for i := 0; i < 10; i++ {
		m := RandomUnitary(rng, 4)
		ops, err := g.Convert(On(TwoQubitMatrixGate{Matrix: m}, q0, q1))
		require.NoError(t, err)
		for _, op := range ops {
			_, isPhase := op.Gate.(GlobalPhaseGate)
			assert.False(t, isPhase)
		}
		got, err := Unitary(ops, []Qubit{q0, q1})
		require.NoError(t, err)
		assert.True(t, got.EqualUpToGlobalPhase(m, 1e-6))
	}
}

func TestCZGatesetRejectsBadOperations(t *testing.T) {
	g := NewCZGateset()

	_, err := g.Convert(On(TwoQubitMatrixGate{Matrix: cnotMatrix()}, q0, q0))
	require.ErrorIs(t, err, ErrUnsupportedGate)

	_, err = g.Convert(On(TwoQubitMatrixGate{Matrix: cnotMatrix()}, q0))
	require.ErrorIs(t, err, ErrUnsupportedGate)

	_, err = g.Convert(On(threeQubitGate{}, q0, q1, GridQubit(1, 1)))
	require.ErrorIs(t, err, ErrUnsupportedGate)

	_, err = g.Convert(On(SingleQubitMatrixGate{Matrix: Identity(4)}, q0))
	require.ErrorIs(t, err, ErrUnsupportedGate)
}

func TestGatesetOptions(t *testing.T) {
	g := NewCZGateset(WithTolerance(1e-4))
	assert.Equal(t, 1e-4, g.Tolerance())

	g = NewCZGateset(WithTolerance(-1))
	assert.Equal(t, DefaultTolerance, g.Tolerance())

	s := NewSycamoreGateset(WithTolerance(1e-5), WithGlobalPhase(false))
	assert.Equal(t, 1e-5, s.Tolerance())
	ops, err := s.Convert(On(TwoQubitMatrixGate{Matrix: cnotMatrix()}, q0, q1))
	require.NoError(t, err)
	for _, op := range ops {
		_, isPhase := op.Gate.(GlobalPhaseGate)
		assert.False(t, isPhase)
	}
}

func TestCZGatesetLogsConversions(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	_, err := NewCZGateset(WithLogger(logger)).Convert(On(TwoQubitMatrixGate{Matrix: cnotMatrix()}, q0, q1))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "converted")
	assert.Contains(t, buf.String(), "cz=")

	buf.Reset()
	_, err = NewSycamoreGateset(WithLogger(logger)).Convert(On(TwoQubitMatrixGate{Matrix: cnotMatrix()}, q0, q1))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "syc=")
}
