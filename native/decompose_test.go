package native

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZYZ(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for i := 0; i < 100; i++ {
		u := RandomUnitary(rng, 2)
		phase, phi, theta, lambda := zyz(u)
		assert.GreaterOrEqual(t, theta, 0.0)
		assert.LessOrEqual(t, theta, math.Pi+1e-12)
		got := rz(phi).Mul(ry(theta)).Mul(rz(lambda)).Scale(phase)
		require.True(t, got.AllClose(u, 1e-9), "u\n%s\ngot\n%s", u, got)
	}
}

func TestZYZDegenerate(t *testing.T) {
	for _, u := range []Matrix{Identity(2), pauliX, hadamard, Diagonal(1, 1i), {{0, -1i}, {1i, 0}}} {
		phase, phi, theta, lambda := zyz(u)
		got := rz(phi).Mul(ry(theta)).Mul(rz(lambda)).Scale(phase)
		assert.True(t, got.AllClose(u, 1e-9), "u\n%s\ngot\n%s", u, got)
	}
}

func TestPhasedXZMatchesUpToPhase(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	for i := 0; i < 100; i++ {
		u := RandomUnitary(rng, 2)
		g := phasedXZ(u)
		assert.True(t, g.Unitary().EqualUpToGlobalPhase(u, 1e-9))
		assert.LessOrEqual(t, math.Abs(g.Z), 1.0)
		assert.LessOrEqual(t, math.Abs(g.A), 1.0)
	}
}

func TestControlled(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	u := RandomUnitary(rng, 2)
	qs := []Qubit{q0, q1}

	tests := []struct {
		name               string
		ctrl, target, value int
		want               Matrix
	}{
		// q0 controls q1
		{"ctrl q0 on 1", 0, 1, 1, Diagonal(1, 0).Kron(Identity(2)).add(Diagonal(0, 1).Kron(u))},
		{"ctrl q0 on 0", 0, 1, 0, Diagonal(1, 0).Kron(u).add(Diagonal(0, 1).Kron(Identity(2)))},
		// q1 controls q0
		{"ctrl q1 on 1", 1, 0, 1, Identity(2).Kron(Diagonal(1, 0)).add(u.Kron(Diagonal(0, 1)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := merge(controlled(tt.ctrl, tt.target, tt.value, u), qs, DefaultTolerance)
			got, err := Unitary(ops, qs)
			require.NoError(t, err)
			assert.True(t, got.EqualUpToGlobalPhase(tt.want, 1e-9), "want\n%s\ngot\n%s", tt.want, got)
			assert.Equal(t, 2, CountCZ(ops))
		})
	}
}

func TestTwoQubitCZBudget(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	for i := 0; i < 20; i++ {
		ops := merge(twoQubit(RandomUnitary(rng, 4), DefaultTolerance), []Qubit{q0, q1}, DefaultTolerance)
		assert.LessOrEqual(t, CountCZ(ops), 14)
	}

	ops := merge(twoQubit(hadamard.Kron(hadamard), DefaultTolerance), []Qubit{q0, q1}, DefaultTolerance)
	assert.Zero(t, CountCZ(ops))
}

func TestSycamoreCZLayers(t *testing.T) {
	qs := []Qubit{q0, q1}
	ops := merge(czToSycamore([]rawOp{{cz: true}}), qs, DefaultTolerance)
	assert.Equal(t, 2, CountSycamore(ops))
	assert.Zero(t, CountCZ(ops))

	got, err := Unitary(ops, qs)
	require.NoError(t, err)
	assert.True(t, got.EqualUpToGlobalPhase(CZGate{}.Unitary(), 1e-9), "got\n%s", got)
}

func TestSplitProduct(t *testing.T) {
	rng := rand.New(rand.NewPCG(15, 16))
	for i := 0; i < 20; i++ {
		a, b := RandomUnitary(rng, 2), RandomUnitary(rng, 2)
		u := a.Kron(b)
		ga, gb, ok := splitProduct(u, DefaultTolerance)
		require.True(t, ok)
		assert.True(t, ga.Kron(gb).AllClose(u, 1e-9))
		assert.True(t, ga.IsUnitary(1e-9))
		assert.True(t, gb.IsUnitary(1e-9))
	}

	_, _, ok := splitProduct(cnotMatrix(), DefaultTolerance)
	assert.False(t, ok)
	_, _, ok = splitProduct(SycamoreGate{}.Unitary(), DefaultTolerance)
	assert.False(t, ok)
}

func TestMergeEmitsSycamore(t *testing.T) {
	ops := merge([]rawOp{single(0, pauliX), {syc: true}}, []Qubit{q0, q1}, DefaultTolerance)
	require.Len(t, ops, 2)
	assert.Equal(t, On(SycamoreGate{}, q0, q1), ops[1])
}

func TestMergeDropsIdentity(t *testing.T) {
	raw := []rawOp{single(0, pauliX), single(0, pauliX), single(1, Diagonal(1i, 1i))}
	assert.Empty(t, merge(raw, []Qubit{q0, q1}, DefaultTolerance))
}

func TestWrapHalfTurns(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{-1, 1},
		{1.5, -0.5},
		{2, 0},
		{-2.25, -0.25},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, wrapHalfTurns(tt.in), 1e-12, "wrapHalfTurns(%g)", tt.in)
	}
}

// add returns m+o; test-only helper.
func (m Matrix) add(o Matrix) Matrix {
	out := m.Clone()
	for i := range out {
		for j := range out[i] {
			out[i][j] += o[i][j]
		}
	}
	return out
}
