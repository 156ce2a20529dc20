package foam

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoamLevel_SingleIndexIsInert(t *testing.T) {
	goals := NewGoalHierarchy(nil)
	goals.SetLevelDefault(0, plusProjector(t))

	for _, psi := range [][]complex128{{1, 0}, {0.3, 0.7i}, {0, 0}, {5, -2}} {
		h := mustHierarchy(t, Entry{MustIndex(0), psi})
		phi, err := FoamLevel(h, goals, 0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, phi)
	}
}

func TestFoamLevel_EmptyLevel(t *testing.T) {
	h := mustHierarchy(t, Entry{MustIndex(0), []complex128{1, 0}})
	phi, err := FoamLevel(h, NewGoalHierarchy(nil), 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, phi)
}

// ψa = |0⟩, ψb = |+⟩ under P = |+⟩⟨+|: each ordering contributes 1/2.
func TestFoamLevel_CountsBothOrderings(t *testing.T) {
	h := mustHierarchy(t,
		Entry{MustIndex(0), []complex128{1, 0}},
		Entry{MustIndex(1), []complex128{complex(invSqrt2, 0), complex(invSqrt2, 0)}},
	)
	goals := NewGoalHierarchy(map[Index]GoalProjector{
		MustIndex(0): plusProjector(t),
		MustIndex(1): plusProjector(t),
	})

	phi, err := FoamLevel(h, goals, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, phi, 1e-12)
}

// Only the first index's projector is used for the whole level.
func TestFoamLevel_UsesFirstIndexProjector(t *testing.T) {
	a := Entry{MustIndex(0), []complex128{1, 0}}
	b := Entry{MustIndex(1), []complex128{0, 1}}
	goals := NewGoalHierarchy(map[Index]GoalProjector{
		MustIndex(0): plusProjector(t),
		MustIndex(1): identityGoal(2),
	})

	phi, err := FoamLevel(mustHierarchy(t, a, b), goals, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, phi, 1e-12, "P = |+⟩⟨+| expected")

	phi, err = FoamLevel(mustHierarchy(t, b, a), goals, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, phi, 1e-12, "P = I expected")
}

func TestMultiverseFunctional_Weights(t *testing.T) {
	h := mustHierarchy(t,
		Entry{MustIndex(0), []complex128{1, 0}},
		Entry{MustIndex(1), []complex128{complex(invSqrt2, 0), complex(invSqrt2, 0)}},
		Entry{MustIndex(0, 0), []complex128{1, 0}},
		Entry{MustIndex(0, 1), []complex128{1, 0}},
	)
	goals := NewGoalHierarchy(nil)
	goals.SetLevelDefault(0, plusProjector(t))
	goals.SetLevelDefault(1, identityGoal(2))

	// Φ_0 = 1, Φ_1 = 2; level 1 falls back to weight 1.
	j, err := MultiverseFunctional(h, goals, Weights{0: 1.0})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, j, 1e-12)

	j, err = MultiverseFunctional(h, goals, Weights{0: 2.5, 1: 0})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, j, 1e-12)

	j, err = MultiverseFunctional(h, goals, nil)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, j, 1e-12)
}

func TestMultiverseFunctional_Errors(t *testing.T) {
	h := mustHierarchy(t,
		Entry{MustIndex(0), []complex128{1, 0}},
		Entry{MustIndex(1), []complex128{0, 1}},
	)

	_, err := MultiverseFunctional(h, NewGoalHierarchy(nil), nil)
	assert.ErrorIs(t, err, ErrMissingGoal)

	goals := NewGoalHierarchy(nil)
	goals.SetLevelDefault(0, identityGoal(3))
	_, err = MultiverseFunctional(h, goals, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMultiverseFunctional_NonNegative(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 20; trial++ {
		h, goals := randomProblem(t, rng, 3, 4)
		obj := NewFoam(goals, Weights{0: rng.Float64(), 1: rng.Float64() * 3})
		AssertNonNegative(t, obj, h)

		obj.Alignment = rng.Float64()
		AssertNonNegative(t, obj, h)
	}
}

func TestWeights_Validate(t *testing.T) {
	assert.NoError(t, Weights{0: 0, 1: 2}.Validate())
	assert.ErrorIs(t, Weights{1: -0.5}.Validate(), ErrInvalidConfig)
	assert.Equal(t, DefaultLevelWeight, Weights{}.Weight(4))
}

func TestAlignmentPenalty(t *testing.T) {
	h := mustHierarchy(t, Entry{MustIndex(0), []complex128{1, 0}})
	goals := NewGoalHierarchy(map[Index]GoalProjector{MustIndex(0): plusProjector(t)})

	// (I − |+⟩⟨+|)|0⟩ = |−⟩/√2, squared norm 1/2.
	a, err := AlignmentPenalty(h, goals, Weights{0: 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, a, 1e-12)

	obj := &Foam{Goals: goals, Weights: Weights{0: 1}, Alignment: 3}
	j, err := obj.Evaluate(h)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, j, 1e-12)
}

// randomProblem builds a hierarchy with levels 0 and 1, n indices per level,
// random complex states of dimension d and random rank-one goals per level.
func randomProblem(t *testing.T, rng *rand.Rand, n, d int) (*Hierarchy, *GoalHierarchy) {
	t.Helper()

	randVec := func() []complex128 {
		v := make([]complex128, d)
		for k := range v {
			v[k] = complex(rng.NormFloat64(), rng.NormFloat64())
		}
		return v
	}

	var entries []Entry
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{MustIndex(i), randVec()})
		entries = append(entries, Entry{MustIndex(0, i), randVec()})
	}

	goals := NewGoalHierarchy(nil)
	for level := 0; level <= 1; level++ {
		p, err := ProjectorOnto(randVec())
		require.NoError(t, err)
		goals.SetLevelDefault(level, GoalProjector{P: p})
	}
	return mustHierarchy(t, entries...), goals
}

func TestFoam_RejectsNegativeWeights(t *testing.T) {
	h := mustHierarchy(t,
		Entry{MustIndex(0), []complex128{1, 0}},
		Entry{MustIndex(1), []complex128{1, 0}},
	)
	goals := NewGoalHierarchy(nil)
	goals.SetLevelDefault(0, identityGoal(2))

	_, err := MultiverseFunctional(h, goals, Weights{0: -2})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = AlignmentPenalty(h, goals, Weights{0: -2})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewFoam(goals, Weights{0: -2}).Evaluate(h)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFoam_Validate(t *testing.T) {
	goals := NewGoalHierarchy(nil)

	tests := []struct {
		name string
		obj  *Foam
		ok   bool
	}{
		{"defaults", NewFoam(goals, nil), true},
		{"alignment", &Foam{Goals: goals, Alignment: 2}, true},
		{"negative alignment", &Foam{Goals: goals, Alignment: -1}, false},
		{"infinite alignment", &Foam{Goals: goals, Alignment: math.Inf(1)}, false},
		{"negative weight", &Foam{Goals: goals, Weights: Weights{1: -0.1}}, false},
		{"no goals", &Foam{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.obj.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}
