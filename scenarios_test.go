package foam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios_Names(t *testing.T) {
	assert.Equal(t, []string{"evolution-duality", "good-evil", "history-counterfactual"}, Scenarios())

	_, err := LookupScenario("heaven-hell")
	assert.ErrorIs(t, err, ErrUnknownScenario)
}

func TestScenarios_Structure(t *testing.T) {
	builders := map[string]func() (Scenario, error){
		"good-evil":              GoodEvil,
		"history-counterfactual": HistoryCounterfactual,
		"evolution-duality":      EvolutionDuality,
	}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			sc, err := build()
			require.NoError(t, err)
			assert.Equal(t, name, sc.Name)
			assert.NotEmpty(t, sc.Description)
			assert.NotEmpty(t, sc.Labels[0])

			// The goal is invariant under the swap, and the swap is its own inverse.
			AssertCommutes(t, sc.Reflection, sc.Goal.P, DefaultAssertionConfig())
			assert.True(t, sc.Reflection.IsInvolution(1e-12))

			swapped, err := sc.Reflection.Apply(sc.Duality.A)
			require.NoError(t, err)
			assert.True(t, ApproxEqual(swapped, sc.Duality.B, 1e-12))

			assert.True(t, ApproxEqual(sc.Reference,
				[]complex128{complex(invSqrt2, 0), complex(invSqrt2, 0)}, 1e-12))
			assert.Equal(t, 1, sc.Goal.Rank())

			psi, err := sc.Hierarchy.State(sc.Subject)
			require.NoError(t, err)
			assert.Equal(t, sc.Duality.A, psi)

			// One index per level: no interference.
			j, err := NewFoam(sc.Goals, sc.Weights).Evaluate(sc.Hierarchy)
			require.NoError(t, err)
			assert.Equal(t, 0.0, j)
		})
	}
}

// Minus is the reflection's −1 eigenvector and is orthogonal to the goal.
func TestScenarios_MinusOutsideGoal(t *testing.T) {
	sc, err := HistoryCounterfactual()
	require.NoError(t, err)

	minus, err := sc.Duality.Minus()
	require.NoError(t, err)

	d, err := DistanceToGoal(minus, sc.Goal)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d, 1e-12)

	flipped, err := sc.Reflection.Apply(minus)
	require.NoError(t, err)
	assert.True(t, ApproxEqual(flipped, []complex128{-minus[0], -minus[1]}, 1e-12))
}
