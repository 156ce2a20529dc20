package foam

import (
	"fmt"
	"sort"
)

// Scenario is a ready-made two-dimensional problem: a duality |A⟩, |B⟩ in the
// standard basis of C², the swap reflection σx, and the goal P = |+⟩⟨+|.
// The single state at (0,) starts at |A⟩.
type Scenario struct {
	Name        string
	Description string
	Labels      [2]string // names of |A⟩ and |B⟩

	Duality    Duality
	Reflection ReflectionOperator
	Goal       GoalProjector
	Reference  []complex128 // |+⟩

	Subject   Index
	Hierarchy *Hierarchy
	Goals     *GoalHierarchy
	Weights   Weights
}

type scenarioInfo struct {
	description string
	labels      [2]string
}

var scenarioTable = map[string]scenarioInfo{
	"good-evil": {
		description: "superposition of good |D⟩ and evil |Z⟩",
		labels:      [2]string{"D", "Z"},
	},
	"history-counterfactual": {
		description: "history |H⟩ and counterfactual |A⟩, goal invariant under H↔A",
		labels:      [2]string{"H", "A"},
	},
	"evolution-duality": {
		description: "Darwinism |E⟩ and Lamarckism |L⟩, goal selects the symmetric superposition",
		labels:      [2]string{"E", "L"},
	},
}

// Scenarios returns the names of the built-in scenarios, sorted.
func Scenarios() []string {
	names := make([]string, 0, len(scenarioTable))
	for name := range scenarioTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupScenario builds the named scenario.
func LookupScenario(name string) (Scenario, error) {
	info, ok := scenarioTable[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q (have %v)", ErrUnknownScenario, name, Scenarios())
	}
	return dualityScenario(name, info)
}

// GoodEvil builds the "good-evil" scenario.
func GoodEvil() (Scenario, error) { return LookupScenario("good-evil") }

// HistoryCounterfactual builds the "history-counterfactual" scenario.
func HistoryCounterfactual() (Scenario, error) { return LookupScenario("history-counterfactual") }

// EvolutionDuality builds the "evolution-duality" scenario.
func EvolutionDuality() (Scenario, error) { return LookupScenario("evolution-duality") }

func dualityScenario(name string, info scenarioInfo) (Scenario, error) {
	dual, err := NewDuality([]complex128{1, 0}, []complex128{0, 1})
	if err != nil {
		return Scenario{}, err
	}

	refl, err := dual.Reflection()
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", name, err)
	}

	plus, err := dual.Plus()
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", name, err)
	}
	goal := GoalProjector{P: Outer(plus, plus)}

	subject := MustIndex(0)
	h, err := NewHierarchy(Entry{Index: subject, State: dual.A})
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", name, err)
	}

	return Scenario{
		Name:        name,
		Description: info.description,
		Labels:      info.labels,
		Duality:     dual,
		Reflection:  refl,
		Goal:        goal,
		Reference:   plus,
		Subject:     subject,
		Hierarchy:   h,
		Goals:       NewGoalHierarchy(map[Index]GoalProjector{subject: goal}),
		Weights:     Weights{0: 1.0},
	}, nil
}
