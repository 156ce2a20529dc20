// Package foam minimizes an interference functional over a hierarchy of
// complex state vectors.
//
// # Overview
//
// A Hierarchy attaches a state vector ψ_a to every multi-index a = (a0, ..., al).
// Indices of equal length form a level. Each level is judged against a goal
// projector P_l, and states at the same level "interfere" when their
// projections onto the goal overlap. The package measures that interference
// and drives it down by finite-difference gradient descent.
//
// # Architecture
//
// The package components:
//
//   - index.go, hierarchy.go  - multi-indices and the state container
//   - vector.go, matrix.go    - complex vector helpers and dense matrices (gonum cblas128)
//   - duality.go              - |A⟩, |B⟩ pairs and their ± combinations
//   - reflection.go, goals.go - reflection operators and goal projectors
//   - functional.go           - the foam functional and the Objective interface
//   - optimizer.go            - gradient estimation, Step and Run
//   - convergence.go          - trajectory analysis
//   - assertions.go           - test helpers for the numerical properties
//   - scenarios.go            - the built-in two-dimensional duality problems
//
// # The Functional
//
// The foam of level l sums the squared goal-projected overlaps of every
// ordered pair of distinct states at that level:
//
//	Φ_l = Σ_{a≠b} |⟨ψ_a| P_l |ψ_b⟩|²
//
// The total functional weights each level:
//
//	J = Σ_l Λ_l · Φ_l        (Λ_l = 1 when unlisted)
//
// A level holding a single index has no pairs and contributes nothing. Foam
// can add an alignment term Σ_a ‖(I − P_a)ψ_a‖² that pulls lone states toward
// their goal subspace.
//
// # Quick Start
//
//	sc, err := foam.GoodEvil()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	obj := foam.NewFoam(sc.Goals, sc.Weights)
//	obj.Alignment = 1
//
//	cfg := foam.DefaultConfig()
//	cfg.Eta = 0.1
//
//	tr, err := foam.Run(ctx, sc.Hierarchy, obj, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	psi, _ := tr.Final.State(sc.Subject)
//	overlap, _ := foam.Overlap(sc.Reference, psi)
//	fmt.Printf("J: %.4g → %.4g, |⟨+|ψ⟩| = %.4f\n", tr.Values[0], tr.Values[len(tr.Values)-1], overlap)
//
// # The Gradient
//
// Gradients are numerical. For every index and component k:
//
//	g_k = (J(ψ + ε e_k) − J(ψ − ε e_k)) / 2ε,   ψ ← (ψ − η g) / ‖ψ − η g‖
//
// All indices are updated simultaneously from the same snapshot. By default
// only the real axis of each component is probed (ProbeReal); ProbeComplex
// also probes the imaginary axis. Any Objective can be minimized this way,
// not only Foam.
//
// # Testing
//
//	func TestDescent(t *testing.T) {
//	    tr, err := foam.Run(ctx, h, obj, cfg)
//	    ...
//	    foam.AssertNormalized(t, tr.Final, foam.DefaultAssertionConfig())
//	    foam.AssertMonotone(t, tr.Values, foam.DefaultAssertionConfig())
//	}
//
// # See Also
//
//   - cmd/foam - command-line driver for the built-in scenarios
package foam
