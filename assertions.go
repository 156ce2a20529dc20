package foam

import (
	"fmt"
	"math"
	"testing"
)

// AssertionConfig contains tolerances for the numerical properties below.
type AssertionConfig struct {
	// Allowed deviation of ‖ψ‖ from 1
	NormTolerance float64

	// Element-wise tolerance for R·P = P·R
	CommuteTolerance float64

	// Increases of J up to this size still count as monotone
	MonotoneSlack float64
}

// DefaultAssertionConfig returns the tolerances used throughout the tests.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		NormTolerance:    1e-9,
		CommuteTolerance: DefaultCommuteTolerance,
		MonotoneSlack:    1e-12,
	}
}

// AssertNormalized verifies that every non-zero state in h has unit norm.
//
// Zero states are skipped: the optimizer leaves them unnormalized.
func AssertNormalized(t *testing.T, h *Hierarchy, cfg AssertionConfig) {
	t.Helper()

	var failures []string
	for _, e := range h.Entries() {
		n := Norm(e.State)
		if n == 0 {
			continue
		}
		if math.Abs(n-1) > cfg.NormTolerance {
			failures = append(failures, fmt.Sprintf("  %s: ‖ψ‖ = %.12f", e.Index, n))
		}
	}

	if len(failures) > 0 {
		t.Errorf("States not normalized (tolerance %.1e):\n%v", cfg.NormTolerance, failures)
	}
}

// AssertNonNegative verifies J(h) ≥ 0.
func AssertNonNegative(t *testing.T, obj Objective, h *Hierarchy) {
	t.Helper()

	j, err := obj.Evaluate(h)
	if err != nil {
		t.Fatalf("Failed to evaluate functional: %v", err)
	}
	if j < 0 {
		t.Errorf("Functional is negative: J = %.12g", j)
	}
}

// AssertMonotone verifies that J never increases along a trajectory, or
// reaches zero.
func AssertMonotone(t *testing.T, values []float64, cfg AssertionConfig) {
	t.Helper()

	conv := AnalyzeTrajectory(values, ConvergenceConfig{
		Tolerance: cfg.MonotoneSlack,
		Slack:     cfg.MonotoneSlack,
		Window:    1,
	})

	if !conv.Monotone {
		t.Errorf("Functional increased along trajectory: max step increase %.3e (slack %.1e)\n"+
			"Step size may be too large for this objective.",
			conv.MaxIncrease, cfg.MonotoneSlack)
	}

	t.Logf("✓ J: %.6g → %.6g over %d steps", conv.Initial, conv.Final, len(values)-1)
}

// AssertConverges verifies that J settles, or reaches zero, within the
// trajectory.
func AssertConverges(t *testing.T, values []float64, cfg ConvergenceConfig) {
	t.Helper()

	conv := AnalyzeTrajectory(values, cfg)
	if !conv.Converged {
		t.Errorf("Functional did not converge in %d steps: final J = %.6e (tolerance %.1e)",
			len(values)-1, conv.Final, cfg.Tolerance)
		if conv.Cycle > 0 {
			t.Logf("  oscillating with period %d", conv.Cycle)
		}
		return
	}

	t.Logf("✓ Converged at step %d (J = %.3e)", conv.ConvergedAt, conv.Final)
}

// AssertCommutes verifies that the reflection commutes with the projector.
func AssertCommutes(t *testing.T, r ReflectionOperator, p *Matrix, cfg AssertionConfig) {
	t.Helper()

	ok, err := r.CommutesWith(p, cfg.CommuteTolerance)
	if err != nil {
		t.Fatalf("Commutation check failed: %v", err)
	}
	if !ok {
		t.Errorf("R does not commute with P within %.1e:\nR =\n%sP =\n%s",
			cfg.CommuteTolerance, r.R, p)
	}
}

// AssertOverlapImproves verifies |⟨ref|ψ⟩| at idx grew from before to after.
func AssertOverlapImproves(t *testing.T, ref []complex128, idx Index, before, after *Hierarchy) {
	t.Helper()

	psi0, err := before.State(idx)
	if err != nil {
		t.Fatalf("Initial state: %v", err)
	}
	psi1, err := after.State(idx)
	if err != nil {
		t.Fatalf("Final state: %v", err)
	}

	o0, err := Overlap(ref, psi0)
	if err != nil {
		t.Fatalf("Initial overlap: %v", err)
	}
	o1, err := Overlap(ref, psi1)
	if err != nil {
		t.Fatalf("Final overlap: %v", err)
	}

	if o1 <= o0 {
		t.Errorf("Overlap did not improve at %s: %.6f → %.6f", idx, o0, o1)
	}

	t.Logf("✓ Overlap at %s: %.6f → %.6f", idx, o0, o1)
}

// PrintTrajectory writes the functional per step to the test log.
func PrintTrajectory(t *testing.T, values []float64) {
	t.Helper()

	conv := AnalyzeTrajectory(values, DefaultConvergenceConfig())

	t.Logf("\n=== Descent Trajectory ===")
	t.Logf("  step  J")
	t.Logf("  ----  ------------")
	for i, v := range values {
		t.Logf("  %-4d  %.6e", i, v)
	}

	t.Logf("\nSummary:")
	t.Logf("  initial   = %.6e", conv.Initial)
	t.Logf("  final     = %.6e", conv.Final)
	t.Logf("  reduction = %.6e", conv.Reduction)
	if conv.Converged {
		t.Logf("  ✓ converged at step %d", conv.ConvergedAt)
	} else {
		t.Logf("  ⚠ not converged")
	}
	if conv.Monotone {
		t.Logf("  ✓ monotone")
	} else {
		t.Logf("  ✗ max increase %.3e", conv.MaxIncrease)
	}
}
