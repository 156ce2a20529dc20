package foam

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ConvergenceConfig controls trajectory analysis.
type ConvergenceConfig struct {
	Tolerance float64 // |J_{i+1} − J_i| below this counts as settled
	Slack     float64 // increases up to Slack still count as monotone
	Window    int     // consecutive settled steps required for convergence
	MaxPeriod int     // longest oscillation period searched for
}

// DefaultConvergenceConfig returns sensible defaults.
func DefaultConvergenceConfig() ConvergenceConfig {
	return ConvergenceConfig{
		Tolerance: 1e-9,
		Slack:     1e-12,
		Window:    3,
		MaxPeriod: 8,
	}
}

// Convergence summarises a sequence of functional values.
type Convergence struct {
	Initial     float64
	Final       float64
	Min         float64
	Max         float64
	Reduction   float64 // Initial − Final
	Monotone    bool    // never increased by more than Slack
	MaxIncrease float64 // largest single-step increase (0 when monotone)
	Converged   bool    // settled for Window steps, or reached zero
	ConvergedAt int     // first step of the settled run, -1 when not converged
	Cycle       int     // period of a late oscillation, 0 when none
}

// AnalyzeTrajectory inspects J over the steps of a run.
//
// A run converges when the functional reaches zero (within Tolerance) or
// when it stays within Tolerance of itself for Window consecutive steps.
func AnalyzeTrajectory(values []float64, cfg ConvergenceConfig) Convergence {
	c := Convergence{Monotone: true, ConvergedAt: -1}
	if len(values) == 0 {
		return c
	}

	c.Initial = values[0]
	c.Final = values[len(values)-1]
	c.Min = floats.Min(values)
	c.Max = floats.Max(values)
	c.Reduction = c.Initial - c.Final

	window := cfg.Window
	if window < 1 {
		window = 1
	}

	settled := 0
	for i, v := range values {
		if math.Abs(v) <= cfg.Tolerance && !c.Converged {
			c.Converged = true
			c.ConvergedAt = i
		}
		if i == 0 {
			continue
		}

		delta := v - values[i-1]
		if delta > c.MaxIncrease {
			c.MaxIncrease = delta
		}
		if delta > cfg.Slack {
			c.Monotone = false
		}

		if math.Abs(delta) <= cfg.Tolerance {
			settled++
			if settled >= window && !c.Converged {
				c.Converged = true
				c.ConvergedAt = i - settled
			}
		} else {
			settled = 0
		}
	}

	if !c.Converged {
		c.Cycle = DetectCycle(values, cfg.MaxPeriod, cfg.Tolerance)
	}
	return c
}

// DetectCycle looks for a period-p oscillation, p ∈ {2, 4, 8, ...} up to
// maxPeriod, in the second half of values. It returns the smallest such p,
// or 0 when the tail is flat or aperiodic. A step size that overshoots the
// minimum typically shows up as period 2.
func DetectCycle(values []float64, maxPeriod int, tol float64) int {
	tail := values[len(values)/2:]
	if len(tail) < 4 {
		return 0
	}
	if floats.Max(tail)-floats.Min(tail) <= tol {
		return 0
	}

	for period := 2; period <= maxPeriod; period *= 2 {
		if len(tail) < 2*period {
			break
		}
		periodic := true
		for i := 0; i+period < len(tail); i++ {
			if math.Abs(tail[i]-tail[i+period]) > tol {
				periodic = false
				break
			}
		}
		if periodic {
			return period
		}
	}
	return 0
}

// DistanceToGoal returns ‖(I − P)ψ‖ / ‖ψ‖ for a single state: 0 when ψ lies in
// the goal subspace, 1 when it is orthogonal to it. A zero state yields 0.
func DistanceToGoal(psi []complex128, goal GoalProjector) (float64, error) {
	n := Norm(psi)
	if n == 0 {
		return 0, nil
	}
	proj, err := goal.Project(psi)
	if err != nil {
		return 0, err
	}
	residual := make([]complex128, len(psi))
	for k := range psi {
		residual[k] = psi[k] - proj[k]
	}
	return Norm(residual) / n, nil
}
