package foam

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// Optimizer defaults.
const (
	DefaultEta     = 1e-2 // descent step size η
	DefaultEpsilon = 1e-4 // finite-difference probe ε
	DefaultSteps   = 50   // iterations performed by Run
)

// Probe selects which coordinates of a complex component are perturbed when
// estimating the gradient.
type Probe int

const (
	// ProbeReal shifts each component along its real axis only. The gradient
	// is real, so real-valued states stay real.
	ProbeReal Probe = iota

	// ProbeComplex probes the real and imaginary axes independently and
	// combines them as ∂J/∂Re + i·∂J/∂Im. Costs twice as many evaluations.
	ProbeComplex
)

func (p Probe) String() string {
	switch p {
	case ProbeReal:
		return "real"
	case ProbeComplex:
		return "complex"
	default:
		return fmt.Sprintf("Probe(%d)", int(p))
	}
}

// ParseProbe parses "real" or "complex".
func ParseProbe(s string) (Probe, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "real", "":
		return ProbeReal, nil
	case "complex":
		return ProbeComplex, nil
	}
	return 0, fmt.Errorf("%w: unknown probe %q", ErrInvalidConfig, s)
}

// Config controls gradient estimation and descent.
type Config struct {
	Eta     float64      // Step size η
	Epsilon float64      // Central-difference half-width ε
	Probe   Probe        // Axes probed per component
	Steps   int          // Iterations performed by Run
	Logger  *slog.Logger // nil discards
}

// DefaultConfig returns the reference settings: η = 1e-2, ε = 1e-4, real-axis
// probing.
func DefaultConfig() Config {
	return Config{
		Eta:     DefaultEta,
		Epsilon: DefaultEpsilon,
		Probe:   ProbeReal,
		Steps:   DefaultSteps,
	}
}

// Validate checks that the numeric settings are usable.
func (c Config) Validate() error {
	if !(c.Eta > 0) || math.IsInf(c.Eta, 0) {
		return fmt.Errorf("%w: eta must be positive and finite, got %v", ErrInvalidConfig, c.Eta)
	}
	if !(c.Epsilon > 0) || math.IsInf(c.Epsilon, 0) {
		return fmt.Errorf("%w: epsilon must be positive and finite, got %v", ErrInvalidConfig, c.Epsilon)
	}
	if c.Probe != ProbeReal && c.Probe != ProbeComplex {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.Probe)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", ErrInvalidConfig, c.Steps)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Gradient estimates ∂J/∂ψ_idx by central differences, holding every other
// state fixed:
//
//	g_k = (J(ψ + ε e_k) − J(ψ − ε e_k)) / 2ε
//
// With ProbeComplex the imaginary axis is probed too and contributes i·g_k'.
func Gradient(h *Hierarchy, obj Objective, idx Index, cfg Config) ([]complex128, error) {
	if !(cfg.Epsilon > 0) {
		return nil, fmt.Errorf("%w: epsilon must be positive, got %v", ErrInvalidConfig, cfg.Epsilon)
	}
	psi, err := h.view(idx)
	if err != nil {
		return nil, err
	}

	eps := cfg.Epsilon
	grad := make([]complex128, len(psi))
	for k := range psi {
		re, err := centralDifference(h, obj, idx, psi, k, complex(eps, 0))
		if err != nil {
			return nil, err
		}
		var im float64
		if cfg.Probe == ProbeComplex {
			im, err = centralDifference(h, obj, idx, psi, k, complex(0, eps))
			if err != nil {
				return nil, err
			}
		}
		grad[k] = complex(re, im)
	}
	return grad, nil
}

// validateObjective runs obj's own Validate method, if it has one.
func validateObjective(obj Objective) error {
	v, ok := obj.(interface{ Validate() error })
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("objective: %w", err)
	}
	return nil
}

// centralDifference evaluates (J(ψ + δe_k) − J(ψ − δe_k)) / 2|δ|.
func centralDifference(h *Hierarchy, obj Objective, idx Index, psi []complex128, k int, delta complex128) (float64, error) {
	plus := Clone(psi)
	plus[k] += delta
	minus := Clone(psi)
	minus[k] -= delta

	jPlus, err := obj.Evaluate(h.probe(idx, plus))
	if err != nil {
		return 0, fmt.Errorf("probe %s[%d]+: %w", idx, k, err)
	}
	jMinus, err := obj.Evaluate(h.probe(idx, minus))
	if err != nil {
		return 0, fmt.Errorf("probe %s[%d]-: %w", idx, k, err)
	}

	width := real(delta) + imag(delta) // exactly one is non-zero
	return (jPlus - jMinus) / (2 * width), nil
}

// Step performs one synchronous gradient-descent step and returns a new
// hierarchy. Every gradient is taken against h itself, never against states
// already updated in this step; h is not modified.
//
// Each updated state is renormalized to unit norm unless it is zero, in which
// case it is kept as is.
func Step(h *Hierarchy, obj Objective, cfg Config) (*Hierarchy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateObjective(obj); err != nil {
		return nil, err
	}
	logger := cfg.logger()

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		base, err := obj.Evaluate(h)
		if err != nil {
			return nil, fmt.Errorf("baseline: %w", err)
		}
		logger.Debug("descent step", "baseline", base, "indices", h.Len())
	}

	next := h.Copy()
	for _, idx := range h.order {
		grad, err := Gradient(h, obj, idx, cfg)
		if err != nil {
			return nil, err
		}

		psi := next.states[idx]
		for k := range psi {
			psi[k] -= complex(cfg.Eta, 0) * grad[k]
		}
		if !normalizeInPlace(psi) {
			logger.Debug("zero state left unnormalized", "index", idx.String())
		}
	}
	return next, nil
}

// FoamStep is Step on the plain multiverse functional with step size eta and
// default ε.
func FoamStep(h *Hierarchy, goals *GoalHierarchy, weights Weights, eta float64) (*Hierarchy, error) {
	cfg := DefaultConfig()
	cfg.Eta = eta
	return Step(h, NewFoam(goals, weights), cfg)
}

// Trajectory records a Run: Values[0] is J before the first step and
// Values[i] is J after step i.
type Trajectory struct {
	Values []float64
	Final  *Hierarchy
}

// Steps returns the number of completed steps.
func (t Trajectory) Steps() int {
	if len(t.Values) == 0 {
		return 0
	}
	return len(t.Values) - 1
}

// Run applies cfg.Steps descent steps starting from h.
//
// ctx is checked between steps; on cancellation the trajectory up to the last
// completed step is returned together with the wrapped context error.
func Run(ctx context.Context, h *Hierarchy, obj Objective, cfg Config) (Trajectory, error) {
	if err := cfg.Validate(); err != nil {
		return Trajectory{}, err
	}
	if err := validateObjective(obj); err != nil {
		return Trajectory{}, err
	}
	logger := cfg.logger()

	j0, err := obj.Evaluate(h)
	if err != nil {
		return Trajectory{}, fmt.Errorf("initial functional: %w", err)
	}

	tr := Trajectory{Values: make([]float64, 0, cfg.Steps+1), Final: h}
	tr.Values = append(tr.Values, j0)
	logger.Info("descent started", "J", j0, "steps", cfg.Steps, "eta", cfg.Eta, "probe", cfg.Probe.String())

	cur := h
	for step := 1; step <= cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return tr, fmt.Errorf("stopped before step %d: %w", step, ctx.Err())
		default:
		}

		next, err := Step(cur, obj, cfg)
		if err != nil {
			return tr, fmt.Errorf("step %d: %w", step, err)
		}
		j, err := obj.Evaluate(next)
		if err != nil {
			return tr, fmt.Errorf("step %d: %w", step, err)
		}

		cur = next
		tr.Values = append(tr.Values, j)
		tr.Final = cur
		logger.Debug("step complete", "step", step, "J", j)
	}

	logger.Info("descent finished", "J", tr.Values[len(tr.Values)-1], "steps", tr.Steps())
	return tr, nil
}
