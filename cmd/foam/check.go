package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexshd/foam"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var (
		scenario string
		atol     float64
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Print reflection and goal diagnostics for scenarios",
		Long: `Check reports whether each scenario's reflection commutes with its goal
projector, whether the reflection is an involution and whether the goal is
an orthogonal projector. Without --scenario every scenario is checked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := foam.Scenarios()
			if scenario != "" {
				names = []string{scenario}
			}

			level, err := resolveLogLevel(root, os.Getenv)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			failed := 0
			for _, name := range names {
				ok, err := checkScenario(cmd.OutOrStdout(), name, atol)
				if err != nil {
					return err
				}
				if !ok {
					logger.Warn("diagnostics failed", "scenario", name)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d scenario(s) failed diagnostics", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenario, "scenario", "s", "", "scenario name (default: all)")
	cmd.Flags().Float64Var(&atol, "atol", foam.DefaultCommuteTolerance, "absolute tolerance")
	return cmd
}

func checkScenario(out io.Writer, name string, atol float64) (bool, error) {
	sc, err := foam.LookupScenario(name)
	if err != nil {
		return false, err
	}

	commutes, err := sc.Reflection.CommutesWith(sc.Goal.P, atol)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	involution := sc.Reflection.IsInvolution(atol)
	projector := sc.Goal.IsProjector(atol)

	swapped, err := sc.Reflection.Apply(sc.Duality.A)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	swaps := foam.ApproxEqual(swapped, sc.Duality.B, atol)

	fmt.Fprintf(out, "=== %s ===\n", sc.Name)
	fmt.Fprintf(out, "R =\n%s", sc.Reflection.R)
	fmt.Fprintf(out, "P =\n%s", sc.Goal.P)
	fmt.Fprintf(out, "R·P = P·R:       %s\n", mark(commutes))
	fmt.Fprintf(out, "R² = I:          %s\n", mark(involution))
	fmt.Fprintf(out, "P² = P = P†:     %s (rank %d)\n", mark(projector), sc.Goal.Rank())
	fmt.Fprintf(out, "R|%s⟩ = |%s⟩:      %s\n", sc.Labels[0], sc.Labels[1], mark(swaps))

	return commutes && involution && projector && swaps, nil
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
