package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexshd/foam"
)

type runFlags struct {
	scenario  string
	steps     int
	eta       float64
	alignment float64
	probe     string
}

func newRunCmd(root *rootOptions) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario through gradient descent",
		Long: `Run evolves the scenario's state for the configured number of steps and
prints the initial and final functional, the final state, its norm and its
overlap with the goal vector |+⟩.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveRunConfig(cmd, root, &flags, os.Getenv)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			return runScenario(cmd.Context(), cmd.OutOrStdout(), logger, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.scenario, "scenario", "s", "", "scenario name (see 'foam scenarios')")
	f.IntVar(&flags.steps, "steps", 0, "number of descent steps")
	f.Float64Var(&flags.eta, "eta", 0, "step size η")
	f.Float64Var(&flags.alignment, "alignment", 0, "weight of the goal-alignment term (0 disables)")
	f.StringVar(&flags.probe, "probe", "", "gradient probe axes (real, complex)")
	return cmd
}

// resolveRunConfig layers explicitly set flags over file and environment
// settings and validates the result.
func resolveRunConfig(cmd *cobra.Command, root *rootOptions, flags *runFlags, getenv func(string) string) (runConfig, error) {
	cfg, err := loadRunConfig(root.configPath, getenv)
	if err != nil {
		return cfg, err
	}

	set := cmd.Flags().Changed
	if set("scenario") {
		cfg.Scenario = flags.scenario
	}
	if set("steps") {
		cfg.Steps = flags.steps
	}
	if set("eta") {
		cfg.Eta = flags.eta
	}
	if set("alignment") {
		cfg.Alignment = flags.alignment
	}
	if set("probe") {
		cfg.Probe = strings.ToLower(flags.probe)
	}
	if root.logLevel != "" {
		cfg.LogLevel = strings.ToLower(root.logLevel)
	}

	return cfg, cfg.validate()
}

func runScenario(ctx context.Context, out io.Writer, logger *slog.Logger, cfg runConfig) error {
	sc, err := foam.LookupScenario(cfg.Scenario)
	if err != nil {
		return err
	}
	opt, err := cfg.optimizer()
	if err != nil {
		return err
	}

	logger = logger.With("run", uuid.NewString(), "scenario", sc.Name)
	opt.Logger = logger
	obj := &foam.Foam{Goals: sc.Goals, Weights: sc.Weights, Alignment: cfg.Alignment}

	psi0, err := sc.Hierarchy.State(sc.Subject)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "=== %s ===\n", sc.Name)
	fmt.Fprintf(out, "%s\n", sc.Description)
	fmt.Fprintf(out, "Initial state: %s\n", formatState(psi0))

	tr, err := foam.Run(ctx, sc.Hierarchy, obj, opt)
	if err != nil {
		logger.Error("run aborted", "err", err, "steps", tr.Steps())
		return err
	}

	psi, err := tr.Final.State(sc.Subject)
	if err != nil {
		return err
	}
	overlap, err := foam.Overlap(sc.Reference, psi)
	if err != nil {
		return err
	}
	conv := foam.AnalyzeTrajectory(tr.Values, foam.DefaultConvergenceConfig())

	fmt.Fprintf(out, "Initial J: %.6g\n", conv.Initial)
	fmt.Fprintf(out, "Final J: %.6g\n", conv.Final)
	fmt.Fprintf(out, "Final state: %s\n", formatState(psi))
	fmt.Fprintf(out, "Norm: %.6f\n", foam.Norm(psi))
	fmt.Fprintf(out, "Overlap with |+⟩: %.6f\n", overlap)

	if conv.Cycle > 0 {
		logger.Warn("functional oscillates, step size may be too large", "period", conv.Cycle, "eta", opt.Eta)
	}
	logger.Info("run complete",
		"overlap", overlap,
		"monotone", conv.Monotone,
		"converged", conv.Converged,
		"converged_at", conv.ConvergedAt)
	return nil
}

func formatState(psi []complex128) string {
	parts := make([]string, len(psi))
	for i, c := range psi {
		parts[i] = strconv.FormatComplex(c, 'f', 6, 128)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
