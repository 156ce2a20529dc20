package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "foam",
		Short: "Minimize the interference functional over a multiverse hierarchy",
		Long: `foam evolves a hierarchy of complex state vectors by finite-difference
gradient descent on the multiverse functional, and reports how each
scenario's state approaches its goal subspace.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML run configuration")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newRunCmd(opts),
		newScenariosCmd(),
		newCheckCmd(opts),
	)
	return root
}
