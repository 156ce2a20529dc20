package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexshd/foam"
)

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range foam.Scenarios() {
				sc, err := foam.LookupScenario(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-24s |%s⟩/|%s⟩  %s\n", sc.Name, sc.Labels[0], sc.Labels[1], sc.Description)
			}
			return nil
		},
	}
}
