package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSchemesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List supported transport DSN schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, s := range a.registry().Schemes() {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}
