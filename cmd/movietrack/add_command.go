package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>...",
		Short: "Resolve titles and add them to the collection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, cleanup, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := lib.AddMovies(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
			return nil
		},
	}
}
