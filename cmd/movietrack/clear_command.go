package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every record in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, err := ctx.openStore()
			if err != nil {
				return err
			}
			if err := collection.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All movie data has been cleared.")
			return nil
		},
	}
}
