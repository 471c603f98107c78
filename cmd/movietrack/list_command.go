package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, err := ctx.openStore()
			if err != nil {
				return err
			}

			records, err := collection.Load()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "The collection is empty.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecords(records, false))
			return nil
		},
	}
}
