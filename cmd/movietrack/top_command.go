package main

import (
	"fmt"
	"os"

	"movietracker/library"

	"github.com/jszwec/csvutil"
	"github.com/spf13/cobra"
)

// rankedRow matches the upload format: a CSV with Rank and Title columns.
type rankedRow struct {
	Rank  int    `csv:"Rank"`
	Title string `csv:"Title"`
}

func newTopCommand(ctx *commandContext) *cobra.Command {
	topCmd := &cobra.Command{
		Use:   "top",
		Short: "Show the ranked subset of the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, err := ctx.openStore()
			if err != nil {
				return err
			}

			records, err := collection.Top()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No ranked movies yet.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecords(records, true))
			return nil
		},
	}

	topCmd.AddCommand(newTopImportCommand(ctx))
	topCmd.AddCommand(newTopClearCommand(ctx))
	return topCmd
}

func newTopImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Replace the ranked subset from a CSV with Rank and Title columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			var rows []rankedRow
			if err := csvutil.Unmarshal(data, &rows); err != nil {
				return fmt.Errorf("CSV must contain Rank and Title columns: %w", err)
			}

			entries := make([]library.TopEntry, 0, len(rows))
			for _, row := range rows {
				entries = append(entries, library.TopEntry{Rank: row.Rank, Title: row.Title})
			}

			lib, cleanup, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := lib.ImportTop(cmd.Context(), entries)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
			return nil
		},
	}
}

func newTopClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all rankings, keeping the records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, err := ctx.openStore()
			if err != nil {
				return err
			}
			if err := collection.ClearRanks(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Rankings cleared.")
			return nil
		},
	}
}
