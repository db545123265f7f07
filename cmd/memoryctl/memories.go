package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/familylane/memory-lane/internal/derive"
)

func newMemoriesCmd(opts *rootOptions) *cobra.Command {
	memoriesCmd := &cobra.Command{Use: "memories", Short: "Memory record operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every memory, undated ones included",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, raw, err := newAPIClient(opts.api).List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return writeRaw(out, raw)
			}
			for _, m := range res.Memories {
				date := m.MemoryDate
				if date == "" {
					date = "undated"
				}
				_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", m.ID, date, derive.Highlight(*m))
			}
			_, _ = fmt.Fprintf(out, "%d memories\n", res.Count)
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get MEMORY_ID",
		Short: "Get a memory by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := newAPIClient(opts.api).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), m)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete MEMORY_ID",
		Short: "Delete a memory by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPIClient(opts.api).Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	memoriesCmd.AddCommand(listCmd, getCmd, deleteCmd)
	return memoriesCmd
}
