package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or reset the metadata cache",
	}
	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show mapping and cache counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			stats, err := st.ReadStats(cmd.Context())
			if err != nil {
				return err
			}
			rows := [][]string{
				{"Mapping rows", strconv.Itoa(stats.MappingRows)},
				{"Resolved inputs", strconv.Itoa(stats.ResolvedInputs)},
				{"Manual overrides", strconv.Itoa(stats.ManualOverrides)},
				{"Cached ids", strconv.Itoa(stats.CachedIDs)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Metric", "Count"}, rows,
				[]columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached metadata rows",
		Long: `Clear removes every row from the metadata tables. The mapping is kept,
so the next sync refetches metadata without repeating any searches.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.ClearMetadata(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Metadata cache cleared")
			return nil
		},
	}
}
