package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newMappingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mapping",
		Short: "Show the persisted input-to-id mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			records, err := st.Mapping(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				year := ""
				if rec.Year >= 0 {
					year = strconv.Itoa(rec.Year)
				}
				manual := ""
				if rec.ManualID != 0 {
					manual = strconv.FormatInt(rec.ManualID, 10)
				}
				rows = append(rows, []string{
					rec.InputKey, rec.Title, year,
					describeID(rec.TMDBID), manual,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Input", "Title", "Year", "TMDB ID", "Manual"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight}))
			return nil
		},
	}
}

func newSetIDCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-id <input> <tmdb-id>",
		Short: "Record a manual TMDB id override for one input",
		Long: `Set-id pins an input to a known TMDB id. The override survives every
future run and always wins over the automatically resolved id. The next
sync fetches metadata for the pinned id if it is not cached yet.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("tmdb id must be a positive integer, got %q", args[1])
			}

			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.SetManualID(cmd.Context(), args[0], id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pinned %q to TMDB id %d\n", args[0], id)
			return nil
		},
	}
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the mapping and metadata tables as CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := outputFlag
			if dir == "" {
				dir = cfg.Paths.OutputDir
			}

			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			if err := st.ExportCSV(cmd.Context(), dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported CSV files to %s\n", dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Destination directory (defaults to paths.output_dir)")
	return cmd
}
