package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"moviesync/internal/engine"
	"moviesync/internal/naming"
	"moviesync/internal/resolve"
	"moviesync/internal/store"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string
	var patternFlag int
	var strictFlag bool
	var forceIDs bool
	var forceMetadata bool
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "sync [name ...]",
		Short: "Resolve inputs to TMDB ids and refresh the metadata cache",
		Long: `Sync parses the given folder names (or the subdirectories of --dir),
resolves each one to a TMDB id, fetches metadata for ids not yet cached,
and merges the results into the local database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			opts := engine.Options{
				Pattern:             naming.PatternID(cfg.Sync.Pattern),
				Strict:              cfg.Sync.Strict,
				ForceIDUpdate:       cfg.Sync.ForceIDUpdate,
				ForceMetadataUpdate: cfg.Sync.ForceMetadataUpdate,
			}
			if cmd.Flags().Changed("pattern") {
				opts.Pattern = naming.PatternID(patternFlag)
			}
			if cmd.Flags().Changed("strict") {
				opts.Strict = strictFlag
			}
			if forceIDs {
				opts.ForceIDUpdate = true
			}
			if forceMetadata {
				opts.ForceMetadataUpdate = true
			}

			eng, st, err := ctx.newEngine()
			if err != nil {
				return err
			}
			defer st.Close()

			var result *engine.Result
			if dirFlag != "" {
				result, err = eng.SyncDir(cmd.Context(), dirFlag, opts)
			} else {
				result, err = eng.Sync(cmd.Context(), args, opts)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSyncReport(result))

			if outputFlag != "" {
				if err := eng.Write(cmd.Context(), outputFlag); err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported CSV files to %s\n", outputFlag)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Directory whose subdirectory names form the input batch")
	cmd.Flags().IntVarP(&patternFlag, "pattern", "p", int(naming.PatternAuto), "Naming pattern id (-1 selects automatically)")
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "Disable the title-only fallback search")
	cmd.Flags().BoolVar(&forceIDs, "force-id-update", false, "Re-resolve inputs that already have an id")
	cmd.Flags().BoolVar(&forceMetadata, "force-metadata-update", false, "Refetch metadata for cached ids")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Export CSV files to this directory after the run")
	return cmd
}

func renderSyncReport(result *engine.Result) string {
	rows := make([][]string, 0, len(result.Outcomes))
	for _, outcome := range result.Outcomes {
		rows = append(rows, []string{
			outcome.InputKey,
			describeID(outcome.ID),
			outcomeSource(outcome),
		})
	}
	table := renderTable([]string{"Input", "TMDB ID", "Source"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft})

	summary := fmt.Sprintf(
		"Pattern: %s | inputs: %d | fetched: %d | cached: %d | failures: %d",
		naming.Describe(result.Pattern), result.Inputs,
		len(result.FetchedIDs), result.CachedIDs, len(result.Failures))

	report := table + "\n" + summary
	for _, failure := range result.Failures {
		subject := failure.InputKey
		if subject == "" {
			subject = "id " + strconv.FormatInt(failure.TMDBID, 10)
		}
		report += fmt.Sprintf("\n%s: %s failed: %v", subject, failure.Stage, failure.Err)
	}
	return report
}

// describeID renders sentinel codes as words so reports stay readable.
func describeID(id int64) string {
	switch id {
	case store.IDDefault:
		return "pending"
	case store.IDNoResult:
		return "no match"
	case store.IDNoExtract:
		return "unparsed"
	case store.IDBadResponse:
		return "rejected"
	default:
		return strconv.FormatInt(id, 10)
	}
}

func outcomeSource(outcome resolve.Outcome) string {
	switch {
	case outcome.Manual:
		return "manual"
	case outcome.FromCache:
		return "cache"
	case outcome.Err != nil:
		return "error"
	case outcome.SecondPass != store.IDDefault:
		return "title search"
	default:
		return "search"
	}
}
