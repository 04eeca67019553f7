package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"moviesync/internal/naming"
)

func newPatternsCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:         "patterns [name ...]",
		Short:       "Report how each naming pattern matches a batch of names",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := gatherInputs(args, dirFlag)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return errors.New("provide folder names or --dir")
			}

			counts := naming.MatchCounts(inputs)
			rows := make([][]string, 0, len(counts))
			for _, id := range naming.Patterns() {
				rows = append(rows, []string{
					strconv.Itoa(int(id)),
					naming.Describe(id),
					strconv.Itoa(counts[id]),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Pattern", "Shape", "Matches"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignRight}))

			selected, err := naming.AutoSelect(inputs)
			if err != nil {
				fmt.Fprintln(out, "No pattern matches any of the inputs.")
				return nil
			}
			fmt.Fprintf(out, "Auto-selection picks pattern %d (%s).\n", selected, naming.Describe(selected))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Directory whose subdirectory names form the input batch")
	return cmd
}

// gatherInputs combines positional names with the subdirectory names of dir.
func gatherInputs(args []string, dir string) ([]string, error) {
	inputs := append([]string(nil), args...)
	if dir == "" {
		return inputs, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			inputs = append(inputs, entry.Name())
		}
	}
	return inputs, nil
}
