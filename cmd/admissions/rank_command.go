package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"admissions/internal/pipeline"
)

func newRankCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rank <bundle>",
		Short: "Rank the admission documents of a bundle per faculty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runBundle(cmd, ctx, args[0])
			if err != nil {
				return err
			}
			if ctx.jsonOutput(cmd) {
				return writeJSON(cmd, report.Partitions)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPartitions(report.Partitions))
			return nil
		},
	}
}

func renderPartitions(parts []pipeline.Partition) string {
	var rows [][]string
	for _, part := range parts {
		for i, doc := range part.Ranked {
			row := "-"
			if doc.Row != nil {
				row = doc.Row.Name
			}
			rows = append(rows, []string{
				part.Faculty,
				strconv.Itoa(i + 1),
				formatScore(doc.Score),
				string(doc.DocType),
				formatInt(doc.YearSignal),
				doc.DocumentURL(),
				row,
			})
		}
	}
	return renderTable(
		[]string{"Faculty", "Rank", "Score", "Type", "Year", "Document", "Row"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignRight},
	)
}
