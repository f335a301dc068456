package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"admissions/internal/evidence"
	"admissions/internal/ledger"
)

func newQuarantineCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "quarantine [run-id]",
		Short: "List rejected and quarantined candidates",
		Long: "List the quarantine records of a run. Without a run ID the latest run\n" +
			"is shown; --all lists the records of every run.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLedger(func(store *ledger.Store) error {
				runID := ""
				switch {
				case len(args) == 1:
					runID = args[0]
				case !all:
					latest, err := store.LatestRunID(cmd.Context())
					if err != nil {
						return err
					}
					if latest == "" {
						fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
						return nil
					}
					runID = latest
				}
				records, err := store.Quarantine(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if ctx.jsonOutput(cmd) {
					return writeJSON(cmd, records)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderQuarantine(records))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List records of every run")
	return cmd
}

func renderQuarantine(records []evidence.QuarantineRecord) string {
	rows := make([][]string, 0, len(records))
	for _, q := range records {
		rows = append(rows, []string{
			q.RunID,
			strconv.Itoa(q.Position),
			string(q.Verdict),
			string(evidence.ClassOf(q.Reason)),
			string(q.Stage),
			q.Text,
			q.SourceURL,
		})
	}
	return renderTable(
		[]string{"Run", "Pos", "Verdict", "Class", "Stage", "Text", "Source"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	)
}
