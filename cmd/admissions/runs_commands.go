package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"admissions/internal/evidence"
	"admissions/internal/ledger"
	"admissions/internal/pipeline"
)

type runView struct {
	ID          string         `json:"id"`
	Institution string         `json:"institution"`
	Status      string         `json:"status"`
	ConfigHash  string         `json:"config_hash"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  *time.Time     `json:"finished_at,omitempty"`
	Stats       pipeline.Stats `json:"stats"`
}

type runDetail struct {
	runView
	Results []evidence.FusionResult `json:"results"`
}

func newRunView(r ledger.Run) runView {
	return runView{
		ID:          r.ID,
		Institution: r.Institution,
		Status:      r.Status,
		ConfigHash:  r.ConfigHash,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
		Stats:       r.Stats,
	}
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLedger(func(store *ledger.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				views := make([]runView, 0, len(runs))
				for _, r := range runs {
					views = append(views, newRunView(r))
				}
				if ctx.jsonOutput(cmd) {
					return writeJSON(cmd, views)
				}
				if len(views) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderRuns(runs))
				return nil
			})
		},
	}
	runsCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")

	runsCmd.AddCommand(newRunsShowCommand(ctx))
	return runsCmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the fused results of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLedger(func(store *ledger.Store) error {
				run, err := store.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %s not found", args[0])
				}
				results, err := store.Results(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				if ctx.jsonOutput(cmd) {
					return writeJSON(cmd, runDetail{runView: newRunView(*run), Results: results})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderRuns([]ledger.Run{*run}))
				fmt.Fprintln(out, renderResults(results))
				return nil
			})
		},
	}
}

func renderRuns(runs []ledger.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		started := r.StartedAt
		rows = append(rows, []string{
			r.ID,
			r.Institution,
			r.Status,
			formatTime(&started),
			formatDuration(r.Duration()),
			strconv.Itoa(r.Stats.Accepted),
			strconv.Itoa(r.Stats.Quarantined + r.Stats.Rejected),
			strconv.Itoa(r.Stats.Matched),
			strconv.Itoa(r.Stats.Conflicts),
		})
	}
	return renderTable(
		[]string{"Run", "Institution", "Status", "Started", "Duration", "Accepted", "Quarantined", "Matched", "Conflicts"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	)
}
