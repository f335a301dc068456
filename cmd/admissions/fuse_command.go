package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"admissions/internal/adapter"
	"admissions/internal/bundle"
	"admissions/internal/evidence"
	"admissions/internal/language"
	"admissions/internal/ledger"
	"admissions/internal/pipeline"
)

func newFuseCommand(ctx *commandContext) *cobra.Command {
	var noRecord bool

	cmd := &cobra.Command{
		Use:   "fuse <bundle>",
		Short: "Validate, rank and fuse an evidence bundle",
		Long: "Run an evidence bundle (YAML or JSON) through the validator, PDF ranker\n" +
			"and fusion engine, record the run in the ledger, and print the fused results.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runBundle(cmd, ctx, args[0])
			if err != nil {
				return err
			}
			if !noRecord {
				err := ctx.withLedger(func(store *ledger.Store) error {
					return store.RecordRun(cmd.Context(), report)
				})
				if err != nil {
					return fmt.Errorf("record run: %w", err)
				}
			}
			if ctx.jsonOutput(cmd) {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderResults(report.Results))
			fmt.Fprintln(out, summarizeReport(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noRecord, "no-record", false, "Do not record the run in the ledger")
	return cmd
}

// runBundle loads a bundle and runs it through a pipeline built from the
// command's configuration.
func runBundle(cmd *cobra.Command, ctx *commandContext, path string) (*pipeline.Report, error) {
	b, err := loadBundle(path)
	if err != nil {
		return nil, err
	}
	p, err := newPipeline(ctx)
	if err != nil {
		return nil, err
	}
	return p.Run(cmd.Context(), b.Institution, b.Candidates, b.DocumentCandidates()...)
}

func newPipeline(ctx *commandContext) (*pipeline.Pipeline, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	return pipeline.New(cfg, logger)
}

// loadBundle reads a bundle and checks that its institution is registered.
func loadBundle(path string) (*bundle.Bundle, error) {
	b, err := bundle.Load(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(b.Institution) == "" {
		return nil, errors.New("bundle does not name an institution")
	}
	if _, err := adapter.Lookup(b.Institution); err != nil {
		return nil, err
	}
	return b, nil
}

func renderResults(results []evidence.FusionResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		e := r.Entity
		conflict := ""
		if r.Conflict {
			conflict = "yes"
		}
		rows = append(rows, []string{
			e.Name,
			string(e.Level),
			e.Faculty,
			language.DisplayName(language.Effective(e.Language)),
			formatInt(e.Budget),
			formatInt(e.Fee),
			string(e.Source),
			formatScore(e.Confidence),
			conflict,
		})
	}
	return renderTable(
		[]string{"Name", "Level", "Faculty", "Language", "Budget", "Fee", "Source", "Confidence", "Conflict"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignRight, alignLeft},
	)
}

func summarizeReport(r *pipeline.Report) string {
	s := r.Stats
	return fmt.Sprintf(
		"Run %s (%s): %d candidates, %d accepted, %d rejected, %d quarantined, %d matched, %d conflicts in %s",
		r.RunID, r.Institution, s.Candidates, s.Accepted, s.Rejected, s.Quarantined, s.Matched, s.Conflicts,
		formatDuration(r.Duration()),
	)
}
