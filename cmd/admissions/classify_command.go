package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"admissions/internal/evidence"
	"admissions/internal/validator"
)

type classifyRow struct {
	Position int                 `json:"position"`
	Kind     evidence.SourceKind `json:"kind"`
	Text     string              `json:"text"`
	Verdict  evidence.Verdict    `json:"verdict"`
	Reason   evidence.ReasonCode `json:"reason,omitempty"`
	Class    evidence.Class      `json:"class,omitempty"`
	Stage    evidence.Stage      `json:"stage,omitempty"`
	Detail   string              `json:"detail,omitempty"`
	Entity   *evidence.Entity    `json:"entity,omitempty"`
}

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <bundle>",
		Short: "Show the validator verdict for every candidate in a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBundle(args[0])
			if err != nil {
				return err
			}
			p, err := newPipeline(ctx)
			if err != nil {
				return err
			}
			rows := classifyAll(p.Validator(), b.Candidates)
			if ctx.jsonOutput(cmd) {
				return writeJSON(cmd, rows)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderClassification(rows))
			return nil
		},
	}
}

func classifyAll(v *validator.Validator, candidates []evidence.RawCandidate) []classifyRow {
	rows := make([]classifyRow, 0, len(candidates))
	for _, c := range candidates {
		d := v.Classify(c)
		rows = append(rows, classifyRow{
			Position: c.Position,
			Kind:     c.Kind,
			Text:     c.Text,
			Verdict:  d.Verdict,
			Reason:   d.Reason,
			Class:    evidence.ClassOf(d.Reason),
			Stage:    d.Stage,
			Detail:   d.Detail,
			Entity:   d.Entity,
		})
	}
	return rows
}

func renderClassification(rows []classifyRow) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		name := ""
		if r.Entity != nil {
			name = r.Entity.Name
		}
		cells = append(cells, []string{
			strconv.Itoa(r.Position),
			string(r.Kind),
			string(r.Verdict),
			string(r.Reason),
			string(r.Stage),
			r.Text,
			name,
		})
	}
	return renderTable(
		[]string{"Pos", "Kind", "Verdict", "Reason", "Stage", "Text", "Name"},
		cells,
		[]columnAlignment{alignRight},
	)
}
