package main

import (
	"encoding/json"
	"errors"
	"testing"

	"admissions/internal/adapter"
	"admissions/internal/bundle"
	"admissions/internal/evidence"
	"admissions/internal/pipeline"
	"admissions/internal/testsupport"
)

func TestFuseRecordsRunAndPrintsJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeBundle(t, env.baseDir, sampleBundle)

	out, _, err := runCLI(t, []string{"fuse", path}, env.configPath)
	if err != nil {
		t.Fatalf("fuse: %v", err)
	}
	var report pipeline.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Status != pipeline.StatusCompleted || report.Institution != "ucv" {
		t.Fatalf("unexpected report header %+v", report)
	}
	if len(report.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(report.Results))
	}
	calc := report.Results[0].Entity
	if calc.Budget == nil || *calc.Budget != 30 || calc.Fee == nil || *calc.Fee != 5 || calc.Source != evidence.SourcePDF {
		t.Fatalf("expected pdf values fused, got %+v", calc)
	}
	if report.Stats.Rejected != 1 || report.Stats.Documents != 2 {
		t.Fatalf("unexpected stats %+v", report.Stats)
	}

	out, _, err = runCLI(t, []string{"runs", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	var runs []runView
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != report.RunID || runs[0].Stats != report.Stats {
		t.Fatalf("unexpected runs %+v", runs)
	}

	out, _, err = runCLI(t, []string{"runs", "show", report.RunID}, env.configPath)
	if err != nil {
		t.Fatalf("runs show: %v", err)
	}
	var detail runDetail
	if err := json.Unmarshal([]byte(out), &detail); err != nil {
		t.Fatalf("decode run detail: %v", err)
	}
	if len(detail.Results) != 1 || detail.Results[0].Entity.ID != calc.ID {
		t.Fatalf("unexpected run detail %+v", detail)
	}

	out, _, err = runCLI(t, []string{"quarantine"}, env.configPath)
	if err != nil {
		t.Fatalf("quarantine: %v", err)
	}
	var records []evidence.QuarantineRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode quarantine: %v", err)
	}
	if len(records) != 1 || records[0].Reason != evidence.ReasonNoise || records[0].RunID != report.RunID {
		t.Fatalf("unexpected quarantine %+v", records)
	}
}

func TestFuseNoRecordLeavesLedgerEmpty(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeBundle(t, env.baseDir, sampleBundle)

	if _, _, err := runCLI(t, []string{"fuse", "--no-record", path}, env.configPath); err != nil {
		t.Fatalf("fuse: %v", err)
	}
	out, _, err := runCLI(t, []string{"quarantine"}, env.configPath)
	if err != nil {
		t.Fatalf("quarantine: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestRunsShowMissing(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"runs", "show", "nope"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown run")
	}
	requireContains(t, err.Error(), "not found")
}

func TestFuseRejectsUnknownInstitution(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeBundle(t, env.baseDir, "institution: upb\ncandidates: []\n")

	_, _, err := runCLI(t, []string{"fuse", path}, env.configPath)
	if !errors.Is(err, adapter.ErrUnknownInstitution) {
		t.Fatalf("expected ErrUnknownInstitution, got %v", err)
	}
}

func TestFuseRequiresInstitution(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeBundle(t, env.baseDir, "candidates: []\n")

	if _, _, err := runCLI(t, []string{"fuse", path}, env.configPath); err == nil {
		t.Fatal("expected error for bundle without institution")
	}
}

func TestClassifyListsVerdicts(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeBundle(t, env.baseDir, sampleBundle)

	out, _, err := runCLI(t, []string{"classify", path}, env.configPath)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	var rows []classifyRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	want := []evidence.Verdict{evidence.Accept, evidence.Reject, evidence.Accept}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, w := range want {
		if rows[i].Verdict != w {
			t.Fatalf("row %d verdict = %s, want %s", i, rows[i].Verdict, w)
		}
	}
	if rows[1].Class != evidence.ClassSemanticNoise {
		t.Fatalf("expected noise class, got %q", rows[1].Class)
	}
}

func TestRankOrdersSeatTableFirst(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeBundle(t, env.baseDir, sampleBundle)

	out, _, err := runCLI(t, []string{"rank", path}, env.configPath)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	var parts []pipeline.Partition
	if err := json.Unmarshal([]byte(out), &parts); err != nil {
		t.Fatalf("decode partitions: %v", err)
	}
	if len(parts) != 1 || len(parts[0].Ranked) != 2 {
		t.Fatalf("unexpected partitions %+v", parts)
	}
	if parts[0].Ranked[0].DocumentURL() != "https://ace.ucv.ro/docs/cifra-2026.pdf" {
		t.Fatalf("expected seat table first, got %s", parts[0].Ranked[0].DocumentURL())
	}
	if parts[0].Ranked[1].DocType != evidence.DocGuide {
		t.Fatalf("expected guide last, got %q", parts[0].Ranked[1].DocType)
	}
}

func TestRenderResultsTable(t *testing.T) {
	results := []evidence.FusionResult{{
		Entity: evidence.Entity{
			Name:       "Calculatoare",
			Level:      evidence.LevelBachelor,
			Faculty:    "ace",
			Budget:     evidence.Int(30),
			Source:     evidence.SourcePDF,
			Confidence: 0.9,
		},
		Conflict: true,
	}}
	out := renderResults(results)
	// go-pretty upper-cases headers.
	for _, want := range []string{"Calculatoare", "bachelor", "Romanian", "30", "0.90", "yes", "BUDGET", "LANGUAGE"} {
		requireContains(t, out, want)
	}
}

func TestFuseReadsJSONBundle(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteBundle(t, env.baseDir, "bundle.json", &bundle.Bundle{
		Institution: "ucv",
		Candidates: []evidence.RawCandidate{{
			Kind:      evidence.KindHTMLListItem,
			Text:      "Automatică și Informatică Aplicată – 40 locuri la buget",
			SourceURL: "https://ace.ucv.ro/licenta",
			Faculty:   "ace",
			Level:     evidence.LevelBachelor,
		}},
	})

	out, _, err := runCLI(t, []string{"fuse", "--no-record", "--json", path}, env.configPath)
	if err != nil {
		t.Fatalf("fuse: %v", err)
	}
	var report pipeline.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Results) != 1 || report.Results[0].Match != nil {
		t.Fatalf("expected one unmatched result, got %+v", report.Results)
	}
	got := report.Results[0].Entity
	if got.Budget == nil || *got.Budget != 40 || got.Source != evidence.SourceHTML {
		t.Fatalf("expected html budget kept, got %+v", got)
	}
}
