package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"admissions/internal/evidence"
	"admissions/internal/pipeline"
)

const runColumns = "id, institution, status, config_hash, started_at, finished_at, stats_json"

// RecordRun appends a report (manifest, results, alternates and quarantine)
// in one transaction. Recording the same run twice fails.
func (s *Store) RecordRun(ctx context.Context, report *pipeline.Report) error {
	if report == nil || report.RunID == "" {
		return errors.New("record run: report has no run id")
	}
	ctx = ensureContext(ctx)
	stats, err := json.Marshal(report.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin run tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			report.RunID,
			report.Institution,
			report.Status,
			report.ConfigHash,
			nullableTime(report.StartedAt),
			nullableTime(report.FinishedAt),
			string(stats),
		); err != nil {
			return fmt.Errorf("insert run %s: %w", report.RunID, err)
		}
		for i, result := range report.Results {
			if err := insertResult(ctx, tx, report.RunID, i, result); err != nil {
				return err
			}
		}
		for _, rec := range report.Quarantine {
			if err := insertQuarantine(ctx, tx, report.RunID, rec, report.FinishedAt); err != nil {
				return err
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit run %s: %w", report.RunID, err)
		}
		return nil
	})
}

func insertResult(ctx context.Context, tx *sql.Tx, runID string, position int, result evidence.FusionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	sources, err := json.Marshal(result.Sources)
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}
	e := result.Entity
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO results (
            run_id, position, entity_id, name, level, faculty, faculty_id,
            budget, fee, confidence, source, conflict, sources_json, raw_text, result_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		position,
		string(e.ID),
		e.Name,
		string(e.Level),
		e.Faculty,
		nullableString(string(e.FacultyID)),
		nullableInt(e.Budget),
		nullableInt(e.Fee),
		e.Confidence,
		string(e.Source),
		boolToInt(result.Conflict),
		string(sources),
		nullableStringPtr(e.RawText),
		string(payload),
	); err != nil {
		return fmt.Errorf("insert result %s: %w", e.ID, err)
	}
	for _, alt := range result.Alternates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO alternates (run_id, entity_id, field, value, source_id, source_url, confidence)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID,
			string(e.ID),
			string(alt.Field),
			alt.Value,
			string(alt.Source),
			nullableString(alt.SourceURL),
			alt.Confidence,
		); err != nil {
			return fmt.Errorf("insert alternate for %s: %w", e.ID, err)
		}
	}
	return nil
}

// ListRuns returns the most recent runs first. A non-positive limit returns
// every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun returns the run with id, or nil when it does not exist.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// LatestRunID returns the id of the most recently started run, or "".
func (s *Store) LatestRunID(ctx context.Context) (string, error) {
	runs, err := s.ListRuns(ctx, 1)
	if err != nil || len(runs) == 0 {
		return "", err
	}
	return runs[0].ID, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run        Run
		startedRaw string
		finished   sql.NullString
		statsRaw   string
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Institution,
		&run.Status,
		&run.ConfigHash,
		&startedRaw,
		&finished,
		&statsRaw,
	); err != nil {
		return nil, err
	}
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	run.FinishedAt = nullTimePtr(finished)
	if err := json.Unmarshal([]byte(statsRaw), &run.Stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return &run, nil
}

// Results returns the fused results of a run in their original order.
func (s *Store) Results(ctx context.Context, runID string) ([]evidence.FusionResult, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT result_json FROM results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []evidence.FusionResult
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		var result evidence.FusionResult
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// EntityHistory returns every recorded result for an entity identifier,
// oldest run first. Identifiers are stable across runs, so this is the
// per-program audit trail.
func (s *Store) EntityHistory(ctx context.Context, id evidence.ID) ([]evidence.FusionResult, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.result_json FROM results r JOIN runs ON runs.id = r.run_id
         WHERE r.entity_id = ? ORDER BY runs.started_at, runs.id`, string(id))
	if err != nil {
		return nil, fmt.Errorf("query entity history: %w", err)
	}
	defer rows.Close()

	var results []evidence.FusionResult
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		var result evidence.FusionResult
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
