package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"admissions/internal/evidence"
)

const quarantineColumns = "run_id, text, verdict, reason, stage, detail, source_url, kind, position"

func insertQuarantine(ctx context.Context, tx *sql.Tx, runID string, rec evidence.QuarantineRecord, at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO quarantine (`+quarantineColumns+`, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		rec.Text,
		string(rec.Verdict),
		string(rec.Reason),
		string(rec.Stage),
		nullableString(rec.Detail),
		nullableString(rec.SourceURL),
		string(rec.Kind),
		rec.Position,
		nullableTime(at),
	); err != nil {
		return fmt.Errorf("insert quarantine record: %w", err)
	}
	return nil
}

// Quarantine returns the quarantine records of runID in insertion order. An
// empty runID returns records of every run.
func (s *Store) Quarantine(ctx context.Context, runID string) ([]evidence.QuarantineRecord, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + quarantineColumns + ` FROM quarantine`
	args := []any{}
	if runID != "" {
		query += " WHERE run_id = ?"
		args = append(args, runID)
	}
	query += " ORDER BY id"
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quarantine: %w", err)
	}
	defer rows.Close()

	var records []evidence.QuarantineRecord
	for rows.Next() {
		var (
			rec       evidence.QuarantineRecord
			verdict   string
			reason    string
			stage     string
			detail    sql.NullString
			sourceURL sql.NullString
			kind      string
		)
		if err := rows.Scan(&rec.RunID, &rec.Text, &verdict, &reason, &stage, &detail, &sourceURL, &kind, &rec.Position); err != nil {
			return nil, fmt.Errorf("scan quarantine record: %w", err)
		}
		rec.Verdict = evidence.Verdict(verdict)
		rec.Reason = evidence.ReasonCode(reason)
		rec.Stage = evidence.Stage(stage)
		rec.Detail = detail.String
		rec.SourceURL = sourceURL.String
		rec.Kind = evidence.SourceKind(kind)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Alternates returns the values that lost arbitration for an entity in a run.
func (s *Store) Alternates(ctx context.Context, runID string, id evidence.ID) ([]evidence.AlternateValue, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT field, value, source_id, source_url, confidence FROM alternates
         WHERE run_id = ? AND entity_id = ? ORDER BY id`, runID, string(id))
	if err != nil {
		return nil, fmt.Errorf("query alternates: %w", err)
	}
	defer rows.Close()

	var alts []evidence.AlternateValue
	for rows.Next() {
		var (
			alt       evidence.AlternateValue
			field     string
			source    string
			sourceURL sql.NullString
		)
		if err := rows.Scan(&field, &alt.Value, &source, &sourceURL, &alt.Confidence); err != nil {
			return nil, fmt.Errorf("scan alternate: %w", err)
		}
		alt.Field = evidence.Field(field)
		alt.Source = evidence.ID(source)
		alt.SourceURL = sourceURL.String
		alts = append(alts, alt)
	}
	return alts, rows.Err()
}
