package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for fusion run identifiers.
	FieldRunID = "run_id"
	// FieldFaculty is the standardized structured logging key for faculty slugs.
	FieldFaculty = "faculty"
	// FieldInstitution is the standardized structured logging key for institution codes.
	FieldInstitution = "institution"
	// FieldVerdict is the structured logging key for validator verdicts.
	FieldVerdict = "verdict"
	// FieldReason is the structured logging key for reason codes.
	FieldReason = "reason"
	// FieldStage is the structured logging key for validator stages.
	FieldStage     = "stage"
	FieldSourceURL = "source_url"
)

type contextKey int

const (
	runIDKey contextKey = iota
	facultyKey
)

// WithRunID tags ctx with a run identifier.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(runIDKey).(string)
	return v, ok && v != ""
}

// WithFaculty tags ctx with the faculty slug being processed.
func WithFaculty(ctx context.Context, faculty string) context.Context {
	return context.WithValue(ctx, facultyKey, faculty)
}

// FacultyFromContext returns the faculty slug stored by WithFaculty.
func FacultyFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(facultyKey).(string)
	return v, ok && v != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if faculty, ok := FacultyFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldFaculty, faculty))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
