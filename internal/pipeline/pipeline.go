package pipeline

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"admissions/internal/config"
	"admissions/internal/evidence"
	"admissions/internal/fusion"
	"admissions/internal/identity"
	"admissions/internal/logging"
	"admissions/internal/ranker"
	"admissions/internal/validator"
)

// Pipeline wires the validator, ranker and fusion engine from one immutable
// configuration.
type Pipeline struct {
	validator  *validator.Validator
	ranker     *ranker.Ranker
	engine     *fusion.Engine
	ranking    config.Ranking
	workers    int
	configHash string
	logger     *slog.Logger

	now   func() time.Time
	newID func() string
}

// New builds a Pipeline from cfg. The configuration is read once and never
// consulted again.
func New(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: nil config")
	}
	hash, err := cfg.Hash()
	if err != nil {
		return nil, fmt.Errorf("hash config: %w", err)
	}
	ranking := cfg.Ranking
	if ranking.TargetYear == 0 {
		ranking.TargetYear = time.Now().Year()
	}
	workers := cfg.Fusion.Workers
	if workers < 1 {
		workers = 1
	}
	base := logging.NewComponentLogger(logger, "pipeline")
	resolver := identity.NewResolver(cfg.Identity.LoadBearingParams)
	return &Pipeline{
		validator:  validator.New(validator.RulesFromConfig(cfg.Validation), resolver, logger),
		ranker:     ranker.New(ranker.PolicyFromConfig(ranking)),
		engine:     fusion.New(fusion.PolicyFromConfig(cfg.Fusion), logger),
		ranking:    ranking,
		workers:    workers,
		configHash: hash,
		logger:     base,
		now:        time.Now,
		newID:      uuid.NewString,
	}, nil
}

// Validator returns the validator used by runs.
func (p *Pipeline) Validator() *validator.Validator {
	return p.validator
}

// partition is the per-faculty working set.
type partition struct {
	faculty  string
	entities []int
	docs     []evidence.PDFCandidate

	ranked  []evidence.PDFCandidate
	results []evidence.FusionResult
}

// Run classifies, ranks and fuses candidates. Documents are extra link
// candidates discovered outside the candidate list; they are ranked with the
// rest of their faculty's documents. Run only fails when ctx is cancelled;
// bad input never stops a run.
func (p *Pipeline) Run(ctx context.Context, institution string, candidates []evidence.RawCandidate, documents ...evidence.PDFCandidate) (*Report, error) {
	report := &Report{
		RunID:       p.newID(),
		Institution: institution,
		ConfigHash:  p.configHash,
		StartedAt:   p.now().UTC(),
	}
	ctx = logging.WithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, p.logger).With(logging.String(logging.FieldInstitution, institution))
	logger.Info("run started", logging.Int("candidates", len(candidates)))

	v := p.validator.WithRunID(report.RunID)
	var entities []evidence.Entity
	var docs []evidence.PDFCandidate
	for _, c := range candidates {
		d := v.Classify(c)
		switch d.Verdict {
		case evidence.Reject:
			report.Stats.Rejected++
		case evidence.Quarantine:
			report.Stats.Quarantined++
		}
		if rec, ok := d.Record(report.RunID); ok {
			report.Quarantine = append(report.Quarantine, rec)
			continue
		}
		report.Stats.Accepted++
		if d.PDF != nil {
			docs = append(docs, *d.PDF)
			if d.PDF.Row != nil {
				report.Stats.Rows++
			}
		}
		if !c.Kind.IsPDF() {
			entities = append(entities, *d.Entity)
		}
	}
	report.Stats.Candidates = len(candidates)
	docs = append(docs, documents...)

	merged := fusion.MergeDuplicates(entities)
	report.Stats.Entities = len(merged)
	parts := partitionByFaculty(merged, docs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, part := range parts {
		g.Go(func() error {
			pctx := logging.WithFaculty(gctx, part.faculty)
			if err := pctx.Err(); err != nil {
				return err
			}
			p.fusePartition(part, merged)
			logging.WithContext(pctx, p.logger).Debug("partition fused",
				logging.Int("entities", len(part.entities)),
				logging.Int("documents", len(part.docs)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		report.Status = StatusFailed
		report.FinishedAt = p.now().UTC()
		logger.Warn("run aborted", logging.Error(err))
		return report, fmt.Errorf("run %s: %w", report.RunID, err)
	}

	report.Results = make([]evidence.FusionResult, len(merged))
	for _, part := range parts {
		for i, idx := range part.entities {
			report.Results[idx] = part.results[i]
		}
		report.Partitions = append(report.Partitions, Partition{
			Faculty:    part.faculty,
			TargetYear: p.ranking.TargetYear,
			Ranked:     part.ranked,
		})
		report.Stats.Documents += len(part.ranked)
	}
	for _, r := range report.Results {
		if r.Match != nil {
			report.Stats.Matched++
		}
		if r.Conflict {
			report.Stats.Conflicts++
		}
	}

	report.Status = StatusCompleted
	report.FinishedAt = p.now().UTC()
	logger.Info("run finished",
		logging.Int("accepted", report.Stats.Accepted),
		logging.Int("rejected", report.Stats.Rejected),
		logging.Int("quarantined", report.Stats.Quarantined),
		logging.Int("matched", report.Stats.Matched),
		logging.Int("conflicts", report.Stats.Conflicts),
		logging.Duration("duration", report.Duration()),
	)
	return report, nil
}

func (p *Pipeline) fusePartition(part *partition, merged []fusion.Merged) {
	ctx := ranker.ContextFromConfig(p.ranking, part.faculty)
	part.ranked = p.ranker.Rank(part.docs, ctx)

	entities := make([]evidence.Entity, len(part.entities))
	for i, idx := range part.entities {
		entities[i] = merged[idx].Entity
	}
	part.results = p.engine.Fuse(entities, part.ranked)
	for i, idx := range part.entities {
		m := merged[idx]
		if len(m.Alternates) == 0 && !m.Conflict {
			continue
		}
		r := &part.results[i]
		r.Alternates = append(slices.Clone(m.Alternates), r.Alternates...)
		r.Conflict = r.Conflict || m.Conflict
	}
}

// partitionByFaculty groups entities (by index into merged) and documents by
// faculty slug. Partitions are ordered by slug.
func partitionByFaculty(merged []fusion.Merged, docs []evidence.PDFCandidate) []*partition {
	byFaculty := make(map[string]*partition)
	get := func(faculty string) *partition {
		part, ok := byFaculty[faculty]
		if !ok {
			part = &partition{faculty: faculty}
			byFaculty[faculty] = part
		}
		return part
	}
	for i, m := range merged {
		part := get(m.Entity.Faculty)
		part.entities = append(part.entities, i)
	}
	for _, d := range docs {
		part := get(d.Faculty)
		part.docs = append(part.docs, d)
	}
	parts := make([]*partition, 0, len(byFaculty))
	for _, part := range byFaculty {
		parts = append(parts, part)
	}
	slices.SortFunc(parts, func(a, b *partition) int {
		return cmp.Compare(a.faculty, b.faculty)
	})
	return parts
}
