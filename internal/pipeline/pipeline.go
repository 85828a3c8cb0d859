package pipeline

import (
	"context"
	"log/slog"
	"time"

	"enroll340b/internal/config"
	"enroll340b/pkg/contracts/domain"
)

// Pipeline runs the normalize -> filter -> dedup -> project stages over a
// loaded dataset. Each stage produces a new view; nothing is mutated in
// place.
type Pipeline struct {
	cfg    config.PipelineConfig
	logger *slog.Logger
}

// New creates a Pipeline with the given settings
func New(cfg config.PipelineConfig, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// Result is the cleaned, projected dataset plus full run accounting
type Result struct {
	Projection Projection
	Rows       []domain.Row
	Summary    domain.RunSummary
}

// RootIDs returns the final output's dedup keys, for reference comparison
func (r *Result) RootIDs() []string {
	ids := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		ids[i] = row.RootID
	}
	return ids
}

// Run executes all stages against a loaded dataset. runDate is the cutoff
// for the active-contract filter, captured once by the caller.
func (p *Pipeline) Run(ctx context.Context, ds *domain.Dataset, runDate time.Time) *Result {
	normalized := Normalize(ds.Rows)

	filter := Filter{
		Prefixes:       p.cfg.Prefixes,
		RunDate:        runDate,
		IncludeExpired: p.cfg.IncludeExpired,
	}
	filtered := filter.Apply(normalized)

	p.logger.InfoContext(ctx, "filtered rows",
		slog.Int("loaded", len(normalized)),
		slog.Int("dropped_by_prefix", filtered.DroppedByPrefix),
		slog.Int("dropped_expired", filtered.DroppedExpired))

	deduped := Deduplicate(filtered.Rows, domain.DedupPolicy(p.cfg.DedupPolicy))

	p.logger.InfoContext(ctx, "deduplicated rows",
		slog.Int("duplicate_groups", deduped.DuplicateGroups),
		slog.Int("dropped_losers", deduped.DroppedRows),
		slog.Int("final_rows", len(deduped.Rows)))

	mode := domain.ProjectionCurated
	if p.cfg.KeepAllColumns {
		mode = domain.ProjectionAllColumns
	}

	return &Result{
		Projection: Project(deduped.Rows, ds.Columns, mode),
		Rows:       deduped.Rows,
		Summary: domain.RunSummary{
			RunDate:         runDate,
			RowsLoaded:      len(ds.Rows),
			DroppedByPrefix: filtered.DroppedByPrefix,
			DroppedExpired:  filtered.DroppedExpired,
			DuplicateGroups: deduped.DuplicateGroups,
			DroppedDedup:    deduped.DroppedRows,
			FinalRows:       len(deduped.Rows),
		},
	}
}
