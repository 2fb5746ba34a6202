package domain

import "context"

// LineSource produces the raw guide text lines in source order. The pipeline
// does not care how the lines were obtained, only that order is preserved.
type LineSource interface {
	Lines(ctx context.Context) ([]string, error)
}

// Enricher fills attraction text into a set of destinations. Every
// destination must leave with non-empty text in both languages, whether the
// text came from the model or from the deterministic fallback. Enrichment is
// one-shot: the pipeline never hands the same destination in twice.
type Enricher interface {
	Enrich(ctx context.Context, dests []*Destination) EnrichmentStats
}

// RunRecorder persists run summaries for later inspection.
type RunRecorder interface {
	Record(ctx context.Context, stats RunStats) error
}
