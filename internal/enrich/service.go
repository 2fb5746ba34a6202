package enrich

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adventureatlas/guide-extractor/internal/domain"
)

// DefaultBatchSize is the number of destinations combined into one prompt.
const DefaultBatchSize = 5

// Generator is the text-generation endpoint consumed by the service.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Probe(ctx context.Context) error
}

// BatchState tracks a batch through its lifecycle. Fulfilled and Fallback are
// both terminal; a batch never moves again once it reaches either.
type BatchState string

const (
	BatchPending   BatchState = "pending"
	BatchRequested BatchState = "requested"
	BatchFulfilled BatchState = "fulfilled"
	BatchFallback  BatchState = "fallback"
)

// Service batches destinations and enriches them through a Generator. It
// satisfies domain.Enricher. Stats updates go through a mutex so callers may
// fan batches out concurrently, though the service itself runs them in
// arrival order.
type Service struct {
	gen       Generator
	batchSize int
	logger    zerolog.Logger

	// OnBatchDone, when set, is called after each batch reaches a terminal
	// state with the number of destinations finished so far and the total.
	OnBatchDone func(done, total int)

	mu    sync.Mutex
	stats domain.EnrichmentStats
}

// NewService creates an enrichment service. batchSize <= 0 selects the
// default.
func NewService(gen Generator, batchSize int, logger zerolog.Logger) *Service {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Service{
		gen:       gen,
		batchSize: batchSize,
		logger:    logger.With().Str("component", "enrich").Logger(),
	}
}

// Enrich fills attraction text into every destination, in fixed-size batches
// in arrival order. A single connectivity probe runs before the first batch;
// if it fails, no requests are issued and every destination receives
// fallback text. Every destination leaves with non-empty text in both
// languages regardless of service availability.
func (s *Service) Enrich(ctx context.Context, dests []*domain.Destination) domain.EnrichmentStats {
	pending := make([]*domain.Destination, 0, len(dests))
	for _, d := range dests {
		if d.Enriched() {
			// One-shot invariant: never touch text that is already set.
			s.logger.Warn().Int("id", d.ID).Msg("destination already enriched, skipping")
			continue
		}
		pending = append(pending, d)
	}

	s.addRequested(len(pending))
	if len(pending) == 0 {
		return s.snapshot()
	}

	if err := s.gen.Probe(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("enrichment service unreachable, falling back for all destinations")
		s.fallbackAll(pending)
		if s.OnBatchDone != nil {
			s.OnBatchDone(len(pending), len(pending))
		}
		return s.snapshot()
	}

	total := len(pending)
	done := 0
	for start := 0; start < total; start += s.batchSize {
		end := start + s.batchSize
		if end > total {
			end = total
		}
		batch := pending[start:end]

		state := s.processBatch(ctx, batch)
		s.logger.Debug().
			Int("size", len(batch)).
			Str("state", string(state)).
			Msg("batch finished")

		done += len(batch)
		if s.OnBatchDone != nil {
			s.OnBatchDone(done, total)
		}
	}

	return s.snapshot()
}

// Stats returns a copy of the accumulated statistics.
func (s *Service) Stats() domain.EnrichmentStats {
	return s.snapshot()
}

// processBatch drives one batch from Pending to a terminal state. A failed
// request affects only this batch's members.
func (s *Service) processBatch(ctx context.Context, batch []*domain.Destination) BatchState {
	prompt := buildBatchPrompt(batch)

	response, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Int("size", len(batch)).Msg("batch generation failed, falling back")
		s.addBatchFailure()
		s.fallbackAll(batch)
		return BatchFallback
	}

	segments := parseBatchResponse(response)
	fulfilled := 0
	for i, d := range batch {
		seg, ok := matchSegment(segments, d.Location, i, len(batch))
		if !ok {
			// Isolated miss: one malformed segment does not invalidate the
			// rest of the batch.
			s.applyFallback(d)
			continue
		}
		d.MainAttractionEn = seg.English
		d.MainAttractionFr = seg.French
		s.addFulfilled(1)
		fulfilled++
	}

	if fulfilled == 0 {
		return BatchFallback
	}
	return BatchFulfilled
}

// fallbackAll applies fallback text to every destination in the slice.
func (s *Service) fallbackAll(dests []*domain.Destination) {
	for _, d := range dests {
		s.applyFallback(d)
	}
}

func (s *Service) applyFallback(d *domain.Destination) {
	d.MainAttractionEn = FallbackEn(d.Location)
	d.MainAttractionFr = FallbackFr(d.Location)
	s.addFellBack(1)
}

// FallbackEn is the deterministic English description used when the model
// cannot supply one.
func FallbackEn(location string) string {
	return fmt.Sprintf("Discover the unique charm of %s.", location)
}

// FallbackFr is the French counterpart of FallbackEn.
func FallbackFr(location string) string {
	return fmt.Sprintf("Découvrez le charme unique de %s.", location)
}

// buildBatchPrompt combines all batch members into a single prompt. The
// requested output format is one line per location so the response can be
// split back apart.
func buildBatchPrompt(batch []*domain.Destination) string {
	var b strings.Builder
	b.WriteString("Generate brief, engaging descriptions of the main attractions for these travel destinations.\n\nLocations:\n")
	for _, d := range batch {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", d.Location, d.Country, d.Region)
	}
	fmt.Fprintf(&b, `
For each location, provide the response in this exact format:
[Location Name]: English: [Brief description in English] | French: [Brief description in French]

Keep each description concise (1-2 sentences) and focus on what makes each destination unique and appealing to travelers.

Please provide exactly %d responses, one for each location listed above.

Example format:
Paris: English: Discover the iconic Eiffel Tower and charming cafes along the Seine River | French: Découvrez la tour Eiffel emblématique et les charmants cafés le long de la Seine
`, len(batch))
	return b.String()
}

func (s *Service) addRequested(n int) {
	s.mu.Lock()
	s.stats.Requested += n
	s.mu.Unlock()
}

func (s *Service) addFulfilled(n int) {
	s.mu.Lock()
	s.stats.Fulfilled += n
	s.mu.Unlock()
}

func (s *Service) addFellBack(n int) {
	s.mu.Lock()
	s.stats.FellBack += n
	s.mu.Unlock()
}

func (s *Service) addBatchFailure() {
	s.mu.Lock()
	s.stats.BatchFailures++
	s.mu.Unlock()
}

func (s *Service) snapshot() domain.EnrichmentStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
