// Package pipeline owns the end-to-end extraction sequence: raw lines in,
// assembled chapters and run statistics out.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adventureatlas/guide-extractor/internal/chapters"
	"github.com/adventureatlas/guide-extractor/internal/domain"
	"github.com/adventureatlas/guide-extractor/internal/enrich"
	"github.com/adventureatlas/guide-extractor/internal/parse"
)

// State is the orchestrator's position in the run.
type State string

const (
	StateIdle       State = "idle"
	StateParsing    State = "parsing"
	StateEnriching  State = "enriching"
	StateAssembling State = "assembling"
	StateDone       State = "done"
)

// EventType represents the type of stream event.
type EventType string

const (
	EventStart        EventType = "start"
	EventStateChange  EventType = "state_change"
	EventParseFailure EventType = "parse_failure"
	EventError        EventType = "error"
	EventComplete     EventType = "complete"
)

// StreamEvent is emitted during processing so a CLI can display progress
// without the pipeline knowing about terminals.
type StreamEvent struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Result is everything a run produces. Failures and statistics are available
// regardless of how many lines or batches succeeded.
type Result struct {
	Chapters     []*domain.Chapter
	Destinations []*domain.Destination
	Failures     []*domain.ParseFailure
	Stats        domain.RunStats
}

// Service drives one run: parse all lines, enrich all destinations, assemble
// chapters. Per-line and per-batch failures never abort the run; the only
// fatal condition is an unobtainable source.
type Service struct {
	source   domain.LineSource
	parser   *parse.Parser
	enricher domain.Enricher
	meta     chapters.Metadata
	logger   zerolog.Logger

	state State
}

// NewService wires a pipeline. A nil enricher skips the service entirely and
// stamps deterministic fallback text, so destinations never leave without
// descriptions.
func NewService(source domain.LineSource, parser *parse.Parser, enricher domain.Enricher, meta chapters.Metadata, logger zerolog.Logger) *Service {
	return &Service{
		source:   source,
		parser:   parser,
		enricher: enricher,
		meta:     meta,
		logger:   logger.With().Str("component", "pipeline").Logger(),
		state:    StateIdle,
	}
}

// State returns the orchestrator's current state.
func (s *Service) State() State {
	return s.state
}

// Run executes the full pipeline. eventCh may be nil; when set, events are
// emitted best-effort and never block processing.
func (s *Service) Run(ctx context.Context, sourceName string, eventCh chan<- StreamEvent) (*Result, error) {
	stats := domain.RunStats{
		RunID:     uuid.NewString(),
		Source:    sourceName,
		StartedAt: time.Now(),
	}
	if s.meta.GeneratedDate == "" {
		s.meta.GeneratedDate = stats.StartedAt.Format("2006-01-02")
	}

	s.emit(eventCh, StreamEvent{
		Type:      EventStart,
		Payload:   fmt.Sprintf("Starting extraction of %s", sourceName),
		Timestamp: time.Now(),
	})

	s.setState(StateParsing, eventCh)
	lines, err := s.source.Lines(ctx)
	if err != nil {
		s.emitError(eventCh, err)
		return nil, err
	}

	dests, failures, parseStats := s.parseLines(ctx, lines, eventCh)
	stats.Parse = parseStats
	s.logger.Info().
		Int("processed", parseStats.Processed).
		Int("successful", parseStats.Successful).
		Int("failed", parseStats.Failed).
		Int("unknown_countries", parseStats.UnknownCountries).
		Float64("success_rate", parseStats.SuccessRate()).
		Msg("parsing complete")

	if err := ctx.Err(); err != nil {
		s.emitError(eventCh, err)
		return nil, err
	}

	s.setState(StateEnriching, eventCh)
	stats.Enrichment = s.enrichAll(ctx, dests)

	if err := ctx.Err(); err != nil {
		s.emitError(eventCh, err)
		return nil, err
	}

	s.setState(StateAssembling, eventCh)
	chs := chapters.Assemble(dests, s.meta)

	s.setState(StateDone, eventCh)
	stats.FinishedAt = time.Now()
	s.emit(eventCh, StreamEvent{
		Type: EventComplete,
		Payload: fmt.Sprintf("Extraction complete: %d destinations in %v",
			len(dests), stats.Duration().Round(time.Millisecond)),
		Timestamp: time.Now(),
	})

	return &Result{
		Chapters:     chs,
		Destinations: dests,
		Failures:     failures,
		Stats:        stats,
	}, nil
}

// parseLines walks the source lines in order, assigning sequential ids in
// first-seen order. Failures are collected, never thrown.
func (s *Service) parseLines(ctx context.Context, lines []string, eventCh chan<- StreamEvent) ([]*domain.Destination, []*domain.ParseFailure, domain.ParseStats) {
	var (
		dests    []*domain.Destination
		failures []*domain.ParseFailure
		stats    domain.ParseStats
	)

	nextID := 1
	for _, line := range lines {
		if ctx.Err() != nil {
			break
		}

		stats.Processed++
		dest, failure := s.parser.Parse(line, nextID)
		if dest == nil {
			stats.Failed++
			failures = append(failures, failure)
			s.emit(eventCh, StreamEvent{
				Type:      EventParseFailure,
				Payload:   failure,
				Timestamp: time.Now(),
			})
			continue
		}

		if failure != nil {
			// Parsed fine, label just did not classify. Advisory.
			stats.UnknownCountries++
			failures = append(failures, failure)
		}

		stats.Successful++
		dests = append(dests, dest)
		nextID++
	}

	return dests, failures, stats
}

// enrichAll hands every destination to the enricher exactly once. With no
// enricher configured the fallback templates apply directly.
func (s *Service) enrichAll(ctx context.Context, dests []*domain.Destination) domain.EnrichmentStats {
	if s.enricher != nil {
		return s.enricher.Enrich(ctx, dests)
	}

	var stats domain.EnrichmentStats
	for _, d := range dests {
		if d.Enriched() {
			continue
		}
		d.MainAttractionEn = enrich.FallbackEn(d.Location)
		d.MainAttractionFr = enrich.FallbackFr(d.Location)
		stats.Requested++
		stats.FellBack++
	}
	return stats
}

func (s *Service) setState(state State, eventCh chan<- StreamEvent) {
	s.state = state
	s.logger.Debug().Str("state", string(state)).Msg("state change")
	s.emit(eventCh, StreamEvent{
		Type:      EventStateChange,
		Payload:   string(state),
		Timestamp: time.Now(),
	})
}

// emit safely emits an event to the channel.
func (s *Service) emit(eventCh chan<- StreamEvent, event StreamEvent) {
	if eventCh == nil {
		return
	}
	select {
	case eventCh <- event:
	default:
		s.logger.Warn().Str("type", string(event.Type)).Msg("event channel full, dropping event")
	}
}

func (s *Service) emitError(eventCh chan<- StreamEvent, err error) {
	s.emit(eventCh, StreamEvent{
		Type:      EventError,
		Payload:   err.Error(),
		Timestamp: time.Now(),
	})
}
