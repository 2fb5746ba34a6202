package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventureatlas/guide-extractor/internal/chapters"
	"github.com/adventureatlas/guide-extractor/internal/domain"
	"github.com/adventureatlas/guide-extractor/internal/geo"
	"github.com/adventureatlas/guide-extractor/internal/parse"
)

type stubSource struct {
	lines []string
	err   error
}

func (s stubSource) Lines(ctx context.Context) ([]string, error) {
	return s.lines, s.err
}

type stubEnricher struct {
	calls int
	seen  []*domain.Destination
}

func (e *stubEnricher) Enrich(ctx context.Context, dests []*domain.Destination) domain.EnrichmentStats {
	e.calls++
	e.seen = dests
	for _, d := range dests {
		d.MainAttractionEn = "stub en"
		d.MainAttractionFr = "stub fr"
	}
	return domain.EnrichmentStats{Requested: len(dests), Fulfilled: len(dests)}
}

func newTestService(source domain.LineSource, enricher domain.Enricher) *Service {
	meta := chapters.Metadata{Source: "Test Source", GuideTitle: "Test Guide", GeneratedDate: "2026-08-30"}
	return NewService(source, parse.NewParser(geo.NewClassifier()), enricher, meta, zerolog.Nop())
}

var guideLines = []string{
	"1. Svalbard, Norway - Latitude: 78.0 N Longitude: 16.0 E",
	"not a destination line at all",
	"2. Machu Picchu, Peru - Latitude: 13.2 S Longitude: 72.5 W",
	"3. Zorblax Cavern - Latitude: 12.0 N Longitude: 8.0 E",
	"4. Broken Entry - Latitude: 95.0 N",
}

func TestService_Run(t *testing.T) {
	enricher := &stubEnricher{}
	svc := newTestService(stubSource{lines: guideLines}, enricher)

	result, err := svc.Run(context.Background(), "guide.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, StateDone, svc.State())

	// Three lines produced destinations; the unknown label kept its entry.
	require.Len(t, result.Destinations, 3)
	assert.Equal(t, 1, result.Destinations[0].ID)
	assert.Equal(t, 2, result.Destinations[1].ID)
	assert.Equal(t, 3, result.Destinations[2].ID)
	assert.Equal(t, "Unknown", result.Destinations[2].Country)

	stats := result.Stats
	assert.NotEmpty(t, stats.RunID)
	assert.Equal(t, "guide.txt", stats.Source)
	assert.Equal(t, 5, stats.Parse.Processed)
	assert.Equal(t, 3, stats.Parse.Successful)
	assert.Equal(t, 2, stats.Parse.Failed)
	assert.Equal(t, 1, stats.Parse.UnknownCountries)
	assert.False(t, stats.FinishedAt.Before(stats.StartedAt))

	// Two hard failures plus the advisory one.
	assert.Len(t, result.Failures, 3)

	// Enricher ran exactly once over all destinations.
	assert.Equal(t, 1, enricher.calls)
	assert.Len(t, enricher.seen, 3)
	assert.Equal(t, 3, stats.Enrichment.Fulfilled)

	// All eight chapters come back; Svalbard is in the first.
	require.Len(t, result.Chapters, 8)
	assert.Equal(t, 1, result.Chapters[0].TotalDestinations)
	assert.Equal(t, "Svalbard, Norway", result.Chapters[0].Destinations[0].Location)
}

func TestService_Run_SourceErrorIsFatal(t *testing.T) {
	svc := newTestService(stubSource{err: errors.New("file vanished")}, &stubEnricher{})

	result, err := svc.Run(context.Background(), "guide.pdf", nil)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file vanished")
}

func TestService_Run_NilEnricherUsesTemplates(t *testing.T) {
	svc := newTestService(stubSource{lines: guideLines[:1]}, nil)

	result, err := svc.Run(context.Background(), "guide.txt", nil)
	require.NoError(t, err)
	require.Len(t, result.Destinations, 1)

	d := result.Destinations[0]
	assert.Equal(t, "Discover the unique charm of Svalbard, Norway.", d.MainAttractionEn)
	assert.Equal(t, "Découvrez le charme unique de Svalbard, Norway.", d.MainAttractionFr)
	assert.Equal(t, 1, result.Stats.Enrichment.FellBack)
}

func TestService_Run_EmitsEvents(t *testing.T) {
	svc := newTestService(stubSource{lines: guideLines}, &stubEnricher{})

	events := make(chan StreamEvent, 64)
	_, err := svc.Run(context.Background(), "guide.txt", events)
	require.NoError(t, err)
	close(events)

	var types []EventType
	for ev := range events {
		types = append(types, ev.Type)
	}

	assert.Equal(t, EventStart, types[0])
	assert.Equal(t, EventComplete, types[len(types)-1])

	failures := 0
	for _, typ := range types {
		if typ == EventParseFailure {
			failures++
		}
	}
	assert.Equal(t, 2, failures, "only hard failures are emitted")
}

func TestService_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService(stubSource{lines: guideLines}, &stubEnricher{})
	result, err := svc.Run(ctx, "guide.txt", nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}
