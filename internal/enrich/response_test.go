package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBatchResponse(t *testing.T) {
	response := `Paris: English: Iconic tower and cafes | French: Tour emblématique et cafés
- Kyoto, Japan: English: Ancient temples and gardens | French: Temples anciens et jardins

Some commentary the model added that is not a segment.
Broken line missing french marker English: only half
No english marker at all | French: rien
Empty english: English:  | French: texte
`

	segments := parseBatchResponse(response)
	require.Len(t, segments, 2)

	assert.Equal(t, "Paris", segments[0].Label)
	assert.Equal(t, "Iconic tower and cafes", segments[0].English)
	assert.Equal(t, "Tour emblématique et cafés", segments[0].French)

	assert.Equal(t, "Kyoto, Japan", segments[1].Label)
	assert.Equal(t, "Ancient temples and gardens", segments[1].English)
}

func TestParseBatchResponse_Empty(t *testing.T) {
	assert.Empty(t, parseBatchResponse(""))
	assert.Empty(t, parseBatchResponse("no structure here at all"))
}

func TestMatchSegment(t *testing.T) {
	segments := []Segment{
		{Label: "Paris", English: "en1", French: "fr1"},
		{Label: "Kyoto, Japan", English: "en2", French: "fr2"},
	}

	// Label match is case-insensitive.
	seg, ok := matchSegment(segments, "PARIS", 1, 2)
	require.True(t, ok)
	assert.Equal(t, "en1", seg.English)

	// Positional fallback applies only when counts line up.
	seg, ok = matchSegment(segments, "Mangled Label", 1, 2)
	require.True(t, ok)
	assert.Equal(t, "en2", seg.English)

	// Counts off: the miss stays a miss.
	_, ok = matchSegment(segments, "Mangled Label", 0, 3)
	assert.False(t, ok)
}
