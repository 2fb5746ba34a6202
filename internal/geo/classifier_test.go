package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name    string
		label   string
		country string
		region  string
		tier    MatchTier
	}{
		{
			name:    "exact country",
			label:   "Norway",
			country: "Norway",
			region:  "Scandinavia",
			tier:    MatchCountry,
		},
		{
			name:    "exact special case",
			label:   "Both Poles",
			country: "Multiple",
			region:  "Global",
			tier:    MatchSpecialCase,
		},
		{
			name:    "country containment",
			label:   "Svalbard, Norway",
			country: "Norway",
			region:  "Scandinavia",
			tier:    MatchContains,
		},
		{
			name:    "special case containment",
			label:   "Torres del Paine, Patagonia",
			country: "Multiple",
			region:  "South America",
			tier:    MatchSpecialCase,
		},
		{
			name:    "multi word country",
			label:   "Queenstown, New Zealand",
			country: "New Zealand",
			region:  "Oceania",
			tier:    MatchContains,
		},
		{
			name:    "feature pattern desert",
			label:   "Atacama Desert",
			country: "Multiple",
			region:  "Maritime Region",
			tier:    MatchFeature,
		},
		{
			name:    "feature pattern island",
			label:   "Socotra Archipelago",
			country: "Multiple",
			region:  "Islands",
			tier:    MatchFeature,
		},
		{
			name:    "multiple catch-all",
			label:   "Various Locations",
			country: "Multiple",
			region:  "Multiple",
			tier:    MatchMultiple,
		},
		{
			name:    "unknown",
			label:   "Xanadu Prime",
			country: "Unknown",
			region:  "Unknown",
			tier:    MatchUnknown,
		},
		{
			name:    "empty",
			label:   "",
			country: "Unknown",
			region:  "Unknown",
			tier:    MatchUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.label)
			assert.Equal(t, tt.country, got.Country)
			assert.Equal(t, tt.region, got.Region)
			assert.Equal(t, tt.tier, got.Tier)
		})
	}
}

// A short token must never match inside a longer word: "US" occurs as a
// substring of "VARIOUS" and "AUSTRALIA".
func TestClassifier_TokenBoundaries(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("Uluru, Australia")
	assert.Equal(t, "Australia", got.Country)

	got = c.Classify("Yellowstone, US")
	assert.Equal(t, "United States", got.Country)
}

func TestClassification_Known(t *testing.T) {
	assert.False(t, Unknown.Known())
	assert.True(t, Classification{Country: "Chile", Region: "South America", Tier: MatchCountry}.Known())
}

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Lake   Bled,   SOLVENIA ", "Lake Bled, SLOVENIA"},
		{"PAPAU NEW GUINEA", "PAPUA NEW GUINEA"},
		{"TAJIKSTAN", "TAJIKISTAN"},
		{"Plain Label", "Plain Label"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanLabel(tt.in))
	}
}
