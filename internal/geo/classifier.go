// Package geo resolves free-text location labels to country/region pairs
// using static lookup tables. Classification is exact lookup plus a few
// heuristic tiers; it is not geocoding and never fails a caller: an
// unresolvable label classifies as Unknown.
package geo

import (
	"regexp"
	"sort"
	"strings"
)

// MatchTier records which lookup tier resolved a label.
type MatchTier string

const (
	MatchSpecialCase MatchTier = "special_case"
	MatchCountry     MatchTier = "country"
	MatchContains    MatchTier = "contains"
	MatchFeature     MatchTier = "feature"
	MatchCommaTail   MatchTier = "comma_tail"
	MatchMultiple    MatchTier = "multiple"
	MatchUnknown     MatchTier = "unknown"
)

// Classification is the outcome of classifying one label. Known is false only
// for the Unknown tier; callers are expected to branch on it rather than
// compare sentinel strings.
type Classification struct {
	Country string
	Region  string
	Tier    MatchTier
}

// Known reports whether the label resolved to a real mapping.
func (c Classification) Known() bool {
	return c.Tier != MatchUnknown
}

// Unknown is the degraded classification attached when no tier matches.
var Unknown = Classification{Country: "Unknown", Region: "Unknown", Tier: MatchUnknown}

// featurePattern maps a geographic-feature keyword to a generic mapping.
type featurePattern struct {
	re      *regexp.Regexp
	mapping Mapping
}

var featurePatterns = []featurePattern{
	{regexp.MustCompile(`\b(ISLAND|ISLANDS|ARCHIPELAGO)\b`), Mapping{"Multiple", "Islands"}},
	{regexp.MustCompile(`\b(DESERT|SEA|OCEAN|BAY|GULF)\b`), Mapping{"Multiple", "Maritime Region"}},
	{regexp.MustCompile(`\b(MOUNTAINS?|ALPS|HIMALAYAS?)\b`), Mapping{"Multiple", "Mountain Region"}},
	{regexp.MustCompile(`\b(RIVER|LAKE|FALLS)\b`), Mapping{"Multiple", "Water Feature"}},
	{regexp.MustCompile(`\b(NATIONAL PARK|RESERVE|PARK)\b`), Mapping{"Multiple", "Protected Area"}},
}

var adminWords = regexp.MustCompile(`\b(PROVINCE|REGION|STATE|TERRITORY|GOVERNORATE)\b`)

// Classifier maps location labels to classifications. It is immutable and
// safe for concurrent use; construct once and share.
type Classifier struct {
	countries map[string]Mapping
	specials  map[string]Mapping

	// Containment checks walk keys longest-first so that a longer token
	// ("AUSTRALIA") wins over a shorter one it happens to contain ("US").
	countryKeys []string
	specialKeys []string
}

// NewClassifier returns a classifier backed by the static tables.
func NewClassifier() *Classifier {
	return &Classifier{
		countries:   countryTable,
		specials:    specialCases,
		countryKeys: orderedKeys(countryTable),
		specialKeys: orderedKeys(specialCases),
	}
}

func orderedKeys(table map[string]Mapping) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Classify resolves a label. Lookup tiers, in order: exact special case,
// exact country, special-case containment, country containment, geographic
// feature patterns, trailing comma segment, multiple/various catch-all.
// Anything else is Unknown.
func (c *Classifier) Classify(label string) Classification {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	if normalized == "" {
		return Unknown
	}

	if m, ok := c.specials[normalized]; ok {
		return Classification{m.Country, m.Region, MatchSpecialCase}
	}
	if m, ok := c.countries[normalized]; ok {
		return Classification{m.Country, m.Region, MatchCountry}
	}

	for _, key := range c.specialKeys {
		if containsToken(normalized, key) {
			m := c.specials[key]
			return Classification{m.Country, m.Region, MatchSpecialCase}
		}
	}
	for _, key := range c.countryKeys {
		if containsToken(normalized, key) {
			m := c.countries[key]
			return Classification{m.Country, m.Region, MatchContains}
		}
	}

	for _, fp := range featurePatterns {
		if fp.re.MatchString(normalized) {
			return Classification{fp.mapping.Country, fp.mapping.Region, MatchFeature}
		}
	}

	// "City, Country" style labels: try the last comma segment as a country
	// token after stripping administrative qualifiers.
	if idx := strings.LastIndex(normalized, ","); idx >= 0 {
		tail := strings.TrimSpace(normalized[idx+1:])
		tail = strings.TrimSpace(adminWords.ReplaceAllString(tail, ""))
		for _, key := range c.countryKeys {
			if containsToken(tail, key) {
				m := c.countries[key]
				return Classification{m.Country, m.Region, MatchCommaTail}
			}
		}
	}

	for _, word := range []string{"MULTIPLE", "VARIOUS", "WORLDWIDE"} {
		if strings.Contains(normalized, word) {
			return Classification{"Multiple", "Multiple", MatchMultiple}
		}
	}

	return Unknown
}

// containsToken reports whether key occurs in s on word boundaries. Plain
// substring matching is too loose here: "US" occurs inside "VARIOUS".
func containsToken(s, key string) bool {
	for from := 0; ; {
		i := strings.Index(s[from:], key)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(key)
		if (start == 0 || !isWordByte(s[start-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
		from = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

// CleanLabel collapses whitespace and applies known typo corrections. The
// corrections operate on the uppercase form found in the guide text.
func CleanLabel(label string) string {
	label = strings.Join(strings.Fields(label), " ")
	for typo, fixed := range labelCorrections {
		label = strings.ReplaceAll(label, typo, fixed)
	}
	return label
}
