// Package output owns the JSON document schemas and writes them to disk.
package output

import (
	"fmt"

	"github.com/adventureatlas/guide-extractor/internal/chapters"
	"github.com/adventureatlas/guide-extractor/internal/domain"
)

// CombinedChapter is one chapter's entry inside the complete-guide document.
type CombinedChapter struct {
	Title            string                `json:"title"`
	LatitudeRange    domain.LatitudeRange  `json:"latitudeRange"`
	DestinationCount int                   `json:"destinationCount"`
	Destinations     []*domain.Destination `json:"destinations"`
}

// CombinedDocument aggregates all chapters with a global total. It is a
// read-only projection over the assembled chapters.
type CombinedDocument struct {
	Title             string                     `json:"title"`
	Description       string                     `json:"description"`
	TotalChapters     int                        `json:"totalChapters"`
	TotalDestinations int                        `json:"totalDestinations"`
	Chapters          map[string]CombinedChapter `json:"chapters"`
	Metadata          map[string]string          `json:"metadata"`
}

// BuildCombined projects the assembled chapters into the complete-guide
// document. Empty chapters are counted toward totalChapters but omitted from
// the chapters map, matching the per-chapter files.
func BuildCombined(chs []*domain.Chapter, meta chapters.Metadata) CombinedDocument {
	doc := CombinedDocument{
		Title:         fmt.Sprintf("%s - Complete Guide", meta.GuideTitle),
		Description:   "Complete adventure destinations guide from 90° North to 90° South",
		TotalChapters: len(chs),
		Chapters:      make(map[string]CombinedChapter),
		Metadata: map[string]string{
			"source":           meta.Source,
			"generatedDate":    meta.GeneratedDate,
			"coordinateSystem": "WGS84",
			"format":           "Decimal Degrees",
		},
	}

	for _, ch := range chs {
		doc.TotalDestinations += ch.TotalDestinations
		if ch.TotalDestinations == 0 {
			continue
		}
		doc.Chapters[fmt.Sprintf("chapter_%d", ch.Number)] = CombinedChapter{
			Title:            ch.Title,
			LatitudeRange:    ch.LatitudeRange,
			DestinationCount: ch.TotalDestinations,
			Destinations:     ch.Destinations,
		}
	}
	return doc
}

// DebugReport summarizes a run's losses for operators: how many lines did
// not parse, how much text fell back, and a sample of the offending input.
type DebugReport struct {
	Summary           domain.ParseStats      `json:"summary"`
	Enrichment        domain.EnrichmentStats `json:"enrichment"`
	SuccessRate       string                 `json:"successRate"`
	FailedLinesSample []*domain.ParseFailure `json:"failedLinesSample"`
	TotalFailedLines  int                    `json:"totalFailedLines"`
}

// debugSampleLimit caps the failed-line sample in the report.
const debugSampleLimit = 50

// BuildDebugReport assembles the report from run statistics and the
// collected failures.
func BuildDebugReport(stats domain.RunStats, failures []*domain.ParseFailure) DebugReport {
	sample := failures
	if len(sample) > debugSampleLimit {
		sample = sample[:debugSampleLimit]
	}
	return DebugReport{
		Summary:           stats.Parse,
		Enrichment:        stats.Enrichment,
		SuccessRate:       fmt.Sprintf("%.1f%%", stats.Parse.SuccessRate()),
		FailedLinesSample: sample,
		TotalFailedLines:  len(failures),
	}
}
