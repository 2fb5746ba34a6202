// Package chapters partitions destinations into the guide's eight fixed
// latitude bands.
package chapters

import (
	"fmt"
	"sort"

	"github.com/adventureatlas/guide-extractor/internal/domain"
	"github.com/adventureatlas/guide-extractor/internal/geo"
)

// Band is one latitude band, ordered north to south. From is the northern
// edge, To the southern. A destination belongs to the band whose interval
// (To, From] contains its latitude: a destination exactly on a shared
// boundary lands in the band that starts there, not the one that ends there.
// The southernmost band closes at -90 so the bands partition [-90, 90]
// exactly.
type Band struct {
	Number int
	Title  string
	From   float64
	To     float64
	Range  domain.LatitudeRange
}

// Contains reports whether lat falls inside this band.
func (b Band) Contains(lat float64) bool {
	if lat > b.From {
		return false
	}
	if lat > b.To {
		return true
	}
	// Closed southern edge only for the final band.
	return b.Number == len(Bands) && lat >= b.To
}

// Bands is the fixed band table. Titles follow the guide's chapter headings.
var Bands = []Band{
	{1, "From 90° North to 60° North", 90, 60, domain.LatitudeRange{From: "90° North", To: "60° North"}},
	{2, "From 60° North to 45° North", 60, 45, domain.LatitudeRange{From: "60° North", To: "45° North"}},
	{3, "From 45° North to 30° North", 45, 30, domain.LatitudeRange{From: "45° North", To: "30° North"}},
	{4, "From 30° North to 15° North", 30, 15, domain.LatitudeRange{From: "30° North", To: "15° North"}},
	{5, "From 15° North to 0° North", 15, 0, domain.LatitudeRange{From: "15° North", To: "0° North"}},
	{6, "From 0° South to 15° South", 0, -15, domain.LatitudeRange{From: "0° South", To: "15° South"}},
	{7, "From 15° South to 30° South", -15, -30, domain.LatitudeRange{From: "15° South", To: "30° South"}},
	{8, "From 30° South to 90° South", -30, -90, domain.LatitudeRange{From: "30° South", To: "90° South"}},
}

// BandFor returns the band containing the latitude. The bool is false only
// for latitudes outside [-90, 90], which validated destinations cannot have.
func BandFor(lat float64) (Band, bool) {
	for _, b := range Bands {
		if b.Contains(lat) {
			return b, true
		}
	}
	return Band{}, false
}

// Metadata carries run-level fields stamped into each chapter document.
type Metadata struct {
	Source        string
	GuideTitle    string
	GeneratedDate string
}

// Assemble partitions destinations into chapters, one per band, in band
// order. Band assignment depends only on latitude, never on classification.
// Each chapter's destinations are in ascending-id order and
// TotalDestinations is derived from the partition, not carried in. Empty
// chapters are returned too; writers decide whether to emit them.
func Assemble(dests []*domain.Destination, meta Metadata) []*domain.Chapter {
	byBand := make(map[int][]*domain.Destination, len(Bands))
	for _, d := range dests {
		band, ok := BandFor(d.Coordinates.Latitude)
		if !ok {
			continue // unreachable for validated destinations
		}
		byBand[band.Number] = append(byBand[band.Number], d)
	}

	result := make([]*domain.Chapter, 0, len(Bands))
	for _, band := range Bands {
		members := byBand[band.Number]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].ID < members[j].ID
		})

		chapter := &domain.Chapter{
			Number:            band.Number,
			Title:             fmt.Sprintf("%s - Chapter %d: %s", meta.GuideTitle, band.Number, band.Title),
			Description:       fmt.Sprintf("Adventure destinations %s", lowerTitle(band.Title)),
			LatitudeRange:     band.Range,
			TotalDestinations: len(members),
			Destinations:      members,
			Metadata: map[string]string{
				"source":           meta.Source,
				"chapter":          fmt.Sprintf("%d", band.Number),
				"generatedDate":    meta.GeneratedDate,
				"coordinateSystem": "WGS84",
				"format":           "Decimal Degrees",
			},
		}

		if bounds, ok := geo.BoundsOf(members); ok {
			chapter.Metadata["boundingBox"] = fmt.Sprintf("%.4f,%.4f to %.4f,%.4f",
				bounds.MinLatitude, bounds.MinLongitude, bounds.MaxLatitude, bounds.MaxLongitude)
		}

		result = append(result, chapter)
	}
	return result
}

func lowerTitle(title string) string {
	// "From 90° North to 60° North" -> "from 90° north to 60° north"
	out := []rune(title)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + ('a' - 'A')
		}
	}
	return string(out)
}
