package domain

import (
	"fmt"
	"time"
)

// Coordinate is a WGS84 decimal-degree position. Latitude and Longitude are
// signed (south and west negative); the direction letters preserve the
// hemisphere notation from the source guide.
type Coordinate struct {
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	LatitudeDirection  string  `json:"latitudeDirection"`
	LongitudeDirection string  `json:"longitudeDirection"`
}

// Valid reports whether the coordinate is inside the WGS84 range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90.0 && c.Latitude <= 90.0 &&
		c.Longitude >= -180.0 && c.Longitude <= 180.0
}

// Magnitudes returns the unsigned latitude and longitude, matching the
// "<magnitude><hemisphere>" notation used in the guide text.
func (c Coordinate) Magnitudes() (lat, lon float64) {
	lat, lon = c.Latitude, c.Longitude
	if lat < 0 {
		lat = -lat
	}
	if lon < 0 {
		lon = -lon
	}
	return lat, lon
}

// String formats the coordinate as decimal degrees with hemisphere letters.
func (c Coordinate) String() string {
	lat, lon := c.Magnitudes()
	return fmt.Sprintf("%.4f°%s, %.4f°%s", lat, c.LatitudeDirection, lon, c.LongitudeDirection)
}

// ExtendedLinks holds external map and imagery links for a destination.
// All links are deterministic functions of the location and coordinate.
type ExtendedLinks struct {
	StreetView    string `json:"streetView"`
	GoogleEarth   string `json:"googleEarth"`
	SatelliteView string `json:"satelliteView"`
	GoogleImages  string `json:"googleImages"`
	OpenStreetMap string `json:"openStreetMap"`
	AppleMaps     string `json:"appleMaps"`
}

// Destination is one validated guide entry. IDs are sequential and unique
// within a run, assigned in source order. MainAttractionEn/Fr are empty until
// the enrichment pass fills them exactly once.
type Destination struct {
	ID               int           `json:"id"`
	Location         string        `json:"location"`
	Coordinates      Coordinate    `json:"coordinates"`
	Country          string        `json:"country"`
	Region           string        `json:"region"`
	MainAttractionEn string        `json:"mainAttractionEn"`
	MainAttractionFr string        `json:"mainAttractionFr"`
	GoogleMapsLink   string        `json:"googleMapsLink"`
	ExtendedLinks    ExtendedLinks `json:"extendedLinks"`
}

// Enriched reports whether the destination already carries attraction text.
func (d *Destination) Enriched() bool {
	return d.MainAttractionEn != "" && d.MainAttractionFr != ""
}

// LatitudeRange describes a chapter's latitude band in guide notation,
// e.g. {From: "90° North", To: "60° North"}.
type LatitudeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Chapter groups the destinations of one latitude band.
type Chapter struct {
	Number            int               `json:"-"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	LatitudeRange     LatitudeRange     `json:"latitudeRange"`
	TotalDestinations int               `json:"totalDestinations"`
	Destinations      []*Destination    `json:"destinations"`
	Metadata          map[string]string `json:"metadata"`
}

// FailureReason classifies why a raw line could not become a Destination.
type FailureReason string

const (
	FailureNoMatch          FailureReason = "no_match"
	FailureInvalidLatitude  FailureReason = "invalid_latitude"
	FailureInvalidLongitude FailureReason = "invalid_longitude"
	FailureUnknownLocation  FailureReason = "unknown_location"
)

// ParseFailure records a line-level diagnostic. Failures are collected for
// the debug report and never promoted to a Destination. An unknown-location
// failure is purely advisory: the line still produced a Destination with
// placeholder classification.
type ParseFailure struct {
	RawLine string        `json:"rawLine"`
	Reason  FailureReason `json:"reason"`
}

func (f *ParseFailure) Error() string {
	return fmt.Sprintf("parse failure (%s): %s", f.Reason, f.RawLine)
}

// EnrichmentStats counts enrichment outcomes across a run. Fallback is a
// terminal outcome equivalent in status to success; the split exists so
// operators can judge how much text came from the model.
type EnrichmentStats struct {
	Requested     int `json:"requested"`
	Fulfilled     int `json:"fulfilled"`
	FellBack      int `json:"fellBack"`
	BatchFailures int `json:"batchFailures"`
}

// ParseStats counts line-level outcomes across a run.
type ParseStats struct {
	Processed        int `json:"processed"`
	Successful       int `json:"successful"`
	Failed           int `json:"failed"`
	UnknownCountries int `json:"unknownCountries"`
}

// SuccessRate returns the share of processed lines that parsed, in percent.
func (s ParseStats) SuccessRate() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.Successful) / float64(s.Processed) * 100
}

// RunStats is the complete statistics side channel of one pipeline run,
// retrievable after the run finishes regardless of per-line outcomes.
type RunStats struct {
	RunID      string          `json:"runId"`
	Source     string          `json:"source"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Parse      ParseStats      `json:"parse"`
	Enrichment EnrichmentStats `json:"enrichment"`
}

// Duration returns the wall-clock time of the run.
func (s RunStats) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
