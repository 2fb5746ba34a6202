// Package parse turns raw guide text lines into validated destinations.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/adventureatlas/guide-extractor/internal/domain"
	"github.com/adventureatlas/guide-extractor/internal/geo"
	"github.com/adventureatlas/guide-extractor/internal/maps"
)

// linePattern matches one guide entry: an ordinal, a free-text label, a
// latitude magnitude with hemisphere letter, and an optional longitude
// section. Continent-scale entries in the guide omit the longitude entirely.
var linePattern = regexp.MustCompile(
	`^(\d+)\.\s+(.+?)\s+-\s+Latitude:\s*([\d.-]+)\s*([NS])(?:\s+Longitude:\s*([\d.-]+)\s*([EW])?)?`,
)

// Parser converts raw lines into destinations, consulting the classifier for
// country/region mapping. Safe for concurrent use.
type Parser struct {
	classifier *geo.Classifier
}

// NewParser creates a parser backed by the given classifier.
func NewParser(classifier *geo.Classifier) *Parser {
	return &Parser{classifier: classifier}
}

// Parse matches one raw line. nextID becomes the destination's run-unique id;
// the ordinal printed in the guide is part of the pattern but not trusted as
// an identifier.
//
// Returns exactly one of the first two forms:
//   - (dest, nil): line parsed and classified.
//   - (nil, failure): line rejected, no destination produced.
//   - (dest, failure): line parsed but the label did not classify; the
//     failure is advisory (FailureUnknownLocation) and the destination
//     carries the Unknown placeholders. Geographic uncertainty never drops
//     a destination.
func (p *Parser) Parse(rawLine string, nextID int) (*domain.Destination, *domain.ParseFailure) {
	line := strings.TrimSpace(rawLine)

	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return nil, &domain.ParseFailure{RawLine: line, Reason: domain.FailureNoMatch}
	}

	label := geo.CleanLabel(strings.Trim(m[2], " -,"))
	if label == "" {
		return nil, &domain.ParseFailure{RawLine: line, Reason: domain.FailureNoMatch}
	}

	coord, reason := parseCoordinate(m[3], m[4], m[5], m[6])
	if reason != "" {
		return nil, &domain.ParseFailure{RawLine: line, Reason: reason}
	}

	class := p.classifier.Classify(label)

	dest := &domain.Destination{
		ID:             nextID,
		Location:       label,
		Coordinates:    coord,
		Country:        class.Country,
		Region:         class.Region,
		GoogleMapsLink: maps.GoogleMapsLink(label, coord),
		ExtendedLinks:  maps.ExtendedLinks(label, coord),
	}

	if !class.Known() {
		// Advisory only: the destination above still stands.
		return dest, &domain.ParseFailure{RawLine: line, Reason: domain.FailureUnknownLocation}
	}
	return dest, nil
}

// parseCoordinate builds a signed coordinate from the matched magnitude and
// hemisphere fields. An absent longitude degrades to 0.0 with the direction
// left unset rather than failing the line.
func parseCoordinate(latStr, latDir, lonStr, lonDir string) (domain.Coordinate, domain.FailureReason) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Coordinate{}, domain.FailureInvalidLatitude
	}
	if latDir == "S" {
		lat = -lat
	}
	if lat < -90 || lat > 90 {
		return domain.Coordinate{}, domain.FailureInvalidLatitude
	}

	coord := domain.Coordinate{
		Latitude:          lat,
		LatitudeDirection: latDir,
	}

	if lonStr == "" {
		coord.Longitude = 0.0
		return coord, ""
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.Coordinate{}, domain.FailureInvalidLongitude
	}
	if lonDir == "" {
		// The guide occasionally drops the hemisphere letter; east is the
		// overwhelmingly common case in the source material.
		lonDir = "E"
	}
	if lonDir == "W" {
		lon = -lon
	}
	if lon < -180 || lon > 180 {
		return domain.Coordinate{}, domain.FailureInvalidLongitude
	}

	coord.Longitude = lon
	coord.LongitudeDirection = lonDir
	return coord, ""
}
