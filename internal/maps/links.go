// Package maps generates external map and imagery links for destinations.
// Every link is a deterministic function of the location label and its
// coordinate; no API keys are involved.
package maps

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/adventureatlas/guide-extractor/internal/domain"
)

var (
	leadingNoise  = regexp.MustCompile(`(?i)^(START IN|START AT|START WITH|NEAR|ALL OVER|ACROSS|INCLUDES)\s+`)
	trailingNoise = regexp.MustCompile(`(?i),?\s+(US|UK|USA|UNITED STATES|UNITED KINGDOM)$`)
	multiSpace    = regexp.MustCompile(`\s+`)
	multiComma    = regexp.MustCompile(`[,;]+`)
)

// CleanLocation strips guide-text noise from a location label so it works as
// a search query: leading instruction words, trailing country abbreviations,
// repeated separators.
func CleanLocation(location string) string {
	location = leadingNoise.ReplaceAllString(location, "")
	location = trailingNoise.ReplaceAllString(location, "")
	location = multiSpace.ReplaceAllString(location, " ")
	location = multiComma.ReplaceAllString(location, ",")
	return strings.Trim(location, " ,.-")
}

// GoogleMapsLink builds a Google Maps search link combining the readable
// label with the precise coordinate pair.
func GoogleMapsLink(location string, c domain.Coordinate) string {
	query := fmt.Sprintf("%s/@%v,%v", location, c.Latitude, c.Longitude)
	// Zoom 15 lands at city/landmark level.
	return "https://www.google.com/maps/search/" + url.PathEscape(query) + ",15z"
}

// StreetViewLink builds a Google Street View web link.
func StreetViewLink(c domain.Coordinate) string {
	return fmt.Sprintf("https://www.google.com/maps/@%v,%v,3a,0y,0h,90t/data=!3m1!1e3",
		c.Latitude, c.Longitude)
}

// GoogleEarthLink builds a Google Earth web link at 1km altitude.
func GoogleEarthLink(c domain.Coordinate) string {
	return fmt.Sprintf("https://earth.google.com/web/@%v,%v,1000a,35y,0h,0t,0r",
		c.Latitude, c.Longitude)
}

// SatelliteViewLink builds a Google Maps satellite layer link.
func SatelliteViewLink(c domain.Coordinate) string {
	return fmt.Sprintf("https://www.google.com/maps/@%v,%v,1000m/data=!3m1!1e3",
		c.Latitude, c.Longitude)
}

// GoogleImagesLink builds a freely-licensed image search for the location.
func GoogleImagesLink(location string) string {
	query := CleanLocation(location) + " travel destination photography"
	return "https://www.google.com/search?q=" + url.QueryEscape(query) + "&tbm=isch&tbs=sur:fmc"
}

// OpenStreetMapLink builds an OpenStreetMap link centered on the coordinate.
func OpenStreetMapLink(c domain.Coordinate) string {
	return fmt.Sprintf("https://www.openstreetmap.org/#map=15/%v/%v",
		c.Latitude, c.Longitude)
}

// AppleMapsLink builds an Apple Maps link with label query and coordinate.
func AppleMapsLink(location string, c domain.Coordinate) string {
	return fmt.Sprintf("https://maps.apple.com/?q=%s&ll=%v,%v",
		url.QueryEscape(location), c.Latitude, c.Longitude)
}

// ExtendedLinks assembles the full link set attached to each destination.
func ExtendedLinks(location string, c domain.Coordinate) domain.ExtendedLinks {
	return domain.ExtendedLinks{
		StreetView:    StreetViewLink(c),
		GoogleEarth:   GoogleEarthLink(c),
		SatelliteView: SatelliteViewLink(c),
		GoogleImages:  GoogleImagesLink(location),
		OpenStreetMap: OpenStreetMapLink(c),
		AppleMaps:     AppleMapsLink(location, c),
	}
}
