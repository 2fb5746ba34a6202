package geo

import (
	"math"

	"github.com/adventureatlas/guide-extractor/internal/domain"
)

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance between two coordinates in
// kilometers, using the haversine formula.
func Distance(a, b domain.Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lon1 := a.Longitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	lon2 := b.Longitude * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1
	h := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)

	return earthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// Bounds is the bounding box of a destination set plus its centroid.
type Bounds struct {
	MinLatitude     float64 `json:"minLatitude"`
	MaxLatitude     float64 `json:"maxLatitude"`
	MinLongitude    float64 `json:"minLongitude"`
	MaxLongitude    float64 `json:"maxLongitude"`
	CenterLatitude  float64 `json:"centerLatitude"`
	CenterLongitude float64 `json:"centerLongitude"`
}

// BoundsOf computes the bounding box for a set of destinations. The second
// return is false for an empty set.
func BoundsOf(dests []*domain.Destination) (Bounds, bool) {
	if len(dests) == 0 {
		return Bounds{}, false
	}

	b := Bounds{
		MinLatitude:  math.MaxFloat64,
		MaxLatitude:  -math.MaxFloat64,
		MinLongitude: math.MaxFloat64,
		MaxLongitude: -math.MaxFloat64,
	}
	var sumLat, sumLon float64
	for _, d := range dests {
		lat, lon := d.Coordinates.Latitude, d.Coordinates.Longitude
		b.MinLatitude = math.Min(b.MinLatitude, lat)
		b.MaxLatitude = math.Max(b.MaxLatitude, lat)
		b.MinLongitude = math.Min(b.MinLongitude, lon)
		b.MaxLongitude = math.Max(b.MaxLongitude, lon)
		sumLat += lat
		sumLon += lon
	}
	b.CenterLatitude = sumLat / float64(len(dests))
	b.CenterLongitude = sumLon / float64(len(dests))
	return b, true
}
