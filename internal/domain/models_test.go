package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoordinate_Valid(t *testing.T) {
	tests := []struct {
		name  string
		coord Coordinate
		want  bool
	}{
		{"origin", Coordinate{}, true},
		{"north pole", Coordinate{Latitude: 90}, true},
		{"south pole", Coordinate{Latitude: -90}, true},
		{"antimeridian", Coordinate{Longitude: 180}, true},
		{"latitude too high", Coordinate{Latitude: 90.1}, false},
		{"latitude too low", Coordinate{Latitude: -90.1}, false},
		{"longitude too high", Coordinate{Longitude: 180.1}, false},
		{"longitude too low", Coordinate{Longitude: -180.1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coord.Valid())
		})
	}
}

func TestCoordinate_Magnitudes(t *testing.T) {
	c := Coordinate{Latitude: -33.9, Longitude: -72.5}
	lat, lon := c.Magnitudes()
	assert.Equal(t, 33.9, lat)
	assert.Equal(t, 72.5, lon)

	c = Coordinate{Latitude: 78.0, Longitude: 16.0}
	lat, lon = c.Magnitudes()
	assert.Equal(t, 78.0, lat)
	assert.Equal(t, 16.0, lon)
}

func TestCoordinate_String(t *testing.T) {
	c := Coordinate{Latitude: -13.2, Longitude: -72.5, LatitudeDirection: "S", LongitudeDirection: "W"}
	assert.Equal(t, "13.2000°S, 72.5000°W", c.String())
}

func TestDestination_Enriched(t *testing.T) {
	d := &Destination{}
	assert.False(t, d.Enriched())

	d.MainAttractionEn = "text"
	assert.False(t, d.Enriched(), "both languages are required")

	d.MainAttractionFr = "texte"
	assert.True(t, d.Enriched())
}

func TestParseStats_SuccessRate(t *testing.T) {
	assert.Zero(t, ParseStats{}.SuccessRate())
	assert.InDelta(t, 80.0, ParseStats{Processed: 10, Successful: 8}.SuccessRate(), 1e-9)
	assert.InDelta(t, 100.0, ParseStats{Processed: 3, Successful: 3}.SuccessRate(), 1e-9)
}

func TestRunStats_Duration(t *testing.T) {
	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s := RunStats{StartedAt: start, FinishedAt: start.Add(90 * time.Second)}
	assert.Equal(t, 90*time.Second, s.Duration())
}

func TestParseFailure_Error(t *testing.T) {
	f := &ParseFailure{RawLine: "bad line", Reason: FailureNoMatch}
	assert.Equal(t, "parse failure (no_match): bad line", f.Error())
}
