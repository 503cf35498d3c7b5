// Package geo holds coordinate parsing and great-circle distance math shared
// by the matcher and the alert stream.
package geo

import (
	"fmt"
	"math"
	"strconv"

	"bloodlink/pkg/e"
)

const earthRadiusKM = 6371.0

// ParseLatitude parses a latitude query value. An empty value is nil when the
// field is optional and an error when it is required. Valid values are rounded
// to 7 decimal places (~1 cm).
func ParseLatitude(raw string, required bool) (*float64, error) {
	return parseCoordinate("latitude", raw, required, -90, 90)
}

// ParseLongitude is the longitude counterpart of ParseLatitude.
func ParseLongitude(raw string, required bool) (*float64, error) {
	return parseCoordinate("longitude", raw, required, -180, 180)
}

func parseCoordinate(field, raw string, required bool, min, max float64) (*float64, error) {
	if raw == "" {
		if required {
			return nil, fmt.Errorf("%s: %w", field, e.ErrMissingField)
		}
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s: %w", field, e.ErrInvalidFormat)
	}
	if v < min || v > max {
		return nil, fmt.Errorf("%s: %w", field, e.ErrOutOfRange)
	}

	v = Round7(v)
	return &v, nil
}

// HaversineKM returns the great-circle distance in kilometers between two
// points on a spherical Earth.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

// Round7 rounds a coordinate to 7 decimal places, the storage precision.
func Round7(v float64) float64 {
	return math.Round(v*1e7) / 1e7
}

// Round2 rounds a distance to 2 decimal places for API responses.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
