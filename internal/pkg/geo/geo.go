package geo

import (
	"context"
	"math"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Haversine returns the great-circle distance between two coordinates in meters.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// DistanceCalculator computes the distance between two coordinates in meters.
type DistanceCalculator interface {
	Distance(ctx context.Context, a, b Point) (float64, error)
}

type HaversineCalculator struct{}

func NewHaversineCalculator() *HaversineCalculator {
	return &HaversineCalculator{}
}

func (HaversineCalculator) Distance(_ context.Context, a, b Point) (float64, error) {
	return Haversine(a.Lat, a.Lon, b.Lat, b.Lon), nil
}
