// Package geo provides great-circle distance and travel-time estimates.
package geo

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371

// Mode is a travel mode with an assumed average city speed.
type Mode string

const (
	ModeWalking Mode = "walking"
	ModeCycling Mode = "cycling"
	ModeDriving Mode = "driving"
)

// average speeds in km/h
var modeSpeeds = map[Mode]float64{
	ModeWalking: 5,
	ModeCycling: 15,
	ModeDriving: 30,
}

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKm returns the haversine great-circle distance between two points.
// Invalid input propagates as NaN; validation is the caller's job.
func DistanceKm(from, to Coordinate) float64 {
	dLat := toRadians(to.Lat - from.Lat)
	dLng := toRadians(to.Lng - from.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(from.Lat))*math.Cos(toRadians(to.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// TravelTime estimates travel duration for a distance and formats it as
// "X min" below an hour, otherwise "Yh Zmin" (or "Yh" on the exact hour).
// Unknown modes fall back to driving.
func TravelTime(distanceKm float64, mode Mode) string {
	speed, ok := modeSpeeds[mode]
	if !ok {
		speed = modeSpeeds[ModeDriving]
	}

	minutes := int(math.Round(distanceKm / speed * 60))
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}

	hours := minutes / 60
	remainder := minutes % 60
	if remainder > 0 {
		return fmt.Sprintf("%dh %dmin", hours, remainder)
	}
	return fmt.Sprintf("%dh", hours)
}

// FormatDistance renders meters below 1 km, otherwise kilometers with one
// decimal.
func FormatDistance(distanceKm float64) string {
	if distanceKm < 1 {
		return fmt.Sprintf("%dm", int(math.Round(distanceKm*1000)))
	}
	return fmt.Sprintf("%.1fkm", distanceKm)
}
