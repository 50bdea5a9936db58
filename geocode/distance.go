package geocode

import (
	"fmt"
	"math"
)

const earthRadiusKM = 6371.0

// CalculateDistance returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	radLat1 := lat1 * math.Pi / 180
	radLat2 := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(radLat1)*math.Cos(radLat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

// FormatDistance renders a distance for display, e.g. "850 m away" or "12.3 km away".
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m away", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km away", km)
}
