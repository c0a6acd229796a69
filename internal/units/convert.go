package units

import "math"

const milesPerKM = 0.621371

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MetersToKM converts meters to kilometers rounded to 2 decimals.
func MetersToKM(m float64) float64 {
	return round2(m / 1000)
}

// KMToMiles converts kilometers to miles rounded to 2 decimals.
func KMToMiles(km float64) float64 {
	return round2(km * milesPerKM)
}

// Visibility converts a provider visibility in meters to the display unit of
// the given system: miles for imperial, kilometers otherwise.
func Visibility(meters float64, s System) float64 {
	km := MetersToKM(meters)
	if s == Imperial {
		return KMToMiles(km)
	}
	return km
}
