package latlon

import "math"

const π = math.Pi

// R is the mean earth radius in nautical miles.
const R = 3440.065

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func toRadians(a float64) float64 {
	return a * π / 180.0
}

func toDegrees(a float64) float64 {
	return a * 180.0 / π
}

func wrap360(d float64) float64 {
	if 0.0 <= d && d < 360.0 {
		return d
	}
	return d - 360.0*math.Floor(d/360.0)
}

// DistanceTo is the great circle distance in nautical miles (haversine).
func DistanceTo(from, to LatLon) float64 {
	φ1 := toRadians(from.Lat)
	φ2 := toRadians(to.Lat)
	Δφ := φ2 - φ1

	Δλ := toRadians(to.Lon - from.Lon)

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) + math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	δ := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * δ
}

// BearingTo is the initial bearing in degrees from north.
func BearingTo(from, to LatLon) float64 {
	φ1 := toRadians(from.Lat)
	φ2 := toRadians(to.Lat)

	Δλ := toRadians(to.Lon - from.Lon)
	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(Δλ)
	y := math.Sin(Δλ) * math.Cos(φ2)

	return wrap360(toDegrees(math.Atan2(y, x)))
}

// PathLength sums the great circle legs between consecutive points.
func PathLength(points []LatLon) float64 {
	d := 0.0
	for i := 1; i < len(points); i++ {
		d += DistanceTo(points[i-1], points[i])
	}
	return d
}
