package voyage

import "github.com/a-bouts/nav-dashboard/latlon"

// Ports is the fixed ordered route from Shanghai to Piraeus.
var Ports = []string{
	"Shanghai",
	"Singapore",
	"Colombo",
	"Suez Canal",
	"Gibraltar",
	"Rotterdam",
	"Hamburg",
	"Felixstowe",
	"Le Havre",
	"Barcelona",
	"Genoa",
	"Piraeus",
}

var positions = map[string]latlon.LatLon{
	"Shanghai":   {Lat: 31.23, Lon: 121.47},
	"Singapore":  {Lat: 1.26, Lon: 103.82},
	"Colombo":    {Lat: 6.95, Lon: 79.84},
	"Suez Canal": {Lat: 29.97, Lon: 32.55},
	"Gibraltar":  {Lat: 36.14, Lon: -5.35},
	"Rotterdam":  {Lat: 51.95, Lon: 4.14},
	"Hamburg":    {Lat: 53.54, Lon: 9.97},
	"Felixstowe": {Lat: 51.96, Lon: 1.35},
	"Le Havre":   {Lat: 49.48, Lon: 0.11},
	"Barcelona":  {Lat: 41.35, Lon: 2.17},
	"Genoa":      {Lat: 44.40, Lon: 8.93},
	"Piraeus":    {Lat: 37.94, Lon: 23.64},
}

func clampPorts(n int) int {
	if n < 0 {
		return 0
	}
	if n > len(Ports) {
		return len(Ports)
	}
	return n
}

// SelectPorts returns the first n ports of the route.
func SelectPorts(n int) []string {
	n = clampPorts(n)
	selected := make([]string, n)
	copy(selected, Ports[:n])
	return selected
}

// Positions returns the coordinates of the first n ports of the route.
func Positions(n int) []latlon.LatLon {
	n = clampPorts(n)
	points := make([]latlon.LatLon, n)
	for i, port := range Ports[:n] {
		points[i] = positions[port]
	}
	return points
}

// GreatCircle is the sum of the great circle legs between the first n
// ports, in nautical miles.
func GreatCircle(n int) float64 {
	return latlon.PathLength(Positions(n))
}
