package weather

import (
	"fmt"
	"math"

	"github.com/a-bouts/nav-dashboard/latlon"
)

func floorMod(a float64, n float64) float64 {
	return a - n*math.Floor(a/n)
}

func bilinearInterpolate(x float64, y float64, g00 []float64, g10 []float64, g01 []float64, g11 []float64) (float64, float64) {
	rx := (1 - x)
	ry := (1 - y)

	a := rx * ry
	b := x * ry
	c := rx * y
	d := x * y

	u := g00[0]*a + g10[0]*b + g01[0]*c + g11[0]*d
	v := g00[1]*a + g10[1]*b + g01[1]*c + g11[1]*d

	return u, v
}

func (f *Forecast) hasGrid() bool {
	return f.NLat > 1 && f.NLon > 1 && f.ΔLat != 0 && f.ΔLon > 0 &&
		len(f.U) >= int(f.NLat*f.NLon)
}

func (f *Forecast) continuous() bool {
	return math.Floor(float64(f.NLon)*f.ΔLon) >= 360
}

func (f *Forecast) at(row, col uint32) []float64 {
	p := row*f.NLon + col
	return []float64{f.U[p], f.V[p]}
}

// SpeedAt interpolates the wind speed in knots at p. It returns false
// outside of the grid.
func (f *Forecast) SpeedAt(p latlon.LatLon) (float64, bool) {
	if !f.hasGrid() {
		return 0, false
	}

	i := (p.Lat - f.Lat0) / f.ΔLat
	if i < 0 || i > float64(f.NLat-1) {
		return 0, false
	}
	j := floorMod(p.Lon-f.Lon0, 360.0) / f.ΔLon

	fi := uint32(i)
	fj := uint32(j)
	if fi >= f.NLat-1 {
		fi = f.NLat - 2
	}

	next := fj + 1
	if next >= f.NLon {
		if !f.continuous() {
			return 0, false
		}
		next = next % f.NLon
		fj = fj % f.NLon
	}

	u, v := bilinearInterpolate(j-math.Floor(j), i-float64(fi),
		f.at(fi, fj), f.at(fi, next), f.at(fi+1, fj), f.at(fi+1, next))

	return math.Sqrt(u*u+v*v) * MsToKnots, true
}

// RouteSpeed is the mean wind speed in knots over the points inside the grid.
func (f *Forecast) RouteSpeed(points []latlon.LatLon) (float64, error) {
	sum := 0.0
	n := 0
	for _, p := range points {
		if speed, ok := f.SpeedAt(p); ok {
			sum += speed
			n++
		}
	}
	if n == 0 {
		return 0, fmt.Errorf("%w along the route in '%s'", ErrNoWind, f.File)
	}
	return sum / float64(n), nil
}
