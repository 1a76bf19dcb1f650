package latlon

import (
	"math"
	"testing"
)

func TestWrap360(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 359},
		{361, 1},
		{720, 0},
		{45, 45},
	}
	for _, tt := range tests {
		if got := wrap360(tt.in); got != tt.want {
			t.Errorf("wrap360(%f) = %f; want %f", tt.in, got, tt.want)
		}
	}
}

func TestDistanceTo(t *testing.T) {
	p1 := LatLon{Lat: 0, Lon: 0}
	p2 := LatLon{Lat: 0, Lon: 1}
	// one minute of arc on the equator is one nautical mile
	if d := DistanceTo(p1, p2); math.Abs(d-60.04) > 0.05 {
		t.Errorf("{%f,%f}.DistanceTo({%f,%f}) = %f; want 60.04", p1.Lat, p1.Lon, p2.Lat, p2.Lon, d)
	}

	p1 = LatLon{Lat: 51.127, Lon: 1.338}
	p2 = LatLon{Lat: 50.964, Lon: 1.853}
	if d := DistanceTo(p1, p2); math.Round(d*10) != 218 {
		t.Errorf("{%f,%f}.DistanceTo({%f,%f}) = %f; want 21.8", p1.Lat, p1.Lon, p2.Lat, p2.Lon, d)
	}
}

func TestBearingTo(t *testing.T) {
	tests := []struct {
		from, to LatLon
		want     float64
	}{
		{LatLon{Lat: 0, Lon: 0}, LatLon{Lat: 1, Lon: 0}, 0},
		{LatLon{Lat: 0, Lon: 0}, LatLon{Lat: 0, Lon: 1}, 90},
		{LatLon{Lat: 1, Lon: 0}, LatLon{Lat: 0, Lon: 0}, 180},
		{LatLon{Lat: 0, Lon: 1}, LatLon{Lat: 0, Lon: 0}, 270},
		{LatLon{Lat: 0, Lon: 179.5}, LatLon{Lat: 0, Lon: -179.5}, 90},
	}
	for _, tt := range tests {
		if got := BearingTo(tt.from, tt.to); math.Round(got) != tt.want {
			t.Errorf("BearingTo(%v, %v) = %f; want %f", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestPathLength(t *testing.T) {
	points := []LatLon{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 0, Lon: 2}}
	if got, want := PathLength(points), 2*DistanceTo(points[0], points[1]); math.Abs(got-want) > 1e-9 {
		t.Errorf("PathLength = %f; want %f", got, want)
	}
	if got := PathLength(points[:1]); got != 0 {
		t.Errorf("PathLength(one point) = %f; want 0", got)
	}
}
