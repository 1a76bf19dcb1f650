package weather

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/nilsmagnus/grib/griblib"
)

// MsToKnots converts a wind speed in m/s to knots.
const MsToKnots = 1.9438444924406

var ErrNoWind = errors.New("no 10 m wind in forecast")

// Forecast holds the 10 m wind components of a GRIB file, row by row
// from Lat0 with NLon values per row. ΔLat is negative when the rows
// run southward.
type Forecast struct {
	File string
	Date time.Time
	Lat0 float64
	Lon0 float64
	ΔLat float64
	ΔLon float64
	NLat uint32
	NLon uint32
	U    []float64
	V    []float64
}

func isWind10m(message *griblib.Message) bool {
	product := message.Section4.ProductDefinitionTemplate
	return message.Section0.Discipline == uint8(0) &&
		product.ParameterCategory == uint8(2) &&
		product.FirstSurface.Type == 103 &&
		product.FirstSurface.Value == 10
}

func Load(path string) (*Forecast, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	messages, err := griblib.ReadMessages(file)
	if err != nil {
		return nil, fmt.Errorf("read grib '%s': %w", path, err)
	}

	f := &Forecast{File: filepath.Base(path), Date: info.ModTime()}
	for _, message := range messages {
		if !isWind10m(message) {
			continue
		}
		if grid0, ok := message.Section3.Definition.(*griblib.Grid0); ok {
			f.setGrid(grid0)
		}
		switch message.Section4.ProductDefinitionTemplate.ParameterNumber {
		case 2:
			f.U = message.Section7.Data
		case 3:
			f.V = message.Section7.Data
		}
	}
	if len(f.U) == 0 || len(f.U) != len(f.V) {
		return nil, fmt.Errorf("%w '%s'", ErrNoWind, path)
	}
	return f, nil
}

// setGrid reads the geometry of a regular lat/lon grid. Di is the
// increment along a row (longitude), Dj the one between rows.
func (f *Forecast) setGrid(grid0 *griblib.Grid0) {
	f.Lat0 = float64(grid0.La1) / 1e6
	f.Lon0 = float64(grid0.Lo1) / 1e6
	f.ΔLat = math.Abs(float64(grid0.Dj)) / 1e6
	f.ΔLon = math.Abs(float64(grid0.Di)) / 1e6
	if grid0.La2 < grid0.La1 {
		f.ΔLat = -f.ΔLat
	}
	f.NLat = grid0.Nj
	f.NLon = grid0.Ni
}

// MeanSpeed is the mean wind speed over the grid, in knots.
func (f *Forecast) MeanSpeed() float64 {
	if len(f.U) == 0 {
		return 0
	}
	sum := 0.0
	for i := range f.U {
		sum += math.Sqrt(f.U[i]*f.U[i] + f.V[i]*f.V[i])
	}
	return sum / float64(len(f.U)) * MsToKnots
}

var severityLimits = []float64{7, 11, 17, 22, 28, 34}

// Severity maps a wind speed in knots on the 1-7 weather severity scale.
func Severity(knots float64) float64 {
	for i, limit := range severityLimits {
		if knots < limit {
			return float64(i + 1)
		}
	}
	return float64(len(severityLimits) + 1)
}
