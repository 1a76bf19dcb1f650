package voyage

import (
	"math"
	"math/rand"

	"github.com/a-bouts/nav-dashboard/constraint"
)

// Source draws numbers in [0, 1).
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

// Series holds one value per selected port, aligned on Labels.
type Series struct {
	Labels             []string  `json:"labels"`
	CargoUtilization   []float64 `json:"cargoUtilization"`
	FuelRemaining      []float64 `json:"fuelRemaining"`
	SpeedEfficiency    []float64 `json:"speedEfficiency"`
	WeatherEfficiency  []float64 `json:"weatherEfficiency"`
	CumulativeDistance []float64 `json:"cumulativeDistance"`
}

func (s Series) Len() int {
	return len(s.Labels)
}

type Generator struct {
	rand Source
}

// NewGenerator returns a generator drawing from src, or from the unseeded
// global source when src is nil.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{rand: src}
}

// round rounds half up.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func (g *Generator) jitter() float64 {
	return g.rand.Float64()*10 - 5
}

// Generate computes the five constraint series along the selected ports.
func (g *Generator) Generate(s constraint.Snapshot) Series {
	ports := SelectPorts(int(s.PortStops.Value))
	n := len(ports)

	series := Series{
		Labels:             ports,
		CargoUtilization:   make([]float64, 0, n),
		FuelRemaining:      make([]float64, 0, n),
		SpeedEfficiency:    make([]float64, 0, n),
		WeatherEfficiency:  make([]float64, 0, n),
		CumulativeDistance: make([]float64, 0, n),
	}

	maxSpeed := s.MaxSpeed.Value
	weather := s.WeatherSeverity.Value
	cargoCapacity := s.CargoCapacity.Value

	fuel := 100.0
	distance := 0.0

	for i := 0; i < n; i++ {
		cargo := math.Max(20, 100-float64(i)*(80/float64(n))+g.jitter())
		series.CargoUtilization = append(series.CargoUtilization, round(cargo))

		if i > 0 {
			distance += 400 + g.rand.Float64()*800
		}
		series.CumulativeDistance = append(series.CumulativeDistance, round(distance/100))

		if i > 0 {
			speedFactor := maxSpeed / 25
			weatherFactor := weather / 4
			cargoFactor := (cargoCapacity / 5000) * (cargo / 100)
			consumption := 8 + speedFactor*weatherFactor*cargoFactor*15

			fuel = math.Max(5, fuel-consumption)

			// refuel at the next port unless the route is almost over
			if fuel < 25 && i < n-2 {
				fuel = 95
			}
		}
		series.FuelRemaining = append(series.FuelRemaining, round(fuel))

		weatherReduction := (weather - 1) * 0.1
		cargoReduction := (cargo / 100) * 0.15
		speed := maxSpeed * (1 - weatherReduction - cargoReduction)
		series.SpeedEfficiency = append(series.SpeedEfficiency, round(speed*4.5))

		efficiency := math.Max(20, 100-(weather-1)*15+g.jitter())
		series.WeatherEfficiency = append(series.WeatherEfficiency, round(efficiency))
	}

	return series
}

// Summary is the headline figures of a route.
type Summary struct {
	TotalDistance float64 `json:"totalDistance"`
	EstimatedTime float64 `json:"estimatedTime"`
	FuelCost      float64 `json:"fuelCost"`
	CargoRevenue  float64 `json:"cargoRevenue"`
	// GreatCircle is the direct distance between the ports, for reference.
	GreatCircle float64 `json:"greatCircle"`
}

func (g *Generator) Summarize(s constraint.Snapshot) Summary {
	distance := round(s.PortStops.Value * (600 + g.rand.Float64()*400))
	return Summary{
		TotalDistance: distance,
		EstimatedTime: round(distance / s.MaxSpeed.Value),
		FuelCost:      round(s.FuelCapacity.Value * 800 * (s.WeatherSeverity.Value / 4)),
		CargoRevenue:  round(s.CargoCapacity.Value * 1200),
		GreatCircle:   round(GreatCircle(int(s.PortStops.Value))),
	}
}
