package chart

import (
	"fmt"

	"github.com/a-bouts/nav-dashboard/voyage"
)

type Color struct {
	R, G, B uint8
}

func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c Color) RGBA(alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, alpha)
}

var (
	Purple = Color{147, 51, 234}
	Red    = Color{239, 68, 68}
	Green  = Color{34, 197, 94}
	Blue   = Color{59, 130, 246}
	Amber  = Color{245, 158, 11}
)

// Line is one series of the route chart with its fixed label and color.
type Line struct {
	Label string
	Color Color
	value func(voyage.Series) []float64
}

var Lines = []Line{
	{"Cargo Utilization (%)", Purple, func(s voyage.Series) []float64 { return s.CargoUtilization }},
	{"Fuel Remaining (%)", Red, func(s voyage.Series) []float64 { return s.FuelRemaining }},
	{"Speed Efficiency (scaled)", Green, func(s voyage.Series) []float64 { return s.SpeedEfficiency }},
	{"Weather Efficiency (%)", Blue, func(s voyage.Series) []float64 { return s.WeatherEfficiency }},
	{"Distance Progress (scaled)", Amber, func(s voyage.Series) []float64 { return s.CumulativeDistance }},
}

type Dataset struct {
	Label                string    `json:"label"`
	Data                 []float64 `json:"data"`
	BorderColor          string    `json:"borderColor"`
	BackgroundColor      string    `json:"backgroundColor"`
	BorderWidth          int       `json:"borderWidth"`
	Fill                 bool      `json:"fill"`
	Tension              float64   `json:"tension"`
	PointBackgroundColor string    `json:"pointBackgroundColor"`
	PointBorderColor     string    `json:"pointBorderColor"`
	PointBorderWidth     int       `json:"pointBorderWidth"`
	PointRadius          int       `json:"pointRadius"`
}

// Data is the chart data descriptor consumed by Chart.js.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Build bundles the series with their labels and the shared line style.
func Build(s voyage.Series) Data {
	data := Data{
		Labels:   s.Labels,
		Datasets: make([]Dataset, 0, len(Lines)),
	}
	for _, l := range Lines {
		data.Datasets = append(data.Datasets, Dataset{
			Label:                l.Label,
			Data:                 l.value(s),
			BorderColor:          l.Color.RGB(),
			BackgroundColor:      l.Color.RGBA(0.1),
			BorderWidth:          3,
			Fill:                 false,
			Tension:              0.3,
			PointBackgroundColor: l.Color.RGB(),
			PointBorderColor:     "white",
			PointBorderWidth:     2,
			PointRadius:          6,
		})
	}
	return data
}

type Font struct {
	Size   int    `json:"size"`
	Weight string `json:"weight,omitempty"`
}

type Title struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
	Font    Font   `json:"font"`
	Color   string `json:"color"`
	Padding int    `json:"padding,omitempty"`
}

type LegendLabels struct {
	Font          Font   `json:"font"`
	Color         string `json:"color"`
	UsePointStyle bool   `json:"usePointStyle"`
	PointStyle    string `json:"pointStyle"`
	Padding       int    `json:"padding"`
}

type Legend struct {
	Display  bool         `json:"display"`
	Position string       `json:"position"`
	Labels   LegendLabels `json:"labels"`
}

type Plugins struct {
	Legend Legend `json:"legend"`
	Title  Title  `json:"title"`
}

type Grid struct {
	Color string `json:"color"`
}

type Ticks struct {
	Color       string `json:"color"`
	MaxRotation int    `json:"maxRotation,omitempty"`
	MinRotation int    `json:"minRotation,omitempty"`
	Font        *Font  `json:"font,omitempty"`
}

type Scale struct {
	Title Title    `json:"title"`
	Grid  Grid     `json:"grid"`
	Ticks Ticks    `json:"ticks"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

type Scales struct {
	X Scale `json:"x"`
	Y Scale `json:"y"`
}

type Interaction struct {
	Intersect bool   `json:"intersect"`
	Mode      string `json:"mode"`
}

type PointElement struct {
	HoverRadius int `json:"hoverRadius"`
}

type Elements struct {
	Point PointElement `json:"point"`
}

type Options struct {
	Responsive          bool        `json:"responsive"`
	MaintainAspectRatio bool        `json:"maintainAspectRatio"`
	Plugins             Plugins     `json:"plugins"`
	Scales              Scales      `json:"scales"`
	Interaction         Interaction `json:"interaction"`
	Elements            Elements    `json:"elements"`
}

const (
	TitleText  = "Maritime Route Optimization - Multi-Constraint Analysis"
	XAxisTitle = "Port Destinations Along Route"
	YAxisTitle = "Constraint Values (% or scaled units)"

	YMin = 0.0
	YMax = 120.0
)

func DefaultOptions() Options {
	yMin, yMax := YMin, YMax
	gridColor := "rgba(156, 163, 175, 0.3)"
	axisTitle := func(text string) Title {
		return Title{Display: true, Text: text, Font: Font{Size: 14, Weight: "bold"}, Color: "#4b5563"}
	}

	return Options{
		Responsive:          true,
		MaintainAspectRatio: false,
		Plugins: Plugins{
			Legend: Legend{
				Display:  true,
				Position: "top",
				Labels: LegendLabels{
					Font:          Font{Size: 13, Weight: "bold"},
					Color:         "#374151",
					UsePointStyle: true,
					PointStyle:    "circle",
					Padding:       20,
				},
			},
			Title: Title{
				Display: true,
				Text:    TitleText,
				Font:    Font{Size: 18, Weight: "bold"},
				Color:   "#1f2937",
				Padding: 20,
			},
		},
		Scales: Scales{
			X: Scale{
				Title: axisTitle(XAxisTitle),
				Grid:  Grid{Color: gridColor},
				Ticks: Ticks{Color: "#6b7280", MaxRotation: 45, MinRotation: 30, Font: &Font{Size: 11}},
			},
			Y: Scale{
				Title: axisTitle(YAxisTitle),
				Grid:  Grid{Color: gridColor},
				Ticks: Ticks{Color: "#6b7280"},
				Min:   &yMin,
				Max:   &yMax,
			},
		},
		Interaction: Interaction{Intersect: false, Mode: "index"},
		Elements:    Elements{Point: PointElement{HoverRadius: 8}},
	}
}

// Config is everything needed to construct a chart.
type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

func NewConfig(data Data) Config {
	return Config{Type: "line", Data: data, Options: DefaultOptions()}
}
