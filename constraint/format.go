package constraint

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Meta describes how a constraint is shown on the control panel.
type Meta struct {
	Label string  `json:"label"`
	Icon  string  `json:"icon"`
	Color string  `json:"color"`
	Step  float64 `json:"step"`
}

var Metas = map[Name]Meta{
	CargoCapacity:   {Label: "Cargo Capacity", Icon: "📦", Color: "purple", Step: 1},
	FuelCapacity:    {Label: "Fuel Capacity", Icon: "⛽", Color: "red", Step: 50},
	MaxSpeed:        {Label: "Maximum Speed", Icon: "🚢", Color: "green", Step: 1},
	WeatherSeverity: {Label: "Weather Severity", Icon: "🌊", Color: "blue", Step: 1},
	PortStops:       {Label: "Number of Port Stops", Icon: "⚓", Color: "yellow", Step: 1},
}

// WeatherConditions is indexed by severity, index 0 is unused.
var WeatherConditions = []string{"", "Calm", "Light", "Moderate", "Rough", "Very Rough", "High", "Very High"}

var printer = message.NewPrinter(language.AmericanEnglish)

func localized(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

func Condition(severity float64) string {
	i := int(severity)
	if float64(i) != severity || i < 0 || i >= len(WeatherConditions) {
		return ""
	}
	return WeatherConditions[i]
}

// Format renders a value with the unit of the constraint.
func Format(name Name, v float64) string {
	switch name {
	case CargoCapacity:
		return localized(v) + " TEU"
	case FuelCapacity:
		return localized(v) + " tons"
	case MaxSpeed:
		return fmt.Sprintf("%g knots", v)
	case WeatherSeverity:
		return fmt.Sprintf("%g (%s)", v, Condition(v))
	case PortStops:
		return fmt.Sprintf("%g ports", v)
	}
	return fmt.Sprintf("%g", v)
}

// Control is the state of one slider on the control panel.
type Control struct {
	Name Name `json:"name"`
	Meta
	Constraint
	Formatted    string `json:"formatted"`
	FormattedMin string `json:"formattedMin"`
	FormattedMax string `json:"formattedMax"`
}

func Controls(s Snapshot) []Control {
	controls := make([]Control, 0, len(Names))
	for _, name := range Names {
		c, _ := s.Get(name)
		controls = append(controls, Control{
			Name:         name,
			Meta:         Metas[name],
			Constraint:   c,
			Formatted:    Format(name, c.Value),
			FormattedMin: Format(name, c.Min),
			FormattedMax: Format(name, c.Max),
		})
	}
	return controls
}
