package model

import (
	"github.com/a-bouts/nav-dashboard/chart"
	"github.com/a-bouts/nav-dashboard/constraint"
	"github.com/a-bouts/nav-dashboard/voyage"
)

// Route asks for the route chart of a what-if scenario. Missing
// constraints keep their default value.
type Route struct {
	Constraints map[constraint.Name]float64 `json:"constraints"`
}

// Snapshot applies the requested values on the defaults.
func (r Route) Snapshot() (constraint.Snapshot, error) {
	s := constraint.Defaults()
	for name, v := range r.Constraints {
		var err error
		if s, err = s.With(name, v); err != nil {
			return s, err
		}
	}
	return s, nil
}

type RouteResult struct {
	Constraints constraint.Snapshot `json:"constraints"`
	Chart       chart.Config        `json:"chart"`
	Summary     voyage.Summary      `json:"summary"`
}

type Constraints struct {
	Constraints constraint.Snapshot  `json:"constraints"`
	Controls    []constraint.Control `json:"controls"`
}

type Task struct {
	Query string `json:"query"`
}
