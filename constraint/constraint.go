package constraint

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

type Name string

const (
	CargoCapacity   Name = "cargoCapacity"
	FuelCapacity    Name = "fuelCapacity"
	MaxSpeed        Name = "maxSpeed"
	WeatherSeverity Name = "weatherSeverity"
	PortStops       Name = "portStops"
)

// Names lists the constraints in control panel order.
var Names = []Name{CargoCapacity, FuelCapacity, MaxSpeed, WeatherSeverity, PortStops}

var (
	ErrUnknownConstraint = errors.New("unknown constraint")
	ErrInvalidValue      = errors.New("invalid constraint value")
)

type Constraint struct {
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Clamp brings v into [Min, Max] and snaps it on the slider grid starting at Min.
func (c Constraint) Clamp(v float64, step float64) float64 {
	if v < c.Min {
		v = c.Min
	}
	if v > c.Max {
		v = c.Max
	}
	if step > 0 {
		v = c.Min + math.Floor((v-c.Min)/step+0.5)*step
		if v > c.Max {
			v -= step
		}
	}
	return v
}

type Snapshot struct {
	CargoCapacity   Constraint `json:"cargoCapacity"`
	FuelCapacity    Constraint `json:"fuelCapacity"`
	MaxSpeed        Constraint `json:"maxSpeed"`
	WeatherSeverity Constraint `json:"weatherSeverity"`
	PortStops       Constraint `json:"portStops"`
}

func Defaults() Snapshot {
	return Snapshot{
		CargoCapacity:   Constraint{Value: 5000, Min: 1000, Max: 10000},
		FuelCapacity:    Constraint{Value: 2000, Min: 500, Max: 4000},
		MaxSpeed:        Constraint{Value: 22, Min: 12, Max: 30},
		WeatherSeverity: Constraint{Value: 3, Min: 1, Max: 7},
		PortStops:       Constraint{Value: 8, Min: 4, Max: 12},
	}
}

func (s *Snapshot) field(name Name) *Constraint {
	switch name {
	case CargoCapacity:
		return &s.CargoCapacity
	case FuelCapacity:
		return &s.FuelCapacity
	case MaxSpeed:
		return &s.MaxSpeed
	case WeatherSeverity:
		return &s.WeatherSeverity
	case PortStops:
		return &s.PortStops
	}
	return nil
}

func (s Snapshot) Get(name Name) (Constraint, bool) {
	c := s.field(name)
	if c == nil {
		return Constraint{}, false
	}
	return *c, true
}

// With returns a copy of s where the value of name is replaced, clamped to
// the constraint bounds and snapped to its step.
func (s Snapshot) With(name Name, value float64) (Snapshot, error) {
	c := s.field(name)
	if c == nil {
		return s, fmt.Errorf("%w '%s'", ErrUnknownConstraint, name)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return s, fmt.Errorf("%w for '%s': %v", ErrInvalidValue, name, value)
	}
	c.Value = c.Clamp(value, Metas[name].Step)
	return s, nil
}

// Store holds the current constraints of one dashboard.
type Store struct {
	current Snapshot
	lock    sync.RWMutex
}

func NewStore() *Store {
	return &Store{current: Defaults()}
}

func (s *Store) Snapshot() Snapshot {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.current
}

// SetValue replaces the value of one constraint, min and max stay fixed.
func (s *Store) SetValue(name Name, value float64) (Snapshot, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	next, err := s.current.With(name, value)
	if err != nil {
		return s.current, err
	}
	s.current = next
	return next, nil
}

func (s *Store) Reset() Snapshot {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.current = Defaults()
	return s.current
}
