package chart

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// ErrNoContext is returned by a canvas that has nothing to draw on.
var ErrNoContext = errors.New("no drawing context")

// UpdateMode is the transition requested on update.
const UpdateMode = "active"

// Handle is a live chart bound to a canvas.
type Handle interface {
	Update(data Data, mode string) error
	Destroy() error
}

// Canvas creates charts.
type Canvas interface {
	NewChart(config Config) (Handle, error)
}

// Renderer owns at most one chart on its canvas. The chart is created on
// Mount, updated in place on Refresh and destroyed on Unmount.
type Renderer struct {
	canvas Canvas
	data   func() Data

	handle Handle
	lock   sync.Mutex
}

// NewRenderer binds a renderer to a canvas. data is called each time the
// chart needs fresh data.
func NewRenderer(canvas Canvas, data func() Data) *Renderer {
	return &Renderer{canvas: canvas, data: data}
}

func (r *Renderer) Mounted() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.handle != nil
}

func (r *Renderer) Mount() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.handle != nil {
		if err := r.handle.Destroy(); err != nil {
			log.WithError(err).Warn("Error destroying previous chart")
		}
		r.handle = nil
	}

	h, err := r.canvas.NewChart(NewConfig(r.data()))
	if errors.Is(err, ErrNoContext) {
		log.Debug("No drawing context, chart skipped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("mount chart: %w", err)
	}
	r.handle = h
	return nil
}

// Refresh replaces the chart data without recreating the chart.
func (r *Renderer) Refresh() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.handle == nil {
		return nil
	}
	if err := r.handle.Update(r.data(), UpdateMode); err != nil {
		return fmt.Errorf("update chart: %w", err)
	}
	return nil
}

func (r *Renderer) Unmount() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.handle == nil {
		return nil
	}
	h := r.handle
	r.handle = nil
	if err := h.Destroy(); err != nil {
		return fmt.Errorf("destroy chart: %w", err)
	}
	return nil
}
