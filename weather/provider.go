package weather

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/jasonlvhit/gocron"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-dashboard/constraint"
	"github.com/a-bouts/nav-dashboard/latlon"
)

var ErrNotConfigured = errors.New("no forecast configured")

// Preset is the weather severity suggested by the current forecast.
type Preset struct {
	File      string    `json:"file"`
	Date      time.Time `json:"date"`
	Speed     float64   `json:"speed"`
	Severity  float64   `json:"severity"`
	Condition string    `json:"condition"`
}

// Provider keeps the forecast of one GRIB file, reloaded when the file changes.
type Provider struct {
	path      string
	forecast  *Forecast
	modTime   time.Time
	lock      sync.RWMutex
	scheduler *gocron.Scheduler
}

func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

func (p *Provider) Configured() bool {
	return p.path != ""
}

// Reload loads the file again if it was modified since the last load.
func (p *Provider) Reload() error {
	if !p.Configured() {
		return ErrNotConfigured
	}

	info, err := os.Stat(p.path)
	if err != nil {
		log.WithError(err).Errorf("Error reading forecast '%s'", p.path)
		return err
	}

	p.lock.RLock()
	upToDate := p.forecast != nil && info.ModTime().Equal(p.modTime)
	p.lock.RUnlock()
	if upToDate {
		return nil
	}

	f, err := Load(p.path)
	if err != nil {
		log.WithError(err).Errorf("Error loading forecast '%s'", p.path)
		return err
	}

	p.lock.Lock()
	p.forecast = f
	p.modTime = info.ModTime()
	p.lock.Unlock()

	log.Infof("Forecast %s loaded, mean wind %.1f kt", f.File, f.MeanSpeed())
	return nil
}

// Watch reloads the forecast every interval seconds.
func (p *Provider) Watch(interval uint64) {
	if !p.Configured() || interval == 0 {
		return
	}

	s := gocron.NewScheduler()
	s.Every(interval).Seconds().Do(func() {
		p.Reload()
	})
	p.scheduler = s

	s.Start()
}

func (p *Provider) Stop() {
	if p.scheduler != nil {
		p.scheduler.Clear()
	}
}

func (p *Provider) load() (*Forecast, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}

	p.lock.RLock()
	f := p.forecast
	p.lock.RUnlock()

	if f == nil {
		if err := p.Reload(); err != nil {
			return nil, err
		}
		p.lock.RLock()
		f = p.forecast
		p.lock.RUnlock()
	}
	return f, nil
}

func preset(f *Forecast, speed float64) Preset {
	severity := Severity(speed)
	return Preset{
		File:      f.File,
		Date:      f.Date,
		Speed:     speed,
		Severity:  severity,
		Condition: constraint.Condition(severity),
	}
}

// Current is the preset for the mean wind over the whole forecast.
func (p *Provider) Current() (Preset, error) {
	f, err := p.load()
	if err != nil {
		return Preset{}, err
	}
	return preset(f, f.MeanSpeed()), nil
}

// Along is the preset for the wind at the route points, or the whole
// forecast when no point is covered by its grid.
func (p *Provider) Along(points []latlon.LatLon) (Preset, error) {
	f, err := p.load()
	if err != nil {
		return Preset{}, err
	}
	speed, err := f.RouteSpeed(points)
	if err != nil {
		log.WithError(err).Debug("Route outside of the forecast grid")
		return preset(f, f.MeanSpeed()), nil
	}
	return preset(f, speed), nil
}
