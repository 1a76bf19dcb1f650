package dashboard

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/a-bouts/nav-dashboard/chart"
	"github.com/a-bouts/nav-dashboard/constraint"
	"github.com/a-bouts/nav-dashboard/latlon"
	"github.com/a-bouts/nav-dashboard/voyage"
	"github.com/a-bouts/nav-dashboard/weather"
)

var ErrFull = errors.New("maximum dashboards reached")

type Notifier interface {
	Send(message string) error
}

type Presets interface {
	Along(route []latlon.LatLon) (weather.Preset, error)
}

// Hub keeps track of the mounted dashboards.
type Hub struct {
	notifier  Notifier
	presets   Presets
	newSource func() voyage.Source
	max       int

	sessions map[uuid.UUID]*Session
	lock     sync.RWMutex
}

// NewHub accepts up to max dashboards at a time, max <= 0 means no limit.
func NewHub(max int, notifier Notifier, presets Presets) *Hub {
	return &Hub{
		notifier: notifier,
		presets:  presets,
		max:      max,
		sessions: make(map[uuid.UUID]*Session),
	}
}

func (h *Hub) Len() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.sessions)
}

func (h *Hub) Full() bool {
	return h.max > 0 && h.Len() >= h.max
}

func (h *Hub) register(conn Conn, fields log.Fields) (*Session, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.max > 0 && len(h.sessions) >= h.max {
		return nil, ErrFull
	}

	var src voyage.Source
	if h.newSource != nil {
		src = h.newSource()
	}

	s := &Session{
		ID:        uuid.New(),
		hub:       h,
		conn:      conn,
		store:     constraint.NewStore(),
		generator: voyage.NewGenerator(src),
	}
	s.logger = log.WithFields(fields).WithField("session", s.ID.String())
	s.renderer = chart.NewRenderer(s, s.data)
	h.sessions[s.ID] = s
	return s, nil
}

func (h *Hub) unregister(s *Session) {
	h.lock.Lock()
	delete(h.sessions, s.ID)
	h.lock.Unlock()
}

func (h *Hub) all() []*Session {
	h.lock.RLock()
	defer h.lock.RUnlock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// Serve runs a dashboard on conn until it disconnects.
func (h *Hub) Serve(conn Conn, fields log.Fields) error {
	s, err := h.register(conn, fields)
	if err != nil {
		conn.Close()
		return err
	}
	defer h.unregister(s)

	s.logger.Info("Dashboard mounted")
	s.run()
	s.logger.Info("Dashboard unmounted")
	return nil
}

// RefreshAll updates the chart of every mounted dashboard.
func (h *Hub) RefreshAll() {
	for _, s := range h.all() {
		if err := s.renderer.Refresh(); err != nil {
			s.logger.WithError(err).Warn("Error refreshing dashboard")
		}
	}
}

// CloseAll releases every chart and closes the connections.
func (h *Hub) CloseAll() {
	for _, s := range h.all() {
		if err := s.renderer.Unmount(); err != nil {
			s.logger.WithError(err).Debug("Error releasing chart")
		}
		s.conn.Close()
	}
}

var printer = message.NewPrinter(language.AmericanEnglish)

// SummaryLine is the one line route summary sent on refresh.
func SummaryLine(s constraint.Snapshot, summary voyage.Summary) string {
	return printer.Sprintf("%d ports: %d nm, %d h, fuel $%d, revenue $%d",
		int(s.PortStops.Value),
		int64(summary.TotalDistance),
		int64(summary.EstimatedTime),
		int64(summary.FuelCost),
		int64(summary.CargoRevenue))
}
