package dashboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-dashboard/chart"
	"github.com/a-bouts/nav-dashboard/constraint"
	"github.com/a-bouts/nav-dashboard/voyage"
	"github.com/a-bouts/nav-dashboard/weather"
	"github.com/a-bouts/nav-dashboard/xmpp"
)

// Conn is the message connection with the browser. *websocket.Conn
// implements it.
type Conn interface {
	ReadJSON(v interface{}) error
	WriteJSON(v interface{}) error
	Close() error
}

// Action is a control panel event sent by the browser.
type Action struct {
	Action string          `json:"action"`
	Name   constraint.Name `json:"name,omitempty"`
	Value  float64         `json:"value,omitempty"`
}

// Message is pushed to the browser.
type Message struct {
	Type     string               `json:"type"`
	Session  string               `json:"session,omitempty"`
	Chart    int                  `json:"chart,omitempty"`
	Config   *chart.Config        `json:"config,omitempty"`
	Data     *chart.Data          `json:"data,omitempty"`
	Mode     string               `json:"mode,omitempty"`
	Controls []constraint.Control `json:"controls,omitempty"`
	Summary  *voyage.Summary      `json:"summary,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// Session is one mounted dashboard. It owns its constraints and its chart.
type Session struct {
	ID uuid.UUID

	hub       *Hub
	conn      Conn
	store     *constraint.Store
	generator *voyage.Generator
	renderer  *chart.Renderer
	logger    *log.Entry

	charts    int
	writeLock sync.Mutex
}

func (s *Session) send(m Message) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()
	return s.conn.WriteJSON(m)
}

func (s *Session) data() chart.Data {
	return chart.Build(s.generator.Generate(s.store.Snapshot()))
}

// socketChart is a chart drawn by the browser.
type socketChart struct {
	session *Session
	id      int
}

func (c socketChart) Update(data chart.Data, mode string) error {
	return c.session.send(Message{Type: "update", Chart: c.id, Data: &data, Mode: mode})
}

func (c socketChart) Destroy() error {
	return c.session.send(Message{Type: "destroy", Chart: c.id})
}

// NewChart asks the browser to create a chart on its canvas.
func (s *Session) NewChart(config chart.Config) (chart.Handle, error) {
	s.charts++
	c := socketChart{session: s, id: s.charts}
	if err := s.send(Message{Type: "create", Chart: c.id, Config: &config}); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Session) pushPanel() error {
	snapshot := s.store.Snapshot()
	summary := s.generator.Summarize(snapshot)
	return s.send(Message{
		Type:     "panel",
		Session:  s.ID.String(),
		Controls: constraint.Controls(snapshot),
		Summary:  &summary,
	})
}

// changed pushes the new control panel and updates the chart in place.
func (s *Session) changed() error {
	if err := s.pushPanel(); err != nil {
		return err
	}
	return s.renderer.Refresh()
}

func (s *Session) notify() {
	if s.hub.notifier == nil {
		return
	}
	snapshot := s.store.Snapshot()
	line := SummaryLine(snapshot, s.generator.Summarize(snapshot))
	go func() {
		err := s.hub.notifier.Send(line)
		if errors.Is(err, xmpp.ErrNotConfigured) {
			s.logger.Debug("Notification skipped, no xmpp config")
		} else if err != nil {
			s.logger.WithError(err).Warn("Error sending route summary")
		}
	}()
}

func (s *Session) handle(a Action) error {
	switch a.Action {
	case "set":
		if _, err := s.store.SetValue(a.Name, a.Value); err != nil {
			return s.send(Message{Type: "error", Error: err.Error()})
		}
		return s.changed()
	case "reset":
		s.store.Reset()
		return s.changed()
	case "refresh":
		s.notify()
		return s.renderer.Refresh()
	case "weather":
		ports := int(s.store.Snapshot().PortStops.Value)
		preset, err := s.presets().Along(voyage.Positions(ports))
		if err != nil {
			return s.send(Message{Type: "error", Error: err.Error()})
		}
		s.logger.Infof("Weather preset %s: %.1f kt, severity %g", preset.File, preset.Speed, preset.Severity)
		if _, err := s.store.SetValue(constraint.WeatherSeverity, preset.Severity); err != nil {
			return s.send(Message{Type: "error", Error: err.Error()})
		}
		return s.changed()
	}
	return s.send(Message{Type: "error", Error: fmt.Sprintf("unknown action '%s'", a.Action)})
}

func (s *Session) presets() Presets {
	if s.hub.presets == nil {
		return weather.NewProvider("")
	}
	return s.hub.presets
}

// run mounts the chart then handles actions until the connection fails.
func (s *Session) run() {
	defer func() {
		if err := s.renderer.Unmount(); err != nil {
			s.logger.WithError(err).Debug("Chart released without browser acknowledgement")
		}
		s.conn.Close()
	}()

	if err := s.pushPanel(); err != nil {
		s.logger.WithError(err).Warn("Error sending control panel")
		return
	}
	if err := s.renderer.Mount(); err != nil {
		s.logger.WithError(err).Warn("Error mounting chart")
		return
	}

	for {
		var a Action
		if err := s.conn.ReadJSON(&a); err != nil {
			s.logger.WithError(err).Debug("Dashboard disconnected")
			return
		}
		s.logger.WithField("name", a.Name).Debugf("Action %s %g", a.Action, a.Value)
		if err := s.handle(a); err != nil {
			s.logger.WithError(err).Warn("Error handling action")
			return
		}
	}
}
