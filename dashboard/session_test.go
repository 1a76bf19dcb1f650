package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-dashboard/constraint"
	"github.com/a-bouts/nav-dashboard/latlon"
	"github.com/a-bouts/nav-dashboard/voyage"
	"github.com/a-bouts/nav-dashboard/weather"
	"github.com/a-bouts/nav-dashboard/xmpp"
)

type fakeConn struct {
	actions  chan Action
	messages chan Message
	closed   bool
	lock     sync.Mutex
}

func newFakeConn() *fakeConn {
	return &fakeConn{actions: make(chan Action), messages: make(chan Message, 64)}
}

func (c *fakeConn) ReadJSON(v interface{}) error {
	a, ok := <-c.actions
	if !ok {
		return io.EOF
	}
	*(v.(*Action)) = a
	return nil
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return errors.New("connection closed")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var m Message
	json.Unmarshal(b, &m)
	c.messages <- m
	return nil
}

func (c *fakeConn) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) next(t *testing.T) Message {
	t.Helper()
	select {
	case m := <-c.messages:
		return m
	case <-time.After(time.Second):
		t.Fatal("no message from dashboard")
	}
	return Message{}
}

type half struct{}

func (half) Float64() float64 { return 0.5 }

type fakeNotifier struct {
	sent chan string
	err  error
}

func (n fakeNotifier) Send(message string) error {
	n.sent <- message
	return n.err
}

type fakePresets struct {
	preset weather.Preset
	err    error
}

func (p fakePresets) Along(route []latlon.LatLon) (weather.Preset, error) {
	if p.err == nil && len(route) != int(constraint.Defaults().PortStops.Value) {
		return weather.Preset{}, errors.New("route does not follow the port stops")
	}
	return p.preset, p.err
}

func serve(t *testing.T, h *Hub) (*fakeConn, chan error) {
	h.newSource = func() voyage.Source { return half{} }
	conn := newFakeConn()
	done := make(chan error, 1)
	go func() { done <- h.Serve(conn, log.Fields{"action": "test"}) }()

	if m := conn.next(t); m.Type != "panel" || len(m.Controls) != 5 || m.Session == "" {
		t.Fatalf("first message = %+v; want the control panel", m)
	}
	if m := conn.next(t); m.Type != "create" || m.Config == nil || len(m.Config.Data.Labels) != 8 {
		t.Fatalf("second message = %+v; want chart creation", m)
	}
	return conn, done
}

func control(m Message, name constraint.Name) constraint.Control {
	for _, c := range m.Controls {
		if c.Name == name {
			return c
		}
	}
	return constraint.Control{}
}

func TestSessionLifecycle(t *testing.T) {
	h := NewHub(0, nil, nil)
	conn, done := serve(t, h)

	if h.Len() != 1 {
		t.Errorf("Len() = %d; want 1", h.Len())
	}

	conn.actions <- Action{Action: "set", Name: constraint.PortStops, Value: 4}
	panel := conn.next(t)
	if c := control(panel, constraint.PortStops); c.Value != 4 || c.Formatted != "4 ports" {
		t.Errorf("portStops control = %+v; want 4 ports", c)
	}
	update := conn.next(t)
	if update.Type != "update" || update.Mode != "active" || update.Chart != 1 {
		t.Fatalf("message = %+v; want an active update of chart 1", update)
	}
	want := []string{"Shanghai", "Singapore", "Colombo", "Suez Canal"}
	if strings.Join(update.Data.Labels, ",") != strings.Join(want, ",") {
		t.Errorf("labels = %v; want %v", update.Data.Labels, want)
	}

	conn.actions <- Action{Action: "reset"}
	panel = conn.next(t)
	if c := control(panel, constraint.PortStops); c.Value != 8 {
		t.Errorf("portStops after reset = %f; want 8", c.Value)
	}
	if m := conn.next(t); m.Type != "update" || len(m.Data.Labels) != 8 {
		t.Errorf("message = %+v; want an update with 8 ports", m)
	}

	conn.actions <- Action{Action: "refresh"}
	if m := conn.next(t); m.Type != "update" || m.Chart != 1 {
		t.Errorf("message = %+v; want an update of the same chart", m)
	}

	close(conn.actions)
	if m := conn.next(t); m.Type != "destroy" || m.Chart != 1 {
		t.Errorf("message = %+v; want chart 1 destroyed", m)
	}
	if err := <-done; err != nil {
		t.Errorf("Serve() = %v", err)
	}
	if h.Len() != 0 || !conn.closed {
		t.Errorf("session not released: Len() = %d, closed = %t", h.Len(), conn.closed)
	}
}

func TestSessionErrors(t *testing.T) {
	h := NewHub(0, nil, nil)
	conn, _ := serve(t, h)
	defer close(conn.actions)

	conn.actions <- Action{Action: "set", Name: "draft", Value: 12}
	if m := conn.next(t); m.Type != "error" || !strings.Contains(m.Error, "unknown constraint") {
		t.Errorf("message = %+v; want an unknown constraint error", m)
	}

	conn.actions <- Action{Action: "jump"}
	if m := conn.next(t); m.Type != "error" {
		t.Errorf("message = %+v; want an error", m)
	}

	conn.actions <- Action{Action: "weather"}
	if m := conn.next(t); m.Type != "error" || !strings.Contains(m.Error, weather.ErrNotConfigured.Error()) {
		t.Errorf("message = %+v; want a missing forecast error", m)
	}
}

func TestSessionWeatherPreset(t *testing.T) {
	h := NewHub(0, nil, fakePresets{preset: weather.Preset{File: "gfs.grb2", Speed: 30, Severity: 6}})
	conn, _ := serve(t, h)
	defer close(conn.actions)

	conn.actions <- Action{Action: "weather"}
	panel := conn.next(t)
	if c := control(panel, constraint.WeatherSeverity); c.Value != 6 || c.Formatted != "6 (High)" {
		t.Errorf("weatherSeverity control = %+v; want 6 (High)", c)
	}
	if m := conn.next(t); m.Type != "update" {
		t.Errorf("message = %+v; want an update", m)
	}
}

func TestSessionRefreshNotifies(t *testing.T) {
	n := fakeNotifier{sent: make(chan string, 1), err: xmpp.ErrNotConfigured}
	h := NewHub(0, n, nil)
	conn, _ := serve(t, h)
	defer close(conn.actions)

	conn.actions <- Action{Action: "refresh"}
	conn.next(t)

	select {
	case line := <-n.sent:
		want := "8 ports: 6,400 nm, 291 h, fuel $1,200,000, revenue $6,000,000"
		if line != want {
			t.Errorf("notification = %q; want %q", line, want)
		}
	case <-time.After(time.Second):
		t.Fatal("no notification sent")
	}
}

func TestHubFull(t *testing.T) {
	h := NewHub(1, nil, nil)
	conn, _ := serve(t, h)
	defer close(conn.actions)

	if !h.Full() {
		t.Errorf("Full() = false with one dashboard out of one")
	}
	other := newFakeConn()
	if err := h.Serve(other, nil); !errors.Is(err, ErrFull) {
		t.Errorf("Serve() on a full hub = %v; want ErrFull", err)
	}
	if !other.closed {
		t.Errorf("rejected connection left open")
	}
}

func TestHubRefreshAllAndClose(t *testing.T) {
	h := NewHub(0, nil, nil)
	conn, done := serve(t, h)

	h.RefreshAll()
	if m := conn.next(t); m.Type != "update" {
		t.Errorf("message = %+v; want an update", m)
	}

	h.CloseAll()
	if m := conn.next(t); m.Type != "destroy" {
		t.Errorf("message = %+v; want destroy", m)
	}
	close(conn.actions)
	<-done
	if h.Len() != 0 {
		t.Errorf("Len() after CloseAll = %d; want 0", h.Len())
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPage(&buf, "/route/api/v1/dashboard/ws", false); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	for _, want := range []string{
		`id="fuelCapacity"`,
		`step="50"`,
		"5,000 TEU",
		"3 (Moderate)",
		"Reset to Defaults",
		"Refresh Analysis",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
	if !strings.Contains(html, "/route/api/v1/dashboard/ws") && !strings.Contains(html, `\/route\/api\/v1\/dashboard\/ws`) {
		t.Errorf("page does not reference the dashboard socket")
	}
	if strings.Contains(html, "Apply Forecast") {
		t.Errorf("page shows the forecast button without a forecast")
	}
}
