package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-dashboard/api/model"
	"github.com/a-bouts/nav-dashboard/chart"
	"github.com/a-bouts/nav-dashboard/constraint"
	"github.com/a-bouts/nav-dashboard/dashboard"
	"github.com/a-bouts/nav-dashboard/taskform"
	"github.com/a-bouts/nav-dashboard/voyage"
	"github.com/a-bouts/nav-dashboard/weather"
)

const (
	socketPath   = "/route/api/v1/dashboard/ws"
	taskEndpoint = "/nlp/api/v1/task"

	defaultWidth  = 1200
	defaultHeight = 500
	maxSize       = 4096
)

type server struct {
	cpuprofile     bool
	hub            *dashboard.Hub
	presets        *weather.Provider
	form           *taskform.Form
	allowedOrigins []string
	upgrader       websocket.Upgrader
	profileLock    sync.Mutex
}

func InitServer(cpuprofile bool, hub *dashboard.Hub, presets *weather.Provider, form *taskform.Form, allowedOrigins []string) *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	if presets == nil {
		presets = weather.NewProvider("")
	}

	s := &server{
		cpuprofile:     cpuprofile,
		hub:            hub,
		presets:        presets,
		form:           form,
		allowedOrigins: allowedOrigins,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	api := router.PathPrefix("/").Subrouter()

	api.HandleFunc("/nav/-/healthz", s.healthz).Methods(http.MethodGet)
	api.Handle("/", handlers.CompressHandler(http.HandlerFunc(s.dashboardPage))).Methods(http.MethodGet)

	apiV1 := router.PathPrefix("/route/api/v1").Subrouter()
	apiV1.HandleFunc("/dashboard/ws", s.dashboardSocket).Methods(http.MethodGet)
	apiV1.HandleFunc("/constraints", s.constraints).Methods(http.MethodGet)
	apiV1.HandleFunc("/route", s.route).Methods(http.MethodPost)
	apiV1.HandleFunc("/chart.png", s.chartImage).Methods(http.MethodGet)
	apiV1.HandleFunc("/weather", s.weather).Methods(http.MethodGet)

	if form != nil {
		api.Handle("/nlp", handlers.CompressHandler(http.HandlerFunc(s.taskPage))).Methods(http.MethodGet)
		nlp := router.PathPrefix("/nlp/api/v1").Subrouter()
		nlp.HandleFunc("/task", s.taskState).Methods(http.MethodGet)
		nlp.HandleFunc("/task", s.submitTask).Methods(http.MethodPost)
	}

	return router
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status     string `json:"status"`
		Dashboards int    `json:"dashboards"`
	}

	writeJSON(w, http.StatusOK, health{Status: "Ok", Dashboards: s.hub.Len()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	type errorResult struct {
		Error string `json:"error"`
	}

	writeJSON(w, status, errorResult{Error: err.Error()})
}

func requestLogger(r *http.Request, action string) *log.Entry {
	fields := log.Fields{
		"action": action,
	}
	if ip, err := getIp(r); err == nil {
		fields["IP"] = ip
	}
	return log.WithFields(fields)
}

func (s *server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func (s *server) dashboardPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboard.RenderPage(w, socketPath, s.presets.Configured()); err != nil {
		log.WithError(err).Error("Error rendering dashboard")
	}
}

func (s *server) dashboardSocket(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "dashboard")

	if s.hub.Full() {
		logger.Warn("Dashboard refused, maximum reached")
		writeError(w, http.StatusServiceUnavailable, dashboard.ErrFull)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithError(err).Warn("Error upgrading dashboard connection")
		return
	}

	if err := s.hub.Serve(conn, logger.Data); err != nil {
		logger.WithError(err).Warn("Dashboard refused")
	}
}

func (s *server) constraints(w http.ResponseWriter, r *http.Request) {
	snapshot := constraint.Defaults()
	writeJSON(w, http.StatusOK, model.Constraints{
		Constraints: snapshot,
		Controls:    constraint.Controls(snapshot),
	})
}

func (s *server) route(w http.ResponseWriter, req *http.Request) {
	logger := requestLogger(req, "route")

	var r model.Route
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	snapshot, err := r.Snapshot()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()

	g := voyage.NewGenerator(nil)
	series := g.Generate(snapshot)

	logger.Infof("Route %d ports took %s", series.Len(), time.Now().Sub(start).String())

	writeJSON(w, http.StatusOK, model.RouteResult{
		Constraints: snapshot,
		Chart:       chart.NewConfig(chart.Build(series)),
		Summary:     g.Summarize(snapshot),
	})
}

func parseSize(values url.Values, key string, def int) (int, error) {
	v := values.Get(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 || i > maxSize {
		return 0, fmt.Errorf("invalid %s '%s'", key, v)
	}
	return i, nil
}

// querySnapshot reads the constraints from the query string, e.g.
// ?cargoCapacity=60&portStops=6.
func querySnapshot(values url.Values) (constraint.Snapshot, error) {
	var r model.Route
	for _, name := range constraint.Names {
		v := values.Get(string(name))
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return constraint.Snapshot{}, fmt.Errorf("%w for '%s': %s", constraint.ErrInvalidValue, name, v)
		}
		if r.Constraints == nil {
			r.Constraints = make(map[constraint.Name]float64)
		}
		r.Constraints[name] = f
	}
	return r.Snapshot()
}

func (s *server) chartImage(w http.ResponseWriter, r *http.Request) {
	if s.cpuprofile {
		// profile.Start exits when a profile is already running
		s.profileLock.Lock()
		defer s.profileLock.Unlock()
		defer profile.Start(profile.NoShutdownHook, profile.Quiet).Stop()
	}

	logger := requestLogger(r, "chart")
	query := r.URL.Query()

	width, err := parseSize(query, "width", defaultWidth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	height, err := parseSize(query, "height", defaultHeight)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	snapshot, err := querySnapshot(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	format := chart.ParseFormat(query.Get("format"))
	canvas := chart.ImageCanvas{Width: width, Height: height, Format: format}
	g := voyage.NewGenerator(nil)

	var buf bytes.Buffer
	err = chart.WriteImage(&buf, canvas, func() chart.Data {
		return chart.Build(g.Generate(snapshot))
	})
	if err != nil {
		logger.WithError(err).Error("Error rendering chart")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// weather answers the preset over the whole forecast, or along the route
// with ?portStops=n.
func (s *server) weather(w http.ResponseWriter, r *http.Request) {
	var preset weather.Preset
	var err error
	if v := r.URL.Query().Get(string(constraint.PortStops)); v != "" {
		snapshot, serr := querySnapshot(r.URL.Query())
		if serr != nil {
			writeError(w, http.StatusBadRequest, serr)
			return
		}
		preset, err = s.presets.Along(voyage.Positions(int(snapshot.PortStops.Value)))
	} else {
		preset, err = s.presets.Current()
	}
	if errors.Is(err, weather.ErrNotConfigured) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		log.WithError(err).Error("Error reading forecast")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	log.Infof("Weather %s : %.1f kt severity %g", preset.File, preset.Speed, preset.Severity)

	writeJSON(w, http.StatusOK, preset)
}

func (s *server) taskPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := taskform.RenderPage(w, taskEndpoint, s.form); err != nil {
		log.WithError(err).Error("Error rendering task page")
	}
}

func (s *server) taskState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.form.State())
}

func (s *server) submitTask(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "task")

	var t model.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	state, err := s.form.SubmitText(t.Query)
	switch {
	case errors.Is(err, taskform.ErrBusy):
		writeJSON(w, http.StatusConflict, state)
	case errors.Is(err, taskform.ErrEmpty):
		writeJSON(w, http.StatusOK, state)
	default:
		logger.Infof("Task submitted '%s'", t.Query)
		writeJSON(w, http.StatusAccepted, state)
	}
}

func getIp(r *http.Request) (string, error) {
	//Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}

	//Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		ip = strings.TrimSpace(ip)
		netIP := net.ParseIP(ip)
		if netIP != nil {
			return ip, nil
		}
	}

	//Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}
	return "", fmt.Errorf("No valid ip found")
}
