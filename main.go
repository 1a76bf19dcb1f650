package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/jasonlvhit/gocron"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-dashboard/api"
	"github.com/a-bouts/nav-dashboard/dashboard"
	"github.com/a-bouts/nav-dashboard/taskform"
	"github.com/a-bouts/nav-dashboard/weather"
	"github.com/a-bouts/nav-dashboard/xmpp"
)

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func main() {

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found")
	}

	fs := flag.NewFlagSet("nav-dashboard", flag.ExitOnError)
	var (
		listenAddr     = fs.String("listen-addr", ":8888", "address of the dashboard server")
		debug          = fs.Bool("debug", false, "debug logs")
		cpuprofile     = fs.Bool("cpuprofile", false, "profile chart rendering")
		taskForm       = fs.Bool("task-form", false, "mount the task form under /nlp")
		autoRefresh    = fs.Uint64("auto-refresh", 0, "refresh every dashboard every n seconds, 0 to disable")
		maxDashboards  = fs.Int("max-dashboards", 100, "maximum mounted dashboards, 0 for no limit")
		allowedOrigins = fs.String("allowed-origins", "", "comma separated origins allowed to open a dashboard")
		gribFile       = fs.String("grib-file", "", "GRIB2 forecast used for the weather preset")
		gribReload     = fs.Uint64("grib-reload", 300, "forecast reload check in seconds")
		xmppHost       = fs.String("xmpp-host", "", "")
		xmppJid        = fs.String("xmpp-jid", "", "")
		xmppPassword   = fs.String("xmpp-password", "", "")
		xmppTo         = fs.String("xmpp-to", "", "")
	)
	ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix())

	initLogger(*debug)

	presets := weather.NewProvider(*gribFile)
	if presets.Configured() {
		log.Infof("Load forecast %s", *gribFile)
		if err := presets.Reload(); err != nil {
			log.WithError(err).Warn("Weather preset unavailable until the next reload")
		}
		presets.Watch(*gribReload)
	}

	x := &xmpp.Xmpp{Config: xmpp.Config{Host: *xmppHost, Jid: *xmppJid, Password: *xmppPassword, To: *xmppTo}}
	if !x.Configured() {
		log.Info("No xmpp config, route summaries will not be sent")
	}

	hub := dashboard.NewHub(*maxDashboards, x, presets)

	s := gocron.NewScheduler()
	if *autoRefresh > 0 {
		s.Every(*autoRefresh).Seconds().Do(hub.RefreshAll)
		s.Start()
	}

	var form *taskform.Form
	if *taskForm {
		form = taskform.New()
	}

	origins := splitOrigins(*allowedOrigins)
	router := api.InitServer(*cpuprofile, hub, presets, form, origins)

	var handler http.Handler = router
	if len(origins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(handler)
	}
	handler, accessLog := withLogging(handler)
	defer accessLog.Close()

	srv := &http.Server{
		Addr:              *listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Infof("Start server on %s", *listenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server stopped")
		}
	}()

	<-stop
	log.Info("Stop server")

	s.Clear()
	presets.Stop()
	hub.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Error stopping server")
	}
}
