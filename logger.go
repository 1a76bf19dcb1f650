package main

import (
	"io"
	stdlog "log"
	"net/http"

	"github.com/gorilla/handlers"
	log "github.com/sirupsen/logrus"
)

func initLogger(debug bool) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// recoveryLogger reports recovered handler panics through logrus.
type recoveryLogger struct{}

func (recoveryLogger) Println(args ...interface{}) {
	log.Errorln(args...)
}

// withLogging wraps the router with access logs and panic recovery. The
// returned writer must be closed on shutdown.
func withLogging(h http.Handler) (http.Handler, io.Closer) {
	w := log.StandardLogger().WriterLevel(log.InfoLevel)
	stdlog.SetOutput(w)

	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(log.IsLevelEnabled(log.DebugLevel)),
	)(h)
	return handlers.CombinedLoggingHandler(w, h), w
}
