package main

import (
	"net/http"
	"os"
	"time"

	_ "farm-records/docs"
	"farm-records/internal/devserver"
	"farm-records/internal/platform/logger"
)

// Backend de desarrollo: expone la misma API REST que el servicio real,
// con estado en memoria. Swagger en /swagger/index.html.
func main() {
	log := logger.NewFromEnv()

	addr := ":5000"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      devserver.New(log).Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.WithField("addr", addr).Info("starting dev API server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server error")
	}
}
