package main

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"farm-records/internal/adapters/storage/memory"
	"farm-records/internal/adapters/storage/postgres"
	"farm-records/internal/cache"
	"farm-records/internal/config"
	"farm-records/internal/farmapi"
	"farm-records/internal/platform/logger"
	sess "farm-records/internal/session"
	"farm-records/internal/web"
)

func main() {
	log := logger.NewFromEnv()

	cfg, err := config.Load(log)
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}

	api, err := farmapi.New(cfg.FarmAPIURL, cfg.FarmAPITimeout, log)
	if err != nil {
		log.WithError(err).Fatal("creating farm API client")
	}

	// Postgres si hay DSN; si no, sesiones en memoria (modo dev).
	var repo sess.Repository
	if cfg.SessionDSN != "" {
		db, err := postgres.Open(cfg.SessionDSN)
		if err != nil {
			log.WithError(err).Fatal("connecting to session database")
		}
		defer db.Close()
		repo = postgres.NewSessionsRepo(db)
		log.Info("using postgres session store")
	} else {
		repo = memory.NewSessionRepo()
		log.Info("using in-memory session store")
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode

	app, err := web.NewApp(web.Options{
		API:      api,
		Sessions: sess.NewManager(repo, api, log),
		Store:    store,
		Cache:    cache.New(cfg.CacheTTL, log),
		Log:      log,
	})
	if err != nil {
		log.WithError(err).Fatal("building web app")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.WithField("addr", srv.Addr).Info("starting web server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server error")
	}
}
