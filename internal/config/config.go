package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config agrupa toda la configuración del frontend web.
type Config struct {
	Port string `envconfig:"PORT" default:"3000"`

	// URL base del backend REST de la granja.
	FarmAPIURL     string        `envconfig:"FARM_API_URL" default:"http://localhost:5000"`
	FarmAPITimeout time.Duration `envconfig:"FARM_API_TIMEOUT" default:"10s"`

	// Secret para firmar la cookie de sesión.
	SessionSecret string `envconfig:"SESSION_SECRET" default:"dev-secret-change-me"`

	// Opcional: si viene, las sesiones se guardan en Postgres. Si no, in-memory.
	SessionDSN string `envconfig:"SESSION_DB_DSN"`

	// Ventana de frescura del cache de queries.
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"60s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load carga .env (si existe) y procesa las env vars.
func Load(log *logrus.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("error loading .env file (but continuing): %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"port":      cfg.Port,
		"farm_api":  cfg.FarmAPIURL,
		"cache_ttl": cfg.CacheTTL.String(),
	}).Info("configuration loaded")

	return &cfg, nil
}
