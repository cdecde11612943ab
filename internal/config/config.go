package config

import (
	"errors"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	// DBDriver selecciona el backend de persistencia: postgres | mongo.
	DBDriver      string `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL   string `env:"DATABASE_URL"`
	MongoURL      string `env:"MONGO_URL"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"tuiter"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`

	MembershipCacheTTLSeconds int `env:"MEMBERSHIP_CACHE_TTL_SECONDS" envDefault:"30"`
}

var ErrMissingDatabaseURL = errors.New("missing database url for selected driver")

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	switch cfg.DBDriver {
	case "mongo":
		if cfg.MongoURL == "" {
			return nil, ErrMissingDatabaseURL
		}
	default:
		if cfg.DatabaseURL == "" {
			return nil, ErrMissingDatabaseURL
		}
	}
	return &cfg, nil
}
