package config

import (
	"fmt"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config carries everything the server needs from the environment. The admin
// password and JWT secret live here and are handed to the middleware as plain
// configuration; there is no package-global credential state anywhere.
type Config struct {
	Address       string `env:"ADDRESS" envDefault:":4000"`
	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDBName   string `env:"MONGODB_DBNAME" envDefault:"ram-service"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	JWTSecret     string `env:"JWT_SECRET"`
	// AppURL is the public base URL baked into the /embed snippet. When
	// empty the request host is used instead.
	AppURL     string `env:"APP_URL"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on system environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
