package config

import (
	"errors"
	"log"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort     string `env:"HTTP_PORT" envDefault:"8080"`
	DBConnString string `env:"DB_CONNECTION_STRING"`
	JWTSecret    string `env:"JWT_SECRET"`
	Email        Email
}

type Email struct {
	Address      string `env:"EMAIL_ADDRESS"`
	Password     string `env:"EMAIL_PASSWORD"`
	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"templates"`
}

// Load reads the optional .env file and then the process environment.
// DB_CONNECTION_STRING and JWT_SECRET have no sensible defaults, so their
// absence is a startup error rather than a runtime surprise.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.DBConnString == "" {
		return nil, errors.New("no DB_CONNECTION_STRING provided")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("no JWT_SECRET provided")
	}
	return cfg, nil
}
