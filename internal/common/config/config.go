package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"grubdash/internal/common/idgen"
)

const (
	IDModeUUID     = idgen.ModeUUID
	IDModeSequence = idgen.ModeSequence
)

type HTTP struct {
	Port int
}

type MQ struct {
	Host     string
	Port     int
	User     string
	Pass     string
	VHost    string
	Exchange string
}

// Enabled reports whether event publishing to RabbitMQ is configured.
func (m MQ) Enabled() bool { return m.Host != "" }

type App struct {
	HTTP     HTTP
	Rabbit   MQ
	IDMode   string
	SeedData bool
	LogLevel string
}

// Load reads an optional .env file and then the process environment.
func Load() (App, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function so tests can pass a map.
func FromEnv(getenv func(string) string) (App, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	port, err := atoi(get("PORT", "3000"))
	if err != nil {
		return App{}, fmt.Errorf("PORT: %w", err)
	}
	mqPort, err := atoi(get("RABBITMQ_PORT", "5672"))
	if err != nil {
		return App{}, fmt.Errorf("RABBITMQ_PORT: %w", err)
	}
	seed, err := strconv.ParseBool(get("SEED_DATA", "false"))
	if err != nil {
		return App{}, fmt.Errorf("SEED_DATA: %w", err)
	}

	a := App{
		HTTP: HTTP{Port: port},
		Rabbit: MQ{
			Host:     get("RABBITMQ_HOST", ""),
			Port:     mqPort,
			User:     get("RABBITMQ_USER", "guest"),
			Pass:     get("RABBITMQ_PASSWORD", "guest"),
			VHost:    get("RABBITMQ_VHOST", "/"),
			Exchange: get("RABBITMQ_EXCHANGE", "restaurant_events"),
		},
		IDMode:   strings.ToLower(get("ID_MODE", IDModeUUID)),
		SeedData: seed,
		LogLevel: strings.ToLower(get("LOG_LEVEL", "debug")),
	}
	return a, a.Validate()
}

func (a App) Validate() error {
	if a.HTTP.Port <= 0 || a.HTTP.Port > 65535 {
		return fmt.Errorf("invalid config: port %d out of range", a.HTTP.Port)
	}
	if a.IDMode != IDModeUUID && a.IDMode != IDModeSequence {
		return fmt.Errorf("invalid config: ID_MODE must be %q or %q (got %q)", IDModeUUID, IDModeSequence, a.IDMode)
	}
	if a.Rabbit.Enabled() && a.Rabbit.Exchange == "" {
		return errors.New("invalid config: RABBITMQ_EXCHANGE is empty")
	}
	return nil
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return n, nil
}
