package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App         App         `yaml:"app"`
	HTTP        HTTP        `yaml:"http"`
	Log         Log         `yaml:"log"`
	Auth        Auth        `yaml:"auth"`
	Postgres    Postgres    `yaml:"postgres"`
	Redis       Redis       `yaml:"redis"`
	RateLimit   RateLimit   `yaml:"rate_limit"`
	Idempotency Idempotency `yaml:"idempotency"`
	Cache       Cache       `yaml:"cache"`
	Queue       Queue       `yaml:"queue"`
	Webhook     Webhook     `yaml:"webhook"`
}

type App struct {
	Name    string `yaml:"name" env:"APP_NAME" env-default:"logistics-crm"`
	Version string `yaml:"version" env:"APP_VERSION" env-default:"1.0.0"`
}

type HTTP struct {
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type Auth struct {
	// Secret signs the bearer tokens issued by /auth/login.
	Secret string `yaml:"secret" env:"AUTH_SECRET" env-default:"dev-secret-change-me"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER" env-default:"user"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-default:"password"`
	DBName   string `yaml:"dbname" env:"POSTGRES_DB" env-default:"logistics_db"`
}

type Redis struct {
	Addr string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
}

type RateLimit struct {
	Limit         int `yaml:"limit" env:"RATE_LIMIT" env-default:"10"`
	WindowSeconds int `yaml:"window_seconds" env:"RATE_LIMIT_WINDOW_SECONDS" env-default:"600"`
}

type Idempotency struct {
	TTLSeconds int `yaml:"ttl_seconds" env:"IDEMPOTENCY_TTL_SECONDS" env-default:"300"`
}

type Cache struct {
	TTLSeconds int `yaml:"ttl_seconds" env:"CACHE_TTL_SECONDS" env-default:"60"`
}

type Queue struct {
	Key string `yaml:"key" env:"QUEUE_KEY" env-default:"order_reprice_queue"`
}

type Webhook struct {
	URL                   string `yaml:"url" env:"WEBHOOK_URL" env-default:"http://localhost:9100/webhooks/orders"`
	MaxAttempts           int    `yaml:"max_attempts" env:"WEBHOOK_MAX_ATTEMPTS" env-default:"3"`
	InitialBackoffSeconds int    `yaml:"initial_backoff_seconds" env:"WEBHOOK_INITIAL_BACKOFF_SECONDS" env-default:"1"`
	TimeoutSeconds        int    `yaml:"timeout_seconds" env:"WEBHOOK_TIMEOUT_SECONDS" env-default:"5"`
}

func New() (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		// fallback to env vars if file not found
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	} else {
		// Allow env vars to override config file
		cleanenv.ReadEnv(cfg)
	}

	return cfg, nil
}
