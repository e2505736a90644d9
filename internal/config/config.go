package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBHost            string        `envconfig:"DB_HOST"`
	DBUser            string        `envconfig:"DB_USER"`
	DBPassword        string        `envconfig:"DB_PASSWORD"`
	DBName            string        `envconfig:"DB_NAME"`
	DBPort            string        `envconfig:"DB_PORT" default:"5432"`
	DBSSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`

	AppPort  string `envconfig:"APP_PORT" default:"8080"`
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Empty RedisURL keeps carts in process memory.
	RedisURL string        `envconfig:"REDIS_URL"`
	CartTTL  time.Duration `envconfig:"CART_TTL" default:"720h"`

	ExchangeRate  decimal.Decimal `envconfig:"EXCHANGE_RATE" default:"1200"`
	StoreName     string          `envconfig:"STORE_NAME" default:"GreenPlace"`
	WhatsAppPhone string          `envconfig:"WHATSAPP_PHONE" default:"5493512362632"`

	LookupCacheTTL time.Duration `envconfig:"LOOKUP_CACHE_TTL" default:"5m"`
	RateLimitRPS   float64       `envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int           `envconfig:"RATE_LIMIT_BURST" default:"20"`

	CORSAllowedOrigin string `envconfig:"CORS_ALLOWED_ORIGIN" default:"http://localhost:3000"`
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DBHost == "" {
		return nil, errors.New("environment variables not loaded properly: DB_HOST is empty")
	}

	if !cfg.ExchangeRate.IsPositive() {
		return nil, fmt.Errorf("EXCHANGE_RATE must be positive, got %s", cfg.ExchangeRate)
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
