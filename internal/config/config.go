package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/config"
)

// Postgres holds the PostgreSQL connection settings shared by both services.
type Postgres struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"storefront"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"storefront_secret"`
	DBName   string `env:"POSTGRES_DB" envDefault:"storefront"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"25"`
	MinConns int32  `env:"POSTGRES_MIN_CONNS" envDefault:"5"`
}

// Redis holds the Redis connection settings for cart storage.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Kafka holds the event broker settings.
type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
}

// Tracing holds the OpenTelemetry exporter settings.
type Tracing struct {
	Enabled      bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	SampleRate   float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// StoreAPI is the configuration for the REST service.
type StoreAPI struct {
	Environment    string   `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	Port           int      `env:"PORT" envDefault:"5000"`
	JWTSecret      string   `env:"JWT_SECRET,required"`
	TokenTTLHours  int      `env:"TOKEN_TTL_HOURS" envDefault:"24"`
	CartTTLHours   int      `env:"CART_TTL_HOURS" envDefault:"168"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
	Tracing  Tracing
}

// LoadStoreAPI reads the REST service configuration from the environment.
func LoadStoreAPI() (*StoreAPI, error) {
	cfg := &StoreAPI{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storeapi config: %w", err)
	}
	if err := validatePort(cfg.Port); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TokenTTL returns the access token lifetime.
func (c *StoreAPI) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// CartTTL returns how long an untouched cart survives in Redis.
func (c *StoreAPI) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// GraphQL is the configuration for the GraphQL service.
type GraphQL struct {
	Environment    string   `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	Port           int      `env:"PORT" envDefault:"4000"`
	JWTSecret      string   `env:"JWT_SECRET,required"`
	TokenTTLHours  int      `env:"TOKEN_TTL_HOURS" envDefault:"24"`
	CartTTLHours   int      `env:"CART_TTL_HOURS" envDefault:"168"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
	Tracing  Tracing
}

// LoadGraphQL reads the GraphQL service configuration from the environment.
func LoadGraphQL() (*GraphQL, error) {
	cfg := &GraphQL{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load graphql config: %w", err)
	}
	if err := validatePort(cfg.Port); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TokenTTL returns the access token lifetime.
func (c *GraphQL) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// CartTTL returns how long an untouched cart survives in Redis.
func (c *GraphQL) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port: %d", port)
	}
	return nil
}
