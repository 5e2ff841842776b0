package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

// DSN returns a connection string suitable for pgx and golang-migrate.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// KafkaConfig holds broker addresses and the domain-event topic.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Config is the full runtime configuration of the servicing engine.
type Config struct {
	ServiceName string
	GRPCPort    int
	HTTPPort    int

	DB    DatabaseConfig
	Kafka KafkaConfig

	// DefaultDailyMoraRatePct is the system-wide daily late-payment rate,
	// as a percentage (0.1 means 0.1% per day). Loans may carry their own
	// override.
	DefaultDailyMoraRatePct decimal.Decimal

	// RecalcCronSpec drives the periodic mora sweep over active loans.
	RecalcCronSpec string

	JWTSecret string
	LogLevel  string
	LogFormat string

	MigrationsDir string
}

// Validate rejects configurations the service cannot run with.
func (c Config) Validate() error {
	if c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if c.DefaultDailyMoraRatePct.IsNegative() {
		return fmt.Errorf("DEFAULT_DAILY_MORA_RATE_PCT must not be negative")
	}
	return nil
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServiceName: "pagos-servicing",
		GRPCPort:    getEnvInt("GRPC_PORT", 9094),
		HTTPPort:    getEnvInt("HTTP_PORT", 8094),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "pagos"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "pagos_servicing"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "pagos.loan-events"),
		},
		DefaultDailyMoraRatePct: getEnvDecimal("DEFAULT_DAILY_MORA_RATE_PCT", decimal.NewFromFloat(0.1)),
		RecalcCronSpec:          getEnv("RECALC_CRON", "0 2 * * *"),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "json"),
		MigrationsDir:           getEnv("MIGRATIONS_DIR", "file://./migrations"),
	}
}

// GRPCAddr returns the listen address for the gRPC server.
func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// HTTPAddr returns the listen address for the HTTP server.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return fallback
}
