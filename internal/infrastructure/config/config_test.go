package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "pagos-servicing", cfg.ServiceName)
	assert.Equal(t, 9094, cfg.GRPCPort)
	assert.Equal(t, 8094, cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "pagos_servicing", cfg.DB.Name)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "pagos.loan-events", cfg.Kafka.Topic)
	assert.True(t, cfg.DefaultDailyMoraRatePct.Equal(decimal.NewFromFloat(0.1)))
	assert.Equal(t, "0 2 * * *", cfg.RecalcCronSpec)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GRPC_PORT", "7001")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("DEFAULT_DAILY_MORA_RATE_PCT", "0.25")

	cfg := Load()

	assert.Equal(t, 7001, cfg.GRPCPort)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.DefaultDailyMoraRatePct.Equal(decimal.RequireFromString("0.25")))
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("GRPC_PORT", "not-a-port")
	t.Setenv("DEFAULT_DAILY_MORA_RATE_PCT", "abc")

	cfg := Load()

	assert.Equal(t, 9094, cfg.GRPCPort)
	assert.True(t, cfg.DefaultDailyMoraRatePct.Equal(decimal.NewFromFloat(0.1)))
}

func TestValidate(t *testing.T) {
	valid := Config{
		JWTSecret:               "secret",
		DefaultDailyMoraRatePct: decimal.NewFromFloat(0.1),
	}
	valid.DB.Password = "pw"
	require.NoError(t, valid.Validate())

	t.Run("missing database password", func(t *testing.T) {
		cfg := valid
		cfg.DB.Password = ""
		assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := valid
		cfg.JWTSecret = ""
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})

	t.Run("negative mora rate", func(t *testing.T) {
		cfg := valid
		cfg.DefaultDailyMoraRatePct = decimal.NewFromFloat(-0.1)
		assert.ErrorContains(t, cfg.Validate(), "DEFAULT_DAILY_MORA_RATE_PCT")
	})
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "pagos",
		Password: "pw",
		Name:     "loans",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://pagos:pw@db.internal:5433/loans?sslmode=disable", cfg.DSN())
}
