package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.App.StoreDriver)
	assert.True(t, cfg.Sales.TaxRate.Equal(decimal.RequireFromString("0.16")))
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "100-M", cfg.RateLimit.Default)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, 30, cfg.Alerts.ScanMinutes)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("SALES_TAX_RATE", "0.19")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("ALERT_TO", "a@x.com, b@x.com")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Sales.TaxRate.Equal(decimal.RequireFromString("0.19")))
	assert.Equal(t, "memory", cfg.App.StoreDriver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, cfg.Alerts.To)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_TasaInvalida_RetornaError(t *testing.T) {
	t.Setenv("SALES_TAX_RATE", "abc")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SALES_TAX_RATE", "1.5")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_DriverDesconocido_RetornaError(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "inv", SSLMode: "disable"}
	dsn := c.ConnectionString()
	assert.Contains(t, dsn, "postgres://app:p%40ss%3Aw%2Frd@db:5432/inv")
	assert.Contains(t, dsn, "sslmode=disable")

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
