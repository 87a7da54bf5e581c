package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_NAME", "canteen_test")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ORDER_ETA_BUFFER", "45m")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("SEED_DATA", "true")

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "canteen_test.db", cfg.DSN())
	assert.Equal(t, 45*time.Minute, cfg.OrderETABuffer)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.SeedData)
	assert.Nil(t, TxOptions(cfg))
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ORDER_ETA_BUFFER", "soon")
	_, err := Load("does-not-exist.env")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate(), "missing secret")

	cfg.JWTSecret = "x"
	assert.NoError(t, cfg.Validate())

	cfg.DBDriver = "oracle"
	assert.Error(t, cfg.Validate())
}

func TestDSNDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "host=localhost port=5432 user=postgres password=password dbname=multi_canteen_db sslmode=disable", cfg.DSN())
	assert.NotNil(t, TxOptions(cfg))

	cfg.DBDriver = DriverMySQL
	assert.Contains(t, cfg.DSN(), "postgres:password@tcp(localhost:5432)/multi_canteen_db")

	cfg.DBDSN = "custom"
	assert.Equal(t, "custom", cfg.DSN())
}
