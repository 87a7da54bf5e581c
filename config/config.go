package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env            string
	Port           string
	GinMode        string
	DBDriver       string
	DBDSN          string
	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	DBPassword     string
	JWTSecret      string
	TokenTTL       time.Duration
	OrderETABuffer time.Duration
	LogLevel       string
	LogJSON        bool
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	SeedData       bool
}

func Default() Config {
	return Config{
		Env:            "dev",
		Port:           "5000",
		GinMode:        "debug",
		DBDriver:       DriverPostgres,
		DBHost:         "localhost",
		DBPort:         "5432",
		DBName:         "multi_canteen_db",
		DBUser:         "postgres",
		DBPassword:     "password",
		JWTSecret:      "",
		TokenTTL:       24 * time.Hour,
		OrderETABuffer: 30 * time.Minute,
		LogLevel:       "info",
		LogJSON:        false,
		CORSOrigins:    []string{"http://localhost:3000"},
		RateLimitRPS:   10,
		RateLimitBurst: 100,
		SeedData:       false,
	}
}

// Load reads .env (if present) and layers environment variables over Default.
func Load(paths ...string) (Config, error) {
	if err := godotenv.Load(paths...); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	cfg, err := fromEnv(Default())
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func fromEnv(c Config) (Config, error) {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.GinMode = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.DBDriver = strings.ToLower(v)
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		c.DBDSN = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.DBHost = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		c.DBPort = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.DBName = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.DBUser = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.DBPassword = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("TOKEN_TTL: %w", err)
		}
		c.TokenTTL = d
	}
	if v := os.Getenv("ORDER_ETA_BUFFER"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("ORDER_ETA_BUFFER: %w", err)
		}
		c.OrderETABuffer = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("LOG_JSON: %w", err)
		}
		c.LogJSON = b
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimitRPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
		c.RateLimitBurst = n
	}
	if v := os.Getenv("SEED_DATA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("SEED_DATA: %w", err)
		}
		c.SeedData = b
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.OrderETABuffer < 0 {
		return fmt.Errorf("ORDER_ETA_BUFFER must not be negative")
	}
	return nil
}

// DSN returns DBDSN when set, otherwise builds one from the discrete DB_* settings.
func (c Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	switch c.DBDriver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	case DriverSQLite:
		return c.DBName + ".db"
	default:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
