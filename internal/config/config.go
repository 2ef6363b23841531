package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/logger"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	LogLevel string

	RequestTimeoutSecs int
	OverdueSweepSecs   int

	LateFeeDailyRate     decimal.Decimal
	PlatformWalletUserID string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// LoadDotEnv preloads variables from the given files. Missing files are
// ignored; variables already set in the process win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "lending"),
		MySQLUser: getenv("MYSQL_USER", "lending"),
		MySQLPass: getenv("MYSQL_PASS", "lending"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		LogLevel: getenv("LOG_LEVEL", "info"),

		RequestTimeoutSecs: getint("REQUEST_TIMEOUT_SECONDS", 10),
		OverdueSweepSecs:   getint("OVERDUE_SWEEP_INTERVAL_SECONDS", 0),

		LateFeeDailyRate:     decimal.RequireFromString("0.02"),
		PlatformWalletUserID: strings.TrimSpace(os.Getenv("PLATFORM_WALLET_USER_ID")),
	}
	if v := os.Getenv("LATE_FEE_DAILY_RATE"); v != "" {
		// an unparsable rate becomes -1 so Validate rejects it
		if d, err := decimal.NewFromString(v); err == nil {
			c.LateFeeDailyRate = d
		} else {
			c.LateFeeDailyRate = decimal.NewFromInt(-1)
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}
	if c.LateFeeDailyRate.IsNegative() || c.LateFeeDailyRate.GreaterThan(decimal.NewFromInt(1)) {
		return errors.New("LATE_FEE_DAILY_RATE must be a decimal between 0 and 1")
	}
	if c.IdempTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS must be positive")
	}
	if c.RequestTimeoutSecs <= 0 {
		return errors.New("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if c.OverdueSweepSecs < 0 {
		return errors.New("OVERDUE_SWEEP_INTERVAL_SECONDS must not be negative")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime is needed for DATETIME columns
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

func (c *Config) OverdueSweepInterval() time.Duration {
	return time.Duration(c.OverdueSweepSecs) * time.Second
}

// GormLogLevel keeps SQL logging quiet unless LOG_LEVEL=debug.
func (c *Config) GormLogLevel() logger.LogLevel {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return logger.Info
	case "error", "panic":
		return logger.Error
	default:
		return logger.Warn
	}
}
