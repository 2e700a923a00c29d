package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	devJWTSecret        = "dev-secret-change-in-production"
	devProductKeySecret = "dev-product-key-secret"
)

type Config struct {
	Port             string
	Env              string
	LogLevel         string
	DatabaseDSN      string
	RedisURL         string
	JWTSecret        string
	JWTExpiry        time.Duration
	ProductKeySecret string
	BcryptCost       int
	AutoMigrate      bool
	ShutdownTimeout  time.Duration
	SMTP             SMTPConfig
}

// SMTPConfig holds the outbound mail settings used for inquiry notifications.
// An empty Host disables mail delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
		DatabaseDSN:      getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/homeline?parseTime=true"),
		RedisURL:         os.Getenv("REDIS_URL"),
		JWTSecret:        getEnv("JWT_SECRET", devJWTSecret),
		ProductKeySecret: getEnv("PRODUCT_KEY_SECRET", devProductKeySecret),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "no-reply@homeline.local"),
		},
	}

	var err error
	if cfg.JWTExpiry, err = getDuration("JWT_EXPIRY", 10*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", 10); err != nil {
		return Config{}, err
	}
	if cfg.SMTP.Port, err = getInt("SMTP_PORT", 587); err != nil {
		return Config{}, err
	}
	if cfg.AutoMigrate, err = getBool("AUTO_MIGRATE", true); err != nil {
		return Config{}, err
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("invalid BCRYPT_COST: must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.JWTExpiry <= 0 {
		return Config{}, errors.New("invalid JWT_EXPIRY: must be positive")
	}

	if cfg.IsProduction() {
		if cfg.JWTSecret == devJWTSecret {
			return Config{}, errors.New("JWT_SECRET must be set in production environment")
		}
		if cfg.ProductKeySecret == devProductKeySecret {
			return Config{}, errors.New("PRODUCT_KEY_SECRET must be set in production environment")
		}
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr returns the listen address for http.Server.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
