package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds runtime configuration for the wallet client, sourced from env vars.
type Config struct {
	APIBaseURL  string
	IdleTimeout time.Duration
	SessionFile string
	LogFile     string
}

// Load reads client configuration from the environment and applies defaults.
func Load() (Config, error) {
	cfg := Config{
		APIBaseURL:  strings.TrimRight(fallback(os.Getenv("WALLET_API_BASE_URL"), "http://localhost:8080"), "/"),
		SessionFile: strings.TrimSpace(os.Getenv("WALLET_SESSION_FILE")),
		LogFile:     strings.TrimSpace(os.Getenv("WALLET_LOG_FILE")),
	}

	seconds := fallback(os.Getenv("WALLET_IDLE_TIMEOUT_SECONDS"), "30")
	if n, err := strconv.Atoi(seconds); err == nil && n > 0 {
		cfg.IdleTimeout = time.Duration(n) * time.Second
	} else {
		cfg.IdleTimeout = 30 * time.Second
	}

	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, "wallet-client", "session.json")
	}

	return cfg, nil
}

// ServerConfig holds runtime configuration for the in-memory dev server.
type ServerConfig struct {
	Port               string
	JWTSecret          string
	JWTIssuer          string
	JWTTTL             time.Duration
	InitialBalance     decimal.Decimal
	DailyWithdrawLimit decimal.Decimal
	DailyTransferLimit decimal.Decimal
	AdminEmail         string
	AdminPassword      string
}

// LoadServer reads dev server configuration from the environment.
func LoadServer() (ServerConfig, error) {
	cfg := ServerConfig{
		Port:          fallback(os.Getenv("PORT"), "8080"),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:     fallback(os.Getenv("JWT_ISSUER"), "wallet-devserver"),
		AdminEmail:    strings.TrimSpace(os.Getenv("DEV_ADMIN_EMAIL")),
		AdminPassword: strings.TrimSpace(os.Getenv("DEV_ADMIN_PASSWORD")),
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}

	var err error
	if cfg.InitialBalance, err = decimalEnv("DEV_INITIAL_BALANCE", "0"); err != nil {
		return ServerConfig{}, err
	}
	if cfg.DailyWithdrawLimit, err = decimalEnv("DEV_DAILY_WITHDRAW_LIMIT", "10000"); err != nil {
		return ServerConfig{}, err
	}
	if cfg.DailyTransferLimit, err = decimalEnv("DEV_DAILY_TRANSFER_LIMIT", "10000"); err != nil {
		return ServerConfig{}, err
	}

	if cfg.JWTSecret == "" {
		return ServerConfig{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the dev server to bind to.
func (c ServerConfig) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func decimalEnv(key, def string) (decimal.Decimal, error) {
	raw := fallback(os.Getenv(key), def)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
