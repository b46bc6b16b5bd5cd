package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL    string
	JWTSecret      string
	JWTIssuer      string
	TokenTTL       time.Duration
	PasswordPepper string
	HTTPAddress    string
	AllowedOrigins []string
	LogLevel       string
}

const defaultTokenTTL = 24 * time.Hour

// Load reads configuration from an optional config.json and the process
// environment. DATABASE_URL and JWT_SECRET are required: a missing signing
// secret is a misconfiguration, not a runtime condition.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	for _, key := range []string{
		"DATABASE_URL", "JWT_SECRET", "JWT_ISSUER", "TOKEN_TTL",
		"PASSWORD_PEPPER", "HTTP_ADDRESS", "ALLOWED_ORIGINS", "LOG_LEVEL",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:    viper.GetString("DATABASE_URL"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		JWTIssuer:      viper.GetString("JWT_ISSUER"),
		PasswordPepper: viper.GetString("PASSWORD_PEPPER"),
		HTTPAddress:    viper.GetString("HTTP_ADDRESS"),
		LogLevel:       viper.GetString("LOG_LEVEL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.HTTPAddress == "" {
		cfg.HTTPAddress = ":8080"
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "taskhub"
	}

	cfg.TokenTTL = defaultTokenTTL
	if raw := viper.GetString("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}

	// ALLOWED_ORIGINS is a JSON array so it round-trips through both the
	// config file and a single env var.
	if raw := viper.GetString("ALLOWED_ORIGINS"); raw != "" {
		var origins []string
		if err := json.Unmarshal([]byte(raw), &origins); err != nil {
			return nil, fmt.Errorf("parse ALLOWED_ORIGINS: %w", err)
		}
		cfg.AllowedOrigins = origins
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}

	return cfg, nil
}
