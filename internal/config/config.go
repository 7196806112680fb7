// Package config loads runtime settings from the environment or a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Env              string        `yaml:"env" env:"APP_ENV" env-default:"production"`
	Port             string        `yaml:"port" env:"PORT" env-default:"8080"`
	DBPath           string        `yaml:"db_path" env:"DB_PATH" env-default:"data/ictus.db"`
	SecretKey        string        `yaml:"secret_key" env:"SECRET_KEY"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"24h"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"720h"`
	Timezone         string        `yaml:"timezone" env:"TZ" env-default:"UTC"`
	LogLevel         string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	CORSAllowOrigins string        `yaml:"cors_allow_origins" env:"CORS_ALLOW_ORIGINS" env-default:"*"`
	ModelPath        string        `yaml:"prediction_model_path" env:"PREDICTION_MODEL_PATH"`
}

// Load reads CONFIG_PATH when it is set and the environment otherwise.
// Environment variables always override file values.
func Load() (*Config, error) {
	var cfg Config

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	secret, err := ValidateSecretKey(cfg.SecretKey)
	if err != nil {
		return err
	}
	cfg.SecretKey = secret

	port, err := ValidatePort(cfg.Port)
	if err != nil {
		return err
	}
	cfg.Port = port

	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}

	if _, err := time.LoadLocation(strings.TrimSpace(cfg.Timezone)); err != nil {
		return fmt.Errorf("invalid TZ %q: %w", cfg.Timezone, err)
	}
	return nil
}

// Location falls back to UTC; Load has already rejected unknown names.
func (cfg *Config) Location() *time.Location {
	location, err := time.LoadLocation(strings.TrimSpace(cfg.Timezone))
	if err != nil {
		return time.UTC
	}
	return location
}

func (cfg *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(cfg.Env), "production")
}

// AllowedOrigins returns the CORS origin list in the comma-separated form fiber expects.
func (cfg *Config) AllowedOrigins() string {
	parts := strings.Split(cfg.CORSAllowOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}

func ValidateSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func ValidatePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("PORT must be a number between 1 and 65535, got %q", raw)
	}
	return strconv.Itoa(value), nil
}
