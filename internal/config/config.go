package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when the environment does not set a value
const (
	DefaultGRPCAddr               = ":8080"
	DefaultAPIToken               = "dev-token"
	DefaultLogLevel               = "info"
	DefaultSessionTTL             = 30 * time.Minute
	DefaultSessionCleanupInterval = 5 * time.Minute
	DefaultRateLimitRPS           = 10.0
	DefaultRateLimitBurst         = 20
	DefaultSeedSampleData         = true
	DefaultMaxImportBytes         = 10 << 20
)

// AppConfig holds the server configuration
type AppConfig struct {
	GRPCAddr               string
	APIToken               string
	LogLevel               string
	SessionTTL             time.Duration
	SessionCleanupInterval time.Duration
	RateLimitRPS           float64 // 0 disables rate limiting
	RateLimitBurst         int
	SeedSampleData         bool
	MaxImportBytes         int64

	// EnvFile is the dotenv file that was loaded, empty if none was found
	EnvFile string
}

// UsesDefaultToken reports whether the insecure development token is in use
func (c *AppConfig) UsesDefaultToken() bool {
	return c.APIToken == DefaultAPIToken
}

// Load reads the configuration from the environment, after loading envFile
// (".env" when empty) if it exists. Variables already set in the process
// environment win over the file. Malformed values are errors.
func Load(envFile string) (*AppConfig, error) {
	if envFile == "" {
		envFile = ".env"
	}

	cfg := &AppConfig{}
	if err := godotenv.Load(envFile); err == nil {
		cfg.EnvFile = envFile
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var err error
	cfg.GRPCAddr = getEnv("GRPC_ADDR", DefaultGRPCAddr)
	cfg.APIToken = getEnv("API_TOKEN", DefaultAPIToken)
	cfg.LogLevel = getEnv("LOG_LEVEL", DefaultLogLevel)

	if cfg.SessionTTL, err = getEnvAsDuration("SESSION_TTL", DefaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.SessionCleanupInterval, err = getEnvAsDuration("SESSION_CLEANUP_INTERVAL", DefaultSessionCleanupInterval); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getEnvAsFloat("RATE_LIMIT_RPS", DefaultRateLimitRPS); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvAsInt("RATE_LIMIT_BURST", DefaultRateLimitBurst); err != nil {
		return nil, err
	}
	if cfg.SeedSampleData, err = getEnvAsBool("SEED_SAMPLE_DATA", DefaultSeedSampleData); err != nil {
		return nil, err
	}
	maxImport, err := getEnvAsInt("MAX_IMPORT_BYTES", DefaultMaxImportBytes)
	if err != nil {
		return nil, err
	}
	cfg.MaxImportBytes = int64(maxImport)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *AppConfig) Validate() error {
	if c.GRPCAddr == "" {
		return errors.New("GRPC_ADDR must not be empty")
	}
	if c.APIToken == "" {
		return errors.New("API_TOKEN must not be empty")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.SessionCleanupInterval <= 0 {
		return errors.New("SESSION_CLEANUP_INTERVAL must be positive")
	}
	if c.RateLimitRPS < 0 {
		return errors.New("RATE_LIMIT_RPS must not be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}
	if c.MaxImportBytes <= 0 {
		return errors.New("MAX_IMPORT_BYTES must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s (%q): %w", key, valueStr, err)
	}
	return value, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number value for %s (%q): %w", key, valueStr, err)
	}
	return value, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s (%q): %w", key, valueStr, err)
	}
	return value, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration value for %s (%q): %w", key, valueStr, err)
	}
	return value, nil
}
