package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arifwdtm/starpick/internal/platform/logging"
	"github.com/arifwdtm/starpick/internal/platform/resilience"
)

// Config stores runtime configuration for the pipeline and its commands.
type Config struct {
	DataDir string

	APIBaseURL string
	APIKey     string
	APISeason  int
	APITimeout time.Duration

	AllowedStatuses  []string
	AllowedCountries []string
	MinRankGap       int
	KeyPlayerRating  float64

	PacingDelay time.Duration
	Cooldown    time.Duration
	MaxAttempts int

	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int

	PostgresEnabled bool
	DBURL           string

	LogLevel logging.Level
}

func Load() (Config, error) {
	var cfg Config

	cfg.DataDir = strings.TrimSpace(getEnv("STARPICK_DATA_DIR", "./data"))
	if cfg.DataDir == "" {
		return Config{}, fmt.Errorf("STARPICK_DATA_DIR must not be empty")
	}

	cfg.APIBaseURL = strings.TrimSpace(getEnv("APIFOOTBALL_BASE_URL", ""))
	cfg.APIKey = strings.TrimSpace(getEnv("APIFOOTBALL_API_KEY", ""))
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("APIFOOTBALL_API_KEY is required")
	}

	season, err := getEnvAsInt("APIFOOTBALL_SEASON", time.Now().Year())
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_SEASON: %w", err)
	}
	if season < 2000 {
		return Config{}, fmt.Errorf("APIFOOTBALL_SEASON must be a full year")
	}
	cfg.APISeason = season

	apiTimeout, err := time.ParseDuration(getEnv("APIFOOTBALL_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_TIMEOUT: %w", err)
	}
	if apiTimeout <= 0 {
		return Config{}, fmt.Errorf("APIFOOTBALL_TIMEOUT must be > 0")
	}
	cfg.APITimeout = apiTimeout

	cfg.AllowedStatuses = splitCSV(getEnv("STARPICK_ALLOWED_STATUSES", "NS,TBD"))
	if len(cfg.AllowedStatuses) == 0 {
		return Config{}, fmt.Errorf("STARPICK_ALLOWED_STATUSES must not be empty")
	}

	cfg.AllowedCountries = splitCSV(getEnv("STARPICK_ALLOWED_COUNTRIES", defaultCountries))
	if len(cfg.AllowedCountries) == 0 {
		return Config{}, fmt.Errorf("STARPICK_ALLOWED_COUNTRIES must not be empty")
	}

	minRankGap, err := getEnvAsInt("STARPICK_MIN_RANK_GAP", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse STARPICK_MIN_RANK_GAP: %w", err)
	}
	if minRankGap < 0 {
		return Config{}, fmt.Errorf("STARPICK_MIN_RANK_GAP must be >= 0")
	}
	cfg.MinRankGap = minRankGap

	keyPlayerRating, err := getEnvAsFloat("STARPICK_KEY_PLAYER_RATING", 7.0)
	if err != nil {
		return Config{}, fmt.Errorf("parse STARPICK_KEY_PLAYER_RATING: %w", err)
	}
	if keyPlayerRating < 0 || keyPlayerRating > 10 {
		return Config{}, fmt.Errorf("STARPICK_KEY_PLAYER_RATING must be between 0 and 10")
	}
	cfg.KeyPlayerRating = keyPlayerRating

	pacingDelay, err := time.ParseDuration(getEnv("STARPICK_PACING_DELAY", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STARPICK_PACING_DELAY: %w", err)
	}
	if pacingDelay < 0 {
		return Config{}, fmt.Errorf("STARPICK_PACING_DELAY must be >= 0")
	}
	cfg.PacingDelay = pacingDelay

	cooldown, err := time.ParseDuration(getEnv("STARPICK_COOLDOWN", "1m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STARPICK_COOLDOWN: %w", err)
	}
	if cooldown <= 0 {
		return Config{}, fmt.Errorf("STARPICK_COOLDOWN must be > 0")
	}
	cfg.Cooldown = cooldown

	maxAttempts, err := getEnvAsInt("STARPICK_MAX_ATTEMPTS", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse STARPICK_MAX_ATTEMPTS: %w", err)
	}
	if maxAttempts < 0 {
		return Config{}, fmt.Errorf("STARPICK_MAX_ATTEMPTS must be >= 0")
	}
	cfg.MaxAttempts = maxAttempts

	circuitEnabled, err := strconv.ParseBool(getEnv("APIFOOTBALL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_ENABLED: %w", err)
	}
	cfg.CircuitEnabled = circuitEnabled

	circuitFailureCount, err := getEnvAsInt("APIFOOTBALL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("APIFOOTBALL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	cfg.CircuitFailureCount = circuitFailureCount

	circuitOpenTimeout, err := time.ParseDuration(getEnv("APIFOOTBALL_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("APIFOOTBALL_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	cfg.CircuitOpenTimeout = circuitOpenTimeout

	circuitHalfOpenMaxReq, err := getEnvAsInt("APIFOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("APIFOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	cfg.CircuitHalfOpenMaxReq = circuitHalfOpenMaxReq

	postgresEnabled, err := strconv.ParseBool(getEnv("STARPICK_POSTGRES_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STARPICK_POSTGRES_ENABLED: %w", err)
	}
	cfg.PostgresEnabled = postgresEnabled

	cfg.DBURL = strings.TrimSpace(getEnv("DB_URL", ""))
	if cfg.PostgresEnabled && cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STARPICK_POSTGRES_ENABLED=true")
	}

	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

// RetryPolicy maps the pacing fields onto the executor's policy.
func (c Config) RetryPolicy() resilience.RetryPolicy {
	return resilience.RetryPolicy{
		PacingDelay: c.PacingDelay,
		Cooldown:    c.Cooldown,
		MaxAttempts: c.MaxAttempts,
	}
}

// CircuitBreaker maps the circuit fields onto the client's breaker config.
func (c Config) CircuitBreaker() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          c.CircuitEnabled,
		FailureThreshold: c.CircuitFailureCount,
		OpenTimeout:      c.CircuitOpenTimeout,
		HalfOpenMaxReq:   c.CircuitHalfOpenMaxReq,
	}
}

const defaultCountries = "England,Spain,Italy,Germany,France,Netherlands,Portugal"

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
