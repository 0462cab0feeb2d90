package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv("APIFOOTBALL_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without APIFOOTBALL_API_KEY")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APIFOOTBALL_API_KEY", "key-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataDir != "./data" {
		t.Fatalf("unexpected DataDir: %q", cfg.DataDir)
	}
	if cfg.MinRankGap != 4 {
		t.Fatalf("unexpected MinRankGap: %d", cfg.MinRankGap)
	}
	if cfg.KeyPlayerRating != 7.0 {
		t.Fatalf("unexpected KeyPlayerRating: %v", cfg.KeyPlayerRating)
	}
	if cfg.PacingDelay != 3*time.Second {
		t.Fatalf("unexpected PacingDelay: %s", cfg.PacingDelay)
	}
	if cfg.Cooldown != time.Minute {
		t.Fatalf("unexpected Cooldown: %s", cfg.Cooldown)
	}
	if cfg.MaxAttempts != 0 {
		t.Fatalf("unexpected MaxAttempts: %d", cfg.MaxAttempts)
	}
	if len(cfg.AllowedStatuses) != 2 {
		t.Fatalf("unexpected AllowedStatuses: %v", cfg.AllowedStatuses)
	}
	if cfg.PostgresEnabled {
		t.Fatalf("postgres must be off by default")
	}
}

func TestLoad_ParsesOverrides(t *testing.T) {
	t.Setenv("APIFOOTBALL_API_KEY", "key-123")
	t.Setenv("APIFOOTBALL_SEASON", "2025")
	t.Setenv("STARPICK_ALLOWED_COUNTRIES", "England, Spain ,,Italy")
	t.Setenv("STARPICK_COOLDOWN", "90s")
	t.Setenv("STARPICK_MAX_ATTEMPTS", "5")
	t.Setenv("STARPICK_KEY_PLAYER_RATING", "7.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APISeason != 2025 {
		t.Fatalf("unexpected APISeason: %d", cfg.APISeason)
	}
	if len(cfg.AllowedCountries) != 3 || cfg.AllowedCountries[1] != "Spain" {
		t.Fatalf("unexpected AllowedCountries: %v", cfg.AllowedCountries)
	}
	if cfg.Cooldown != 90*time.Second {
		t.Fatalf("unexpected Cooldown: %s", cfg.Cooldown)
	}
	if cfg.MaxAttempts != 5 {
		t.Fatalf("unexpected MaxAttempts: %d", cfg.MaxAttempts)
	}
	if cfg.KeyPlayerRating != 7.5 {
		t.Fatalf("unexpected KeyPlayerRating: %v", cfg.KeyPlayerRating)
	}
}

func TestLoad_PostgresRequiresDBURL(t *testing.T) {
	t.Setenv("APIFOOTBALL_API_KEY", "key-123")
	t.Setenv("STARPICK_POSTGRES_ENABLED", "true")
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when STARPICK_POSTGRES_ENABLED=true without DB_URL")
	}
}

func TestLoad_InvalidDurationRejected(t *testing.T) {
	t.Setenv("APIFOOTBALL_API_KEY", "key-123")
	t.Setenv("STARPICK_PACING_DELAY", "soon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid STARPICK_PACING_DELAY")
	}
}
