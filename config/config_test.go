package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", " mongodb://db:27017 ")
	t.Setenv("POSTGRES_URL", "postgres://u:p@db/cmueats")
	t.Setenv("DINING_POLL_SCHEDULE", "@every 30s")

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DatabaseURL != "mongodb://db:27017" {
		t.Fatalf("expected trimmed DATABASE_URL, got %q", cfg.DatabaseURL)
	}
	if cfg.DiningPollSchedule != "@every 30s" {
		t.Fatalf("expected env override, got %q", cfg.DiningPollSchedule)
	}
	if cfg.DiningTimezone != "America/New_York" {
		t.Fatalf("expected default timezone, got %q", cfg.DiningTimezone)
	}
	if cfg.LocationsCacheTTL != 5*time.Minute {
		t.Fatalf("expected default cache ttl, got %v", cfg.LocationsCacheTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_MissingDatabase(t *testing.T) {
	err := Config{PostgresURL: "postgres://x"}.Validate()
	if err == nil {
		t.Fatalf("expected error for missing DATABASE_URL")
	}
	if got := err.Error(); got != "missing required configuration: DATABASE_URL" {
		t.Fatalf("unexpected error %q", got)
	}

	err = Config{}.Validate()
	if err == nil || err.Error() != "missing required configuration: DATABASE_URL, POSTGRES_URL" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCORSOriginList(t *testing.T) {
	cfg := Config{CORSOrigins: "http://a.test, ,http://b.test "}
	got := cfg.CORSOriginList()
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", got)
	}
}
