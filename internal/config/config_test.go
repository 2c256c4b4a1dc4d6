package config

import (
	"testing"
	"time"
)

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without GEMINI_API_KEY")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("PLANIT_HTTP_ADDR", "")
	t.Setenv("PLANIT_SESSION_TTL_HOURS", "")
	t.Setenv("PLANIT_ITINERARY_TEMPERATURE", "")
	t.Setenv("PLANIT_IDEAS_MAX_TOKENS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.SessionTTL != 72*time.Hour {
		t.Errorf("session ttl = %v", cfg.SessionTTL)
	}
	if cfg.AI.Options.ItineraryTemperature != 0.3 || cfg.AI.Options.IdeasMaxTokens != 2048 {
		t.Errorf("unexpected ai options: %+v", cfg.AI.Options)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("PLANIT_GEMINI_MODEL", "gemini-test")
	t.Setenv("PLANIT_ITINERARY_MAX_TOKENS", "4096")
	t.Setenv("PLANIT_RATE_PER_MINUTE", "3")
	t.Setenv("PLANIT_MONTHLY_TOKENS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AI.Options.Model != "gemini-test" || cfg.AI.Options.ItineraryMaxTokens != 4096 {
		t.Errorf("overrides ignored: %+v", cfg.AI.Options)
	}
	if cfg.Limits.RatePerMinute != 3 {
		t.Errorf("rate = %d", cfg.Limits.RatePerMinute)
	}
	if cfg.Limits.MonthlyTokens != 100 {
		t.Errorf("bad integer should fall back to default, got %d", cfg.Limits.MonthlyTokens)
	}
}
