package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
		LLM:      LLMConfig{APIKey: "sk-test"},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, want longpoll", cfg.Telegram.RunMode)
	}
	if cfg.LLM.BaseURL == "" || cfg.LLM.Model == "" {
		t.Errorf("llm defaults not applied: %+v", cfg.LLM)
	}
	if cfg.LLM.Temperature != 0.9 || cfg.LLM.TopP != 1.0 {
		t.Errorf("llm sampling defaults = %v/%v", cfg.LLM.Temperature, cfg.LLM.TopP)
	}
	if cfg.Session.TTLSeconds != 21600 {
		t.Errorf("session ttl default = %d, want 21600", cfg.Session.TTLSeconds)
	}
}

func TestNormalizeRequiredFields(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	if err := Normalize(cfg); err == nil || !strings.Contains(err.Error(), "token") {
		t.Errorf("missing token err = %v", err)
	}

	cfg = validConfig()
	cfg.LLM.APIKey = ""
	if err := Normalize(cfg); err == nil || !strings.Contains(err.Error(), "api key") {
		t.Errorf("missing api key err = %v", err)
	}
}

func TestNormalizeRunModes(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("polling alias not normalized: %q", cfg.Telegram.RunMode)
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = "webhook"
	if err := Normalize(cfg); err == nil {
		t.Error("webhook mode without url/listen/port should fail")
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = "webhook"
	cfg.Webhook = WebhookConfig{URL: "https://bot.example/hook", Listen: "0.0.0.0", Port: 8443}
	if err := Normalize(cfg); err != nil {
		t.Errorf("valid webhook config rejected: %v", err)
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = "carrier-pigeon"
	if err := Normalize(cfg); err == nil {
		t.Error("unknown run_mode accepted")
	}
}

func TestNormalizeSamplingBounds(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.Temperature = 2.5
	if err := Normalize(cfg); err == nil {
		t.Error("temperature above 2 accepted")
	}

	cfg = validConfig()
	cfg.LLM.TopP = 1.5
	if err := Normalize(cfg); err == nil {
		t.Error("top_p above 1 accepted")
	}
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != "callback" {
		t.Errorf("exclusion not canonicalized: %q", cfg.RateLimit.ExcludeUpdates[0])
	}

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Error("unknown exclusion accepted")
	}
}

func TestNormalizeTrimsLLMBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.BaseURL = "https://llm.example/v1/"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if cfg.LLM.BaseURL != "https://llm.example/v1" {
		t.Errorf("base url = %q", cfg.LLM.BaseURL)
	}
}
