package config

import (
	"testing"
	"time"
)

func TestLoadConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig() error = nil, want missing DATABASE_URL error")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/shoppergpt")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q, want gpt-4o-mini", cfg.OpenAIModel)
	}
	if cfg.OpenAIMaxTokens != 300 {
		t.Errorf("OpenAIMaxTokens = %d, want 300", cfg.OpenAIMaxTokens)
	}
	if cfg.OpenAITemperature != 0.6 {
		t.Errorf("OpenAITemperature = %v, want 0.6", cfg.OpenAITemperature)
	}
	if cfg.AITimeout != 30*time.Second {
		t.Errorf("AITimeout = %v, want 30s", cfg.AITimeout)
	}
	if cfg.SendTimeout != 15*time.Second {
		t.Errorf("SendTimeout = %v, want 15s", cfg.SendTimeout)
	}
	if cfg.WhatsAppAPIBaseURL != "https://graph.facebook.com/v19.0" {
		t.Errorf("WhatsAppAPIBaseURL = %q", cfg.WhatsAppAPIBaseURL)
	}
	if cfg.TokenExpiration != 24*time.Hour {
		t.Errorf("TokenExpiration = %v, want 24h", cfg.TokenExpiration)
	}
	if cfg.HistoryFetchLimit != 20 || cfg.HistoryTurnCap != 10 {
		t.Errorf("history window = %d/%d, want 20/10", cfg.HistoryFetchLimit, cfg.HistoryTurnCap)
	}
	if cfg.PipelineTimeout != 120*time.Second {
		t.Errorf("PipelineTimeout = %v, want 120s", cfg.PipelineTimeout)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/shoppergpt")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("HISTORY_TURN_CAP", "6")
	t.Setenv("PIPELINE_TIMEOUT_SECONDS", "45")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q, want 9090", cfg.HTTPPort)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("OpenAIModel = %q, want gpt-4o", cfg.OpenAIModel)
	}
	if cfg.HistoryTurnCap != 6 {
		t.Errorf("HistoryTurnCap = %d, want 6", cfg.HistoryTurnCap)
	}
	if cfg.PipelineTimeout != 45*time.Second {
		t.Errorf("PipelineTimeout = %v, want 45s", cfg.PipelineTimeout)
	}
}
