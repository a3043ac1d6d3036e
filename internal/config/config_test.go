package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.LLM.Provider != "huggingface" {
		t.Errorf("expected default provider huggingface, got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Model == "" {
		t.Error("expected a default model")
	}
	if !cfg.Scrape.Headless {
		t.Error("expected headless by default")
	}
	if cfg.MaxReviews() != 100 {
		t.Errorf("expected default max_reviews 100, got %d", cfg.MaxReviews())
	}
	if cfg.AnalyzeLimit() != 10 {
		t.Errorf("expected default analyze_limit 10, got %d", cfg.AnalyzeLimit())
	}
}

func TestDurationsFallBack(t *testing.T) {
	cfg := &Config{}
	if got := cfg.NavTimeout(); got != 15*time.Second {
		t.Errorf("expected 15s nav timeout fallback, got %v", got)
	}
	if got := cfg.PollInterval(); got != 2*time.Second {
		t.Errorf("expected 2s poll interval fallback, got %v", got)
	}

	cfg.Scrape.NavTimeout = "30s"
	cfg.Scrape.PollInterval = "500ms"
	if got := cfg.NavTimeout(); got != 30*time.Second {
		t.Errorf("expected 30s, got %v", got)
	}
	if got := cfg.PollInterval(); got != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", got)
	}
}

func TestAPIKeyPrefersConfig(t *testing.T) {
	t.Setenv(EnvToken, "hf_from_env")
	cfg := &Config{LLM: LLMConfig{APIKey: "hf_from_file"}}
	if got := cfg.APIKey(); got != "hf_from_file" {
		t.Errorf("expected config key to win, got %q", got)
	}
}

func TestAPIKeyFallsBackToEnv(t *testing.T) {
	t.Setenv(EnvToken, "hf_from_env")
	cfg := &Config{}
	if got := cfg.APIKey(); got != "hf_from_env" {
		t.Errorf("expected env key, got %q", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `data_dir: /tmp/repute-test
scrape:
  headless: false
  max_reviews: 40
llm:
  provider: ollama
  model: llama3
  base_url: http://localhost:11434
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/tmp/repute-test" {
		t.Errorf("expected data_dir override, got %q", cfg.DataDir)
	}
	if cfg.Scrape.Headless {
		t.Error("expected headless=false from file")
	}
	if cfg.MaxReviews() != 40 {
		t.Errorf("expected max_reviews 40, got %d", cfg.MaxReviews())
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("expected provider ollama, got %q", cfg.LLM.Provider)
	}
	// Unset fields backfilled from defaults
	if cfg.Scrape.NavTimeout == "" {
		t.Error("expected nav_timeout backfilled from defaults")
	}
	if cfg.AnalyzeLimit() != 10 {
		t.Errorf("expected analyze_limit backfilled to 10, got %d", cfg.AnalyzeLimit())
	}
}

func TestLoadNonexistentFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider == "" {
		t.Error("expected defaults when config doesn't exist")
	}
	// First run should also write the default file out
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected default config written to %s: %v", cfgPath, err)
	}
}

func TestValidateUnknownProvider(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{Provider: "bard"}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestValidateBadDuration(t *testing.T) {
	cfg := &Config{
		Scrape: ScrapeConfig{NavTimeout: "fifteen"},
		LLM:    LLMConfig{Provider: "huggingface"},
	}
	if err := validate(cfg); err == nil {
		t.Error("expected error for unparseable nav_timeout")
	}
}

func TestValidateBadBaseURL(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{Provider: "ollama", BaseURL: "localhost:11434"}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for schemeless base_url")
	}
}

func TestResolvedDataDirOverride(t *testing.T) {
	cfg := &Config{DataDir: "/srv/reviews"}
	if got := cfg.ResolvedDataDir(); got != "/srv/reviews" {
		t.Errorf("expected override, got %q", got)
	}
	cfg.DataDir = ""
	if got := cfg.ResolvedDataDir(); got == "" {
		t.Error("expected non-empty default data dir")
	}
}
