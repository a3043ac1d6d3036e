package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// EnvToken is the environment variable consulted when no API key is set in
// the config file.
const EnvToken = "REPUTE_HF_TOKEN"

type ScrapeConfig struct {
	Headless     bool   `yaml:"headless"`
	MaxReviews   int    `yaml:"max_reviews"`
	UserAgent    string `yaml:"user_agent,omitempty"`
	NavTimeout   string `yaml:"nav_timeout"`
	PollInterval string `yaml:"poll_interval"`
}

type LLMConfig struct {
	Provider     string `yaml:"provider"` // "huggingface" or "ollama"
	Model        string `yaml:"model"`
	BaseURL      string `yaml:"base_url,omitempty"`
	APIKey       string `yaml:"api_key,omitempty"`
	AnalyzeLimit int    `yaml:"analyze_limit"`
}

type MentionsConfig struct {
	Enabled bool `yaml:"enabled"`
	Limit   int  `yaml:"limit"`
}

type Config struct {
	DataDir  string         `yaml:"data_dir,omitempty"`
	Scrape   ScrapeConfig   `yaml:"scrape"`
	LLM      LLMConfig      `yaml:"llm"`
	Mentions MentionsConfig `yaml:"mentions"`
}

// APIKey returns the resolved model API key (config value or env var).
func (c *Config) APIKey() string {
	if c.LLM.APIKey != "" {
		return c.LLM.APIKey
	}
	return os.Getenv(EnvToken)
}

func (c *Config) NavTimeout() time.Duration {
	d, err := time.ParseDuration(c.Scrape.NavTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Scrape.PollInterval)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// MaxReviews returns the fetch cap, defaulting to 100.
func (c *Config) MaxReviews() int {
	if c.Scrape.MaxReviews <= 0 {
		return 100
	}
	return c.Scrape.MaxReviews
}

// AnalyzeLimit returns how many reviews are sent to the model, defaulting to 10.
func (c *Config) AnalyzeLimit() int {
	if c.LLM.AnalyzeLimit <= 0 {
		return 10
	}
	return c.LLM.AnalyzeLimit
}

func (c *Config) MentionsLimit() int {
	if c.Mentions.Limit <= 0 {
		return 5
	}
	return c.Mentions.Limit
}

// ResolvedDataDir returns where CSV datasets live: the configured override or
// the platform data home.
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(xdg.DataHome, "repute")
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "repute", "config.yaml")
}

func HistoryPath() string {
	return filepath.Join(xdg.CacheHome, "repute", "history.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "repute", "repute.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	// Pick up a local .env before resolving anything from the environment.
	_ = godotenv.Load()

	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	fillDefaults(&cfg, defaults)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// fillDefaults backfills fields a user config left empty so partial files
// keep working across new options.
func fillDefaults(cfg, defaults *Config) {
	if cfg.Scrape.NavTimeout == "" {
		cfg.Scrape.NavTimeout = defaults.Scrape.NavTimeout
	}
	if cfg.Scrape.PollInterval == "" {
		cfg.Scrape.PollInterval = defaults.Scrape.PollInterval
	}
	if cfg.Scrape.MaxReviews == 0 {
		cfg.Scrape.MaxReviews = defaults.Scrape.MaxReviews
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = defaults.LLM.Provider
	}
	if cfg.LLM.Model == "" && cfg.LLM.Provider == defaults.LLM.Provider {
		cfg.LLM.Model = defaults.LLM.Model
	}
	if cfg.LLM.AnalyzeLimit == 0 {
		cfg.LLM.AnalyzeLimit = defaults.LLM.AnalyzeLimit
	}
	if cfg.Mentions.Limit == 0 {
		cfg.Mentions.Limit = defaults.Mentions.Limit
	}
}

func validate(cfg *Config) error {
	validProviders := map[string]bool{"huggingface": true, "ollama": true}
	if !validProviders[cfg.LLM.Provider] {
		return fmt.Errorf("llm: unknown provider %q (valid: huggingface, ollama)", cfg.LLM.Provider)
	}
	if d := cfg.Scrape.NavTimeout; d != "" {
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("scrape: invalid nav_timeout %q: %w", d, err)
		}
	}
	if d := cfg.Scrape.PollInterval; d != "" {
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("scrape: invalid poll_interval %q: %w", d, err)
		}
	}
	if cfg.LLM.BaseURL != "" && !strings.HasPrefix(cfg.LLM.BaseURL, "http") {
		return fmt.Errorf("llm: base_url must be an http(s) URL, got %q", cfg.LLM.BaseURL)
	}
	return nil
}
