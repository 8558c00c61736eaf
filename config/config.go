// Package config loads the bot's YAML settings and its credentials from the environment.
package config

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Environment variables holding credentials.
const (
	EnvRedditClientID     = "REDDIT_CLIENT_ID"
	EnvRedditClientSecret = "REDDIT_CLIENT_SECRET"
	EnvRedditUserAgent    = "REDDIT_USER_AGENT"
	EnvRedditUsername     = "REDDIT_USERNAME"
	EnvRedditPassword     = "REDDIT_PASSWORD"
	EnvLLMKey             = "DEEPSEEK_API_KEY"
	EnvLLMKeyFallback     = "OPENROUTER_API_KEY"
	EnvDebug              = "BOT_DEBUG"
)

type FeedConfig struct {
	Community string `yaml:"community" validate:"required"`
	BatchSize int    `yaml:"batch_size" validate:"min=1,max=100"`
	Timeout   string `yaml:"timeout,omitempty"`
	TokenURL  string `yaml:"token_url,omitempty" validate:"omitempty,url"`
	APIBase   string `yaml:"api_base,omitempty" validate:"omitempty,url"`

	ClientID     string `yaml:"-" env:"REDDIT_CLIENT_ID" validate:"required"`
	ClientSecret string `yaml:"-" env:"REDDIT_CLIENT_SECRET" validate:"required"`
	UserAgent    string `yaml:"-" env:"REDDIT_USER_AGENT" validate:"required"`
	Username     string `yaml:"-" env:"REDDIT_USERNAME" validate:"required"`
	Password     string `yaml:"-" env:"REDDIT_PASSWORD" validate:"required"`
}

type LLMConfig struct {
	Provider string `yaml:"provider" validate:"oneof=openrouter openai deepseek mock"`
	Model    string `yaml:"model" validate:"required_unless=Provider mock"`
	BaseURL  string `yaml:"base_url,omitempty" validate:"omitempty,url"`
	Referer  string `yaml:"referer,omitempty"`
	Title    string `yaml:"title,omitempty"`
	Timeout  string `yaml:"timeout,omitempty"`

	APIKey string `yaml:"-" env:"DEEPSEEK_API_KEY" validate:"required_unless=Provider mock"`
}

type PersonaConfig struct {
	Name        string   `yaml:"name" validate:"required"`
	Description string   `yaml:"description,omitempty"`
	StyleCorpus []string `yaml:"style_corpus,omitempty"`
	// CorpusFile holds one quote per line; blank lines and "#" comments are skipped.
	CorpusFile string `yaml:"corpus_file,omitempty"`
}

type SelectionConfig struct {
	Policy string `yaml:"policy" validate:"oneof=index newest oldest-unreplied"`
	Index  int    `yaml:"index" validate:"min=0"`
}

type ReplyConfig struct {
	StripMarkdown bool `yaml:"strip_markdown"`
}

type Config struct {
	Feed      FeedConfig      `yaml:"feed"`
	LLM       LLMConfig       `yaml:"llm"`
	Persona   PersonaConfig   `yaml:"persona"`
	Selection SelectionConfig `yaml:"selection"`
	Reply     ReplyConfig     `yaml:"reply"`
	StatePath string          `yaml:"state_path,omitempty"`
	Debug     bool            `yaml:"-"`
}

// FeedTimeout returns the Reddit HTTP timeout, defaulting to 30s.
func (c *Config) FeedTimeout() time.Duration {
	return parseDuration(c.Feed.Timeout, 30*time.Second)
}

// LLMTimeout returns the model request timeout, defaulting to 60s.
func (c *Config) LLMTimeout() time.Duration {
	return parseDuration(c.LLM.Timeout, 60*time.Second)
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "reddit-reply-bot", "config.yaml")
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

// Load reads the YAML config at path over the embedded defaults, applies credentials
// from the environment (after loading ./.env), and validates the result.
// An empty path means DefaultConfigPath, which is created with defaults on first run.
// Overrides run after the environment is applied and before validation.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	// .env is optional; variables already set win.
	_ = gotenv.Load()

	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// Non-fatal: just use embedded defaults
		_ = writeDefaults(path)
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg.applyEnv()

	if cfg.Persona.CorpusFile != "" {
		corpusPath := cfg.Persona.CorpusFile
		if !filepath.IsAbs(corpusPath) {
			corpusPath = filepath.Join(filepath.Dir(path), corpusPath)
		}
		quotes, err := readCorpusFile(corpusPath)
		if err != nil {
			return nil, err
		}
		cfg.Persona.StyleCorpus = append(cfg.Persona.StyleCorpus, quotes...)
	}

	for _, o := range overrides {
		o(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Feed.ClientID, EnvRedditClientID)
	setFromEnv(&c.Feed.ClientSecret, EnvRedditClientSecret)
	setFromEnv(&c.Feed.UserAgent, EnvRedditUserAgent)
	setFromEnv(&c.Feed.Username, EnvRedditUsername)
	setFromEnv(&c.Feed.Password, EnvRedditPassword)
	setFromEnv(&c.LLM.APIKey, EnvLLMKeyFallback)
	setFromEnv(&c.LLM.APIKey, EnvLLMKey)
	if v := strings.TrimSpace(os.Getenv(EnvDebug)); v == "true" || v == "1" {
		c.Debug = true
	}
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func readCorpusFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading style corpus: %w", err)
	}
	var quotes []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		quotes = append(quotes, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading style corpus: %w", err)
	}
	return quotes, nil
}
