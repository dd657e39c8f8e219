// Load envs from .env
// Load YAML config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Scraping behavior
	MaxConcurrentBrowsers int  `yaml:"max_concurrent_browsers" env:"MAX_CONCURRENT_BROWSERS"`
	Headless              bool `yaml:"headless"`

	// Paths
	CookiesPath string `yaml:"cookies_path"`
	CachePath   string `yaml:"cache_path"`

	// Optional collaborators
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
}

// Load reads configs/config.yaml if present, then overrides from env.
// Nothing here is required; defaults suit a laptop run.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		MaxConcurrentBrowsers: 3,
		Headless:              true,
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Could not read config.yaml: %v", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	// Override with env vars
	if v := os.Getenv("MAX_CONCURRENT_BROWSERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid MAX_CONCURRENT_BROWSERS: %v", err)
		}
		cfg.MaxConcurrentBrowsers = n
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	// Set default values if not set
	if cfg.CachePath == "" {
		cfg.CachePath = ".cache"
	}
	if cfg.MaxConcurrentBrowsers < 1 {
		cfg.MaxConcurrentBrowsers = 3
	}

	return cfg
}
