package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Data sources.
const (
	SourceDemo = "demo"
	SourceLive = "live"
)

// Config holds all application configuration.
type Config struct {
	Source string `yaml:"source"`
	API    struct {
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"api"`
	Demo struct {
		Latency    time.Duration `yaml:"latency"`
		Seed       int64         `yaml:"seed"`
		MaxCandles int           `yaml:"max_candles"`
		MinDate    string        `yaml:"min_date"`
		MaxDate    string        `yaml:"max_date"`
	} `yaml:"demo"`
	Calendar struct {
		MinYear int `yaml:"min_year"`
		MaxYear int `yaml:"max_year"`
	} `yaml:"calendar"`
	Session struct {
		StateFile string `yaml:"state_file"`
		ChartFile string `yaml:"chart_file"`
	} `yaml:"session"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		WatchCron string `yaml:"watch_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
		Dev   bool   `yaml:"dev"`
	} `yaml:"log"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides and fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables that are already set.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"ASSISTANT_SOURCE":   &c.Source,
		"API_BASE_URL":       &c.API.BaseURL,
		"API_KEY":            &c.API.APIKey,
		"TELEGRAM_BOT_TOKEN": &c.Telegram.BotToken,
		"TELEGRAM_CHAT_ID":   &c.Telegram.ChatID,
		"HTTPS_PROXY":        &c.Proxy,
		"CRON_WATCH":         &c.Schedule.WatchCron,
		"SQLITE_PATH":        &c.Database.SQLitePath,
		"SESSION_FILE":       &c.Session.StateFile,
		"CHART_FILE":         &c.Session.ChartFile,
		"LOG_LEVEL":          &c.Log.Level,
		"LOG_FILE":           &c.Log.File,
		"METRICS_ADDR":       &c.Metrics.Addr,
	}
	for key, dst := range str {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("API_TIMEOUT: %w", err)
		}
		c.API.Timeout = d
	}
	if v := os.Getenv("DEMO_LATENCY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DEMO_LATENCY: %w", err)
		}
		c.Demo.Latency = d
	}
	if v := os.Getenv("DEMO_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("DEMO_SEED: %w", err)
		}
		c.Demo.Seed = seed
	}
	if v := os.Getenv("LOG_DEV"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LOG_DEV: %w", err)
		}
		c.Log.Dev = dev
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Source == "" {
		c.Source = SourceDemo
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.Demo.Latency == 0 {
		c.Demo.Latency = 1500 * time.Millisecond
	}
	if c.Calendar.MinYear == 0 {
		if c.Source == SourceDemo {
			c.Calendar.MinYear = 2000
		} else {
			c.Calendar.MinYear = 1999
		}
	}
	if c.Calendar.MaxYear == 0 {
		c.Calendar.MaxYear = 2100
	}
	if c.Session.StateFile == "" {
		c.Session.StateFile = "data/session.json"
	}
	if c.Schedule.WatchCron == "" {
		c.Schedule.WatchCron = "0 0 17 * * 1-5"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/trading_assistant.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9090"
	}
}

// TelegramEnabled reports whether both Telegram credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceDemo:
	case SourceLive:
		if c.API.BaseURL == "" {
			return fmt.Errorf("api.base_url is required for the live source")
		}
	default:
		return fmt.Errorf("source must be %q or %q, got %q", SourceDemo, SourceLive, c.Source)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.Demo.Latency < 0 {
		return fmt.Errorf("demo.latency must not be negative")
	}
	if c.Calendar.MinYear > c.Calendar.MaxYear {
		return fmt.Errorf("calendar.min_year %d is after calendar.max_year %d", c.Calendar.MinYear, c.Calendar.MaxYear)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
