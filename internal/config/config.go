package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Provider struct {
		Kind       string        `yaml:"kind"` // "yahoo" or "rest"
		BaseURL    string        `yaml:"base_url"`
		APIKey     string        `yaml:"api_key"`
		TimeoutStr string        `yaml:"timeout"`
		Timeout    time.Duration `yaml:"-"`
	} `yaml:"provider"`
	Cache struct {
		Backend          string        `yaml:"backend"` // "memory" or "redis"
		TTLStr           string        `yaml:"ttl"`
		SweepIntervalStr string        `yaml:"sweep_interval"`
		TTL              time.Duration `yaml:"-"`
		SweepInterval    time.Duration `yaml:"-"`
		Redis            struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Watchlist []string `yaml:"watchlist"`
	Schedule  struct {
		PrewarmCron string `yaml:"prewarm_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
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

	// Environment variable overrides
	if v := os.Getenv("PROVIDER_KIND"); v != "" {
		cfg.Provider.Kind = v
	}
	if v := os.Getenv("PROVIDER_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("PROVIDER_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		cfg.Cache.TTLStr = v
	}
	if v := os.Getenv("PROVIDER_TIMEOUT"); v != "" {
		cfg.Provider.TimeoutStr = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Cache.Redis.DB = db
		}
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist = splitList(v)
	}
	if v := os.Getenv("PREWARM_CRON"); v != "" {
		cfg.Schedule.PrewarmCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Parse durations
	var perr error
	if cfg.Provider.Timeout, perr = parseDuration(cfg.Provider.TimeoutStr, 10*time.Second); perr != nil {
		return nil, fmt.Errorf("provider.timeout: %w", perr)
	}
	if cfg.Cache.TTL, perr = parseDuration(cfg.Cache.TTLStr, 5*time.Minute); perr != nil {
		return nil, fmt.Errorf("cache.ttl: %w", perr)
	}
	if cfg.Cache.SweepInterval, perr = parseDuration(cfg.Cache.SweepIntervalStr, time.Minute); perr != nil {
		return nil, fmt.Errorf("cache.sweep_interval: %w", perr)
	}

	// Defaults
	if cfg.Provider.Kind == "" {
		if cfg.Provider.BaseURL != "" {
			cfg.Provider.Kind = "rest"
		} else {
			cfg.Provider.Kind = "yahoo"
		}
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.Redis.Addr == "" {
		cfg.Cache.Redis.Addr = "localhost:6379"
	}
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = []string{"RELIANCE.NSE", "TCS.NSE", "HDFCBANK.NSE", "INFY.NSE"}
	}
	if cfg.Schedule.PrewarmCron == "" {
		cfg.Schedule.PrewarmCron = "0 */5 9-16 * * 1-5" // every 5m during market hours
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	switch c.Provider.Kind {
	case "yahoo":
	case "rest":
		if c.Provider.BaseURL == "" {
			return fmt.Errorf("provider.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("unknown provider kind %q", c.Provider.Kind)
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 || c.Cache.SweepInterval < 0 {
		return fmt.Errorf("cache durations must be positive")
	}
	return nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
