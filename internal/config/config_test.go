package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider.Kind != "yahoo" {
		t.Errorf("provider kind = %q, want yahoo", cfg.Provider.Kind)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("ttl = %v, want 5m", cfg.Cache.TTL)
	}
	if cfg.Cache.SweepInterval != time.Minute {
		t.Errorf("sweep = %v, want 1m", cfg.Cache.SweepInterval)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("backend = %q, want memory", cfg.Cache.Backend)
	}
	if len(cfg.Watchlist) == 0 {
		t.Error("expected a default watchlist")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
provider:
  kind: rest
  base_url: http://feed.internal:9000
cache:
  backend: redis
  ttl: 120s
watchlist:
  - SBIN.NSE
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("WATCHLIST", "ITC.NSE, WIPRO.NSE")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider.Kind != "rest" || cfg.Provider.BaseURL != "http://feed.internal:9000" {
		t.Errorf("provider = %+v", cfg.Provider)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("env should override file ttl, got %v", cfg.Cache.TTL)
	}
	if len(cfg.Watchlist) != 2 || cfg.Watchlist[0] != "ITC.NSE" {
		t.Errorf("watchlist = %v", cfg.Watchlist)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	cfg.Provider.Kind = "rest"
	cfg.Provider.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for rest provider without base_url")
	}

	cfg.Provider.Kind = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown provider kind")
	}

	cfg.Provider.Kind = "yahoo"
	cfg.Cache.Backend = "floppy"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown cache backend")
	}
}
