package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"StockPulse/internal/cache"
	"StockPulse/internal/config"
	"StockPulse/internal/notifier"
	"StockPulse/internal/provider"
	"StockPulse/internal/recorder"
	"StockPulse/internal/scheduler"
	"StockPulse/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockPulse starting...")

	// .env is optional; real env vars win either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init provider
	var prov provider.Provider
	if cfg.Provider.Kind == "rest" {
		prov = provider.NewRESTProvider(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Proxy, cfg.Provider.Timeout)
	} else {
		prov = provider.NewYahooProvider(cfg.Proxy, cfg.Provider.Timeout)
	}
	log.Printf("[INFO] data source: %s", prov.Name())

	// Init cache
	var store cache.Store
	if cfg.Cache.Backend == "redis" {
		rs, err := cache.NewRedisStore(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB, cfg.Cache.TTL)
		if err != nil {
			log.Printf("[WARN] init redis cache failed, using memory: %v", err)
			store = cache.NewMemoryStore(cfg.Cache.TTL, cfg.Cache.SweepInterval)
		} else {
			store = rs
		}
	} else {
		store = cache.NewMemoryStore(cfg.Cache.TTL, cfg.Cache.SweepInterval)
	}
	defer store.Close()
	log.Printf("[INFO] cache backend: %s (ttl %s)", cfg.Cache.Backend, cfg.Cache.TTL)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init service
	svc := service.New(prov, store, rec, cfg.Provider.Timeout)

	// Init Telegram notifier (disabled when unconfigured)
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, svc, rec, tn, cfg.Watchlist, prov.Name())
	if err := sched.Register(cfg.Schedule.PrewarmCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling for operator commands
	if tn.Enabled() {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: warm the cache immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, prewarming now")
		go sched.RunPrewarmNow()
	}

	log.Println("[INFO] StockPulse is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockPulse stopped")
}
