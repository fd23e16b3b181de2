package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/eamonbrady/revise/internal/config"
	"github.com/eamonbrady/revise/internal/content"
	"github.com/eamonbrady/revise/internal/store"
	"github.com/eamonbrady/revise/internal/web"
)

func main() {
	f := pflag.NewFlagSet("revise", pflag.ExitOnError)
	f.String("config", "", "Path to a YAML config file")
	f.String("addr", ":8484", "HTTP listen address")
	f.String("db-path", "revise.db", "Path to the SQLite database file")
	f.String("content-path", "decks.yaml", "Path to the deck catalogue file")
	f.String("cache-dir", "sources", "Directory for git card-source checkouts")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.Bool("log-json", false, "Emit JSON logs")
	f.Int("daily-goal", 0, "Override the stored daily card goal (0 keeps it)")
	f.Bool("sync-on-start", false, "Sync card sources before serving")
	if err := f.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	configPath, _ := f.GetString("config")
	cfg, err := config.Load(configPath, f)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	kv, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	st, err := store.Open(kv)
	if err != nil {
		slog.Error("Failed to load study data", "error", err)
		os.Exit(1)
	}

	cat, err := content.Load(cfg.ContentPath)
	if err != nil {
		slog.Error("Failed to load deck catalogue", "path", cfg.ContentPath, "error", err)
		os.Exit(1)
	}

	if err := st.InitializeCards(cat.SeedCards(time.Now())); err != nil {
		slog.Error("Failed to seed card collection", "error", err)
		os.Exit(1)
	}

	if cfg.DailyGoal > 0 {
		if err := st.SetDailyGoal(cfg.DailyGoal); err != nil {
			slog.Error("Failed to apply daily goal", "error", err)
			os.Exit(1)
		}
	}

	if cfg.SyncOnStart {
		content.SyncSources(st, cat, cfg.CacheDir, time.Now())
	}

	srv := web.NewServer(st, cat, cfg.CacheDir)
	slog.Info("Listening", "addr", cfg.Addr, "db", cfg.DBPath)
	if err := http.ListenAndServe(cfg.Addr, srv); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

// setupLogger installs the default slog logger at the configured level.
func setupLogger(cfg *config.Config) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
