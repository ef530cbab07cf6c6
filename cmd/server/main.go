package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazyhaar/tanzil-search/pkg/api"
	"github.com/hazyhaar/tanzil-search/pkg/chassis"
	"github.com/hazyhaar/tanzil-search/pkg/quran"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

type config struct {
	Addr       string `yaml:"addr"`
	APIBaseURL string `yaml:"api_base_url"`
	CachePath  string `yaml:"cache_path"`
	CertFile   string `yaml:"cert_file"`
	KeyFile    string `yaml:"key_file"`
	LogLevel   string `yaml:"log_level"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "fetch":
		cmdFetch(os.Args[2:])
	case "probe":
		cmdProbe(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: tanzil <command>

Commands:
  serve   Start the verse search server (HTTPS + MCP over QUIC)
  fetch   Prefetch chapters into the local cache
  probe   Connect to a running server over MCP/QUIC and list its tools
`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, logger := loadConfig(*cfgPath)

	store, err := quran.OpenStore(cfg.CachePath)
	if err != nil {
		logger.Error("open chapter cache", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	client := quran.NewClient(quran.WithBaseURL(cfg.APIBaseURL), quran.WithLogger(logger))
	provider := quran.NewCachedProvider(store, client, logger)
	svc := api.NewService(provider, logger)

	router := api.NewRouter(svc)

	mcpSrv := server.NewMCPServer("tanzil-search", "1.0.0",
		server.WithToolCapabilities(false),
	)
	api.RegisterMCPTools(mcpSrv, svc)

	srv, err := chassis.New(chassis.Config{
		Addr:      cfg.Addr,
		CertFile:  cfg.CertFile,
		KeyFile:   cfg.KeyFile,
		Handler:   router,
		MCPServer: mcpSrv,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("chassis init failed", "error", err)
		os.Exit(1)
	}

	// SIGHUP: drop open chapter sessions so the next request re-fetches.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			open := svc.OpenChapters()
			svc.EvictAll()
			logger.Info("SIGHUP received, chapter sessions evicted", "count", len(open))
		}
	}()

	go func() {
		if err := srv.Start(ctx); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Stop(context.Background())
}

func loadConfig(path string) (config, *slog.Logger) {
	cfg := config{
		Addr:       ":8420",
		APIBaseURL: quran.DefaultBaseURL,
		CachePath:  "chapters.db",
		LogLevel:   "info",
	}

	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, nil))

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		bootstrap.Info("no config file, using defaults", "path", path)
	case err != nil:
		bootstrap.Error("read config", "error", err)
		os.Exit(1)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			bootstrap.Error("parse config", "error", err)
			os.Exit(1)
		}
	}

	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return cfg, logger
}
