package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lighty0410/autexousious/internal/config"
	"github.com/Lighty0410/autexousious/internal/logger"
	"github.com/Lighty0410/autexousious/internal/session"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "path to the configuration file")
		addr       = flag.String("addr", "", "listen address, overrides the configured one")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: "console",
		File:   cfg.Logging.File,
	})

	listenAddr := cfg.Session.ServerAddr
	if *addr != "" {
		listenAddr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := session.NewServer(listenAddr)
	if err := server.Start(ctx); err != nil {
		slog.Error("Session server failed", "error", err)
		os.Exit(1)
	}
}
