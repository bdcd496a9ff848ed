package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/sportconnect-service/internal/config"
	"github.com/preston-bernstein/sportconnect-service/internal/logging"
	"github.com/preston-bernstein/sportconnect-service/internal/server"
)

const (
	appName    = "sportconnect-service"
	appVersion = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		logging.Error(logging.NewLogger(logging.Config{Service: appName}), "invalid configuration", err)
		return 2
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: appName,
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "server startup failed", err)
		return 1
	}
	srv.Run(ctx, stop)
	return 0
}
