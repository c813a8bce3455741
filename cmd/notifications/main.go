package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Novip1906/join/internal/notifications/app"
	"github.com/Novip1906/join/internal/notifications/config"
	"github.com/Novip1906/join/pkg/logging"
)

func main() {
	cfg := config.MustLoadConfig()
	log := logging.SetupLogger(logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := app.NewServer(cfg, log)

	log.Info("starting server", "topic", cfg.Kafka.EventsTopic)
	if err := srv.Run(ctx); err != nil {
		log.Error("server run error", logging.Err(err))
		os.Exit(1)
	}
}
