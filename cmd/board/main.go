package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Novip1906/join/internal/app"
	"github.com/Novip1906/join/internal/config"
	"github.com/Novip1906/join/pkg/logging"
)

func main() {
	cfg := config.MustLoadConfig()
	log := logging.SetupLogger(logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := app.NewServer(cfg, log)
	if err != nil {
		log.Error("server init error", logging.Err(err))
		os.Exit(1)
	}
	defer srv.Close()

	if err := srv.Run(ctx); err != nil {
		log.Error("server run error", logging.Err(err))
		return
	}
}
