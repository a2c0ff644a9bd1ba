package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/config"
	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/logger"
	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/server"
)

var (
	port    = flag.Int("port", 0, "listen port (overrides config.toml)")
	devMode = flag.Bool("dev", false, "development mode")
	dataDir = flag.String("dataDir", "", "data directory (overrides config.toml)")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	log := logger.New(cfg.Server.DevMode)

	srv, err := server.NewServer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("listening")
		if err := srv.Run(addr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := srv.Close(); err != nil {
		log.Error().Err(err).Msg("close server")
	}
}
