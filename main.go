package main

import (
	"context"
	_ "embed"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"weathersearch/apis/geocoding"
	"weathersearch/apis/openmeteo"
	"weathersearch/cli"
	"weathersearch/config"
)

//go:embed config.yaml
var configRaw []byte

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configRaw)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	geocodingClient := geocoding.New(geocoding.Config{
		URL:      cfg.Geocoding.URL,
		Count:    cfg.Geocoding.Count,
		Language: cfg.Geocoding.Language,
		Timeout:  cfg.HTTPTimeout,
	})
	weatherClient := openmeteo.New(openmeteo.Config{
		URL:      cfg.Forecast.URL,
		Timezone: cfg.Forecast.Timezone,
		Timeout:  cfg.HTTPTimeout,
	})

	cmd, err := cli.New(cli.Deps{
		Geocoding: geocodingClient,
		Weather:   weatherClient,
		Config:    cfg,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("new cli", "error", err)
		os.Exit(1)
	}

	if err = cmd.ExecuteContext(ctx); err != nil {
		logger.Debug("exec", "error", err)
		os.Exit(1)
	}
}
