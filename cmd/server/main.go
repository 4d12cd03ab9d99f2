package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/voxkit/voxkit/config"
	"github.com/voxkit/voxkit/pkg/health"
	"github.com/voxkit/voxkit/pkg/otel"
	"github.com/voxkit/voxkit/pkg/store"
	"github.com/voxkit/voxkit/pkg/tts"
	"github.com/voxkit/voxkit/pkg/voice"
	"github.com/voxkit/voxkit/server"
	"github.com/voxkit/voxkit/server/api"
)

var version = "dev"

func main() {
	configFlag := flag.String("config", "config.yaml", "configuration file")
	addressFlag := flag.String("address", "", "listen address (overrides config)")

	flag.Parse()

	ctx := context.Background()

	if err := otel.Setup(ctx, "voxkit", version); err != nil {
		slog.Error("telemetry setup failed", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Parse(*configFlag)

	if err != nil {
		slog.Error("loading configuration", "path", *configFlag, "error", err)
		os.Exit(1)
	}

	if *addressFlag != "" {
		cfg.Address = *addressFlag
	}

	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Error("creating storage directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	records := store.New()

	var options []voice.Option

	if cloner, err := cfg.Cloner(); err == nil {
		options = append(options, voice.WithCloner(cloner, cfg.CloneModel))
	}

	voices := voice.New(records, options...)
	speech := tts.New(records, cfg, "", cfg.OutputDir)
	checker := health.New(cfg.Probes()...)

	handler := api.New(records, voices, speech, checker, cfg.UploadDir)
	handler.Development = cfg.Development

	if os.Getenv("PROVIDER_HEALTHCHECK_ON_STARTUP") != "false" {
		report := checker.Check(ctx, false)

		for _, p := range report.Providers {
			slog.Info("provider health at startup", "provider", p.Provider, "configured", p.Configured)
		}
	}

	slog.Info("starting server", "address", cfg.Address)

	if err := server.New(cfg, handler).ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
