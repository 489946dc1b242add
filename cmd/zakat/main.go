package main

import (
	"os"

	"zakat/internal/cli"
	"zakat/internal/export"
	applog "zakat/internal/log"
	"zakat/internal/services"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitStore(logger, cfg.DBPath)
	defer repo.Close()

	ctx, stop := cli.SignalContext()
	defer stop()

	exporter, err := export.New(ctx, cfg, repo)
	if err != nil {
		logger.Error("Failed to initialize exporter", "error", err, applog.FieldBackend, cfg.ExportBackend)
		os.Exit(1)
	}

	menu := cli.NewMenu(
		os.Stdin,
		os.Stdout,
		services.NewLedger(repo),
		services.NewCatalog(repo),
		services.NewRecorder(repo),
		exporter,
	)

	logger.Info("Starting zakat session",
		applog.FieldFile, cfg.DBPath,
		applog.FieldBackend, cfg.ExportBackend,
	)
	if err := menu.Run(ctx); err != nil {
		logger.Error("Session error", "error", err)
		os.Exit(1)
	}
	logger.Info("Session ended")
}
