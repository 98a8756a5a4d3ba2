package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/rdpmanager/internal/buildinfo"
	"github.com/dmitrijs2005/rdpmanager/internal/client/cli"
	"github.com/dmitrijs2005/rdpmanager/internal/client/config"
	"github.com/dmitrijs2005/rdpmanager/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closer.Close()

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "exiting", "error", err)
		os.Exit(1)
	}
}
