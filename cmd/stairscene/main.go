// Package main is the entry point for the stair scene viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/stairscene/internal/app"
	"github.com/Faultbox/stairscene/internal/config"
	"github.com/Faultbox/stairscene/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("=== StairScene ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	defer logger.Sync()

	viewer, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		app.ShowError("StairScene", err.Error())
		return 1
	}
	defer viewer.Close()

	if err := viewer.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		app.ShowError("StairScene", err.Error())
		return 1
	}

	logger.Info("viewer closed normally")
	return 0
}
