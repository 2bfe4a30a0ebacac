// Package main is the entry point for the interactive cutaway viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/cutaway/internal/config"
	"github.com/Faultbox/cutaway/internal/demo"
	"github.com/Faultbox/cutaway/internal/logger"
	"github.com/Faultbox/cutaway/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Cutaway ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	parts, err := demo.Load(cfg.Demo.Assembly, cfg.Demo.MeshCells)
	if err != nil {
		logger.Error("failed to load assembly", zap.String("assembly", cfg.Demo.Assembly), zap.Error(err))
		os.Exit(1)
	}

	v, err := viewer.New(cfg, parts)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
