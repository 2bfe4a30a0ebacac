// Package main renders a cutaway snapshot of an assembly without opening
// a window.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/cutaway/internal/config"
	"github.com/Faultbox/cutaway/internal/demo"
	"github.com/Faultbox/cutaway/internal/logger"
	"github.com/Faultbox/cutaway/internal/snapshot"
)

func main() {
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
	defer logger.Sync()

	parts, err := demo.Load(cfg.Demo.Assembly, cfg.Demo.MeshCells)
	if err != nil {
		logger.Error("failed to load assembly", zap.String("assembly", cfg.Demo.Assembly), zap.Error(err))
		os.Exit(1)
	}

	clip := snapshot.Session(parts, cfg)
	name := strings.TrimSuffix(filepath.Base(cfg.Demo.Assembly), filepath.Ext(cfg.Demo.Assembly))

	path, err := snapshot.Write(clip, cfg, name)
	if err != nil {
		logger.Error("snapshot failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("snapshot saved",
		zap.String("path", path),
		zap.Int("leaves", len(clip.Leaves())),
		zap.Int("skipped", clip.Skipped()),
	)
}
