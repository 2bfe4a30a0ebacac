package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagDistance   = flag.Float64("distance", 0, "Initial clip plane distance")
	flagAssembly   = flag.String("assembly", "", "Built-in assembly name or YAML assembly file")
	flagOut        = flag.String("out", "", "Snapshot output directory")
	flagAxis       = flag.String("axis", "", "Snapshot view: x, y, z or iso")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Clipping.ShowHelpers = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
		cfg.Snapshot.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
		cfg.Snapshot.Height = *flagHeight
	}
	if *flagDistance != 0 {
		cfg.Clipping.Distance = float32(*flagDistance)
	}
	if *flagAssembly != "" {
		cfg.Demo.Assembly = *flagAssembly
	}
	if *flagOut != "" {
		cfg.Snapshot.OutputDir = *flagOut
	}
	if *flagAxis != "" {
		cfg.Snapshot.Axis = *flagAxis
	}
}
