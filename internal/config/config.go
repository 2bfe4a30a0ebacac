// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Clipping ClippingConfig `yaml:"clipping"`
	Lighting LightingConfig `yaml:"lighting"`
	Demo     DemoConfig     `yaml:"demo"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	Background [3]float32 `yaml:"background"`
}

// ClippingConfig holds clip plane settings.
type ClippingConfig struct {
	Distance float32 `yaml:"distance"` // Initial constant of all planes
	// PlaneSize is the edge of cap and helper quads; 0 derives it from
	// the assembly bounds.
	PlaneSize   float32    `yaml:"plane_size"`
	HelperColor [3]float32 `yaml:"helper_color"`
	ShowHelpers bool       `yaml:"show_helpers"`
	Step        float32    `yaml:"step"` // Keyboard distance step
}

// LightingConfig holds the sun placement in degrees.
type LightingConfig struct {
	Azimuth   float32 `yaml:"azimuth"`
	Elevation float32 `yaml:"elevation"`
	Ambient   float32 `yaml:"ambient"`
}

// DemoConfig selects the assembly to show.
type DemoConfig struct {
	Assembly  string `yaml:"assembly"`   // Built-in name or path to a YAML assembly
	MeshCells int    `yaml:"mesh_cells"` // Marching-cubes resolution
}

// SnapshotConfig holds headless snapshot settings.
type SnapshotConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Axis      string `yaml:"axis"` // x, y, z or iso
	Format    string `yaml:"format"`
	OutputDir string `yaml:"output_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Background: [3]float32{0.1, 0.1, 0.12},
		},
		Clipping: ClippingConfig{
			Distance:    0.5,
			PlaneSize:   0,
			HelperColor: [3]float32{1, 0.85, 0.2},
			ShowHelpers: false,
			Step:        0.05,
		},
		Lighting: LightingConfig{
			Azimuth:   40,
			Elevation: 55,
			Ambient:   0.35,
		},
		Demo: DemoConfig{
			Assembly:  "gearbox",
			MeshCells: 48,
		},
		Snapshot: SnapshotConfig{
			Width:     512,
			Height:    512,
			Axis:      "z",
			Format:    "png",
			OutputDir: "snapshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
