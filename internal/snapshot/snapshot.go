// Package snapshot renders a cutaway session to an image without a GPU.
package snapshot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"go.uber.org/zap"

	"github.com/Faultbox/cutaway/internal/config"
	"github.com/Faultbox/cutaway/internal/engine/clipping"
	"github.com/Faultbox/cutaway/internal/engine/debug"
	"github.com/Faultbox/cutaway/internal/engine/lighting"
	"github.com/Faultbox/cutaway/internal/engine/softraster"
	"github.com/Faultbox/cutaway/internal/logger"
	"github.com/Faultbox/cutaway/pkg/assembly"
	"github.com/Faultbox/cutaway/pkg/math"
)

const (
	// outlineWidth is the helper outline stroke width in pixels.
	outlineWidth = 1.5
	minSegment   = 0.5
)

// Views names the directions a snapshot can look along.
var Views = map[string]math.Vec3{
	"x":   {X: -1},
	"y":   {Y: -1},
	"z":   {Z: -1},
	"iso": {X: -1, Y: -1, Z: -1},
}

// Direction returns the view direction for name. Unknown names fall back
// to the iso view.
func Direction(name string) (math.Vec3, bool) {
	dir, ok := Views[strings.ToLower(name)]
	if !ok {
		return Views["iso"], false
	}
	return dir, true
}

// Session builds the clipping session a snapshot renders. Helpers are
// always shown so the overlay has something to trace.
func Session(parts []assembly.Part, cfg *config.Config) *clipping.Clipping {
	return clipping.New(parts, clipping.Options{
		Distance:    cfg.Clipping.Distance,
		PlaneSize:   cfg.Clipping.PlaneSize,
		HelperColor: cfg.Clipping.HelperColor,
		ShowHelpers: true,
	})
}

// Render rasterizes c and strokes the outline of each visible plane
// helper on top.
func Render(c *clipping.Clipping, cfg *config.Config) (image.Image, error) {
	log := logger.Named("snapshot")

	dir, ok := Direction(cfg.Snapshot.Axis)
	if !ok {
		log.Warn("unknown snapshot axis, using iso", zap.String("axis", cfg.Snapshot.Axis))
	}

	w, h := max(cfg.Snapshot.Width, 1), max(cfg.Snapshot.Height, 1)
	r := softraster.New(w, h, softraster.ViewFrom(dir, c.Bounds()))
	r.Sun = lighting.NewSun(cfg.Lighting.Azimuth, cfg.Lighting.Elevation, cfg.Lighting.Ambient)
	bg := cfg.Graphics.Background
	r.Background.R, r.Background.G, r.Background.B = toByte(bg[0]), toByte(bg[1]), toByte(bg[2])
	r.Clear()
	c.Render(r)

	dc := gg.NewContextForImage(r.Image())
	defer dc.Close()

	col := cfg.Clipping.HelperColor
	dc.SetRGB(float64(col[0]), float64(col[1]), float64(col[2]))
	dc.SetLineWidth(outlineWidth)

	segments := 0
	for _, outline := range debug.HelperOutlines(c) {
		for _, s := range outline {
			a, b := project(r, s[0]), project(r, s[1])
			// Helpers seen edge-on collapse to points.
			if b.Sub(a).Length() < minSegment {
				continue
			}
			dc.DrawLine(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
			segments++
		}
	}
	if segments > 0 {
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("stroke helper outlines: %w", err)
		}
	}

	log.Debug("snapshot rendered",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("outline_segments", segments))
	return dc.Image(), nil
}

// Write renders c into a new file under the configured output directory
// and returns its path.
func Write(c *clipping.Clipping, cfg *config.Config, name string) (string, error) {
	img, err := Render(c, cfg)
	if err != nil {
		return "", err
	}

	format := strings.ToLower(cfg.Snapshot.Format)
	if format != debug.FormatBMP {
		format = debug.FormatPNG
	}
	if dir := cfg.Snapshot.OutputDir; dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := filepath.Join(cfg.Snapshot.OutputDir, fmt.Sprintf("%s_%s.%s", name, strings.ToLower(cfg.Snapshot.Axis), format))
	if err := debug.SaveImage(path, img); err != nil {
		return "", err
	}
	return path, nil
}

func project(r *softraster.Rasterizer, p math.Vec3) math.Vec2 {
	x, y, _ := r.Project(p)
	return math.Vec2{X: x, Y: y}
}

func toByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
