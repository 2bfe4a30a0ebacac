package snapshot

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/cutaway/internal/config"
	"github.com/Faultbox/cutaway/pkg/assembly"
	"github.com/Faultbox/cutaway/pkg/math"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Snapshot.Width = 96
	cfg.Snapshot.Height = 96
	cfg.Snapshot.Axis = "iso"
	cfg.Snapshot.OutputDir = t.TempDir()
	cfg.Clipping.PlaneSize = 1.5
	cfg.Clipping.HelperColor = [3]float32{1, 0, 1}
	return cfg
}

func grayCube() []assembly.Part {
	return []assembly.Part{&assembly.Leaf{
		Name:  "cube",
		Shape: assembly.Box("cube", math.Vec3{X: 2, Y: 2, Z: 2}, [3]float32{0.6, 0.6, 0.6}),
	}}
}

// magenta counts pixels pulled toward the helper color.
func magenta(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r > g+0x3000 && bl > g+0x3000 {
				n++
			}
		}
	}
	return n
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name string
		want math.Vec3
		ok   bool
	}{
		{"x", math.Vec3{X: -1}, true},
		{"Y", math.Vec3{Y: -1}, true},
		{"z", math.Vec3{Z: -1}, true},
		{"iso", math.Vec3{X: -1, Y: -1, Z: -1}, true},
		{"diagonal", math.Vec3{X: -1, Y: -1, Z: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Direction(tt.name)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Direction(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRenderDrawsModelAndHelpers(t *testing.T) {
	cfg := testConfig(t)
	c := Session(grayCube(), cfg)
	if !c.HelpersVisible() {
		t.Fatal("snapshot session should show helpers")
	}

	img, err := Render(c, cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 96 || b.Dy() != 96 {
		t.Fatalf("image size %v", b)
	}

	bg := cfg.Graphics.Background
	bgR := uint32(toByte(bg[0])) * 0x101
	covered := 0
	for y := 0; y < 96; y++ {
		for x := 0; x < 96; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r != bgR {
				covered++
			}
		}
	}
	if covered == 0 {
		t.Error("nothing was drawn over the background")
	}
	if magenta(img) == 0 {
		t.Error("no helper outline pixels found")
	}
}

func TestRenderWithoutHelpers(t *testing.T) {
	cfg := testConfig(t)
	c := Session(grayCube(), cfg)
	c.SetHelpersVisible(false)

	img, err := Render(c, cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := magenta(img); n != 0 {
		t.Errorf("expected no outline pixels, got %d", n)
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		format string
		ext    string
	}{
		{"png", ".png"},
		{"bmp", ".bmp"},
		{"tiff", ".png"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Snapshot.Format = tt.format
			cfg.Snapshot.OutputDir = filepath.Join(cfg.Snapshot.OutputDir, "nested")

			path, err := Write(Session(grayCube(), cfg), cfg, "cube")
			if err != nil {
				t.Fatalf("Write: %v", err)
			}
			if filepath.Ext(path) != tt.ext {
				t.Errorf("path %s, want extension %s", path, tt.ext)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if info.Size() == 0 {
				t.Error("empty snapshot file")
			}
		})
	}
}
