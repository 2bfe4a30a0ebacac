package lighting

import (
	"testing"

	cmath "github.com/Faultbox/cutaway/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name      string
		azimuth   float32
		elevation float32
		want      cmath.Vec3
	}{
		{"zenith", 0, 90, cmath.Vec3{Y: -1}},
		{"south horizon", 0, 0, cmath.Vec3{Z: -1}},
		{"east horizon", 90, 0, cmath.Vec3{X: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elevation)
			if !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
			}
		})
	}
}

func TestShade(t *testing.T) {
	sun := NewSun(0, 90, 0.2)
	up := cmath.Vec3{Y: 1}
	down := cmath.Vec3{Y: -1}

	if got := sun.Lambert(up); got < 0.999 {
		t.Errorf("Lambert(up) = %v, want 1", got)
	}
	if got := sun.Lambert(down); got != 0 {
		t.Errorf("Lambert(down) = %v, want 0", got)
	}

	lit := sun.Shade([3]float32{0.5, 0.5, 0.5}, up)
	if lit[0] < 0.59 || lit[0] > 0.61 {
		t.Errorf("lit channel = %v, want 0.6", lit[0])
	}
	shadow := sun.Shade([3]float32{0.5, 0.5, 0.5}, down)
	if shadow[0] < 0.09 || shadow[0] > 0.11 {
		t.Errorf("shadowed channel = %v, want 0.1", shadow[0])
	}
	if bright := sun.Shade([3]float32{1, 1, 1}, up); bright[0] != 1 {
		t.Errorf("shade must clamp to 1, got %v", bright[0])
	}
}
