// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"math"

	cmath "github.com/Faultbox/cutaway/pkg/math"
)

// SunDirection converts azimuth/elevation angles in degrees to a light
// direction vector. Azimuth is rotation around the Y axis, elevation is
// the angle above the horizon. The result points from the light toward
// the scene.
func SunDirection(azimuth, elevation float32) cmath.Vec3 {
	az := float64(azimuth) * math.Pi / 180.0
	el := float64(elevation) * math.Pi / 180.0

	// Spherical to Cartesian, then flipped to travel away from the sun
	x := float32(math.Cos(el) * math.Sin(az))
	y := float32(math.Sin(el))
	z := float32(math.Cos(el) * math.Cos(az))

	return cmath.Vec3{X: -x, Y: -y, Z: -z}
}

// Sun is a directional light with an ambient term.
type Sun struct {
	Direction cmath.Vec3
	Color     [3]float32
	Ambient   [3]float32
}

// NewSun creates a white sun from azimuth/elevation in degrees.
func NewSun(azimuth, elevation, ambient float32) Sun {
	return Sun{
		Direction: SunDirection(azimuth, elevation),
		Color:     [3]float32{1, 1, 1},
		Ambient:   [3]float32{ambient, ambient, ambient},
	}
}

// Lambert returns the diffuse factor for a surface normal.
func (s Sun) Lambert(normal cmath.Vec3) float32 {
	return max(normal.Normalize().Dot(s.Direction.Negate().Normalize()), 0)
}

// Shade lights a base color with the sun's diffuse and ambient terms,
// clamped to [0,1].
func (s Sun) Shade(color [3]float32, normal cmath.Vec3) [3]float32 {
	d := s.Lambert(normal)
	var out [3]float32
	for i := range out {
		out[i] = min(color[i]*(s.Ambient[i]+s.Color[i]*d), 1)
	}
	return out
}
