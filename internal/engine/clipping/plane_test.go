package clipping

import (
	"testing"

	"github.com/Faultbox/cutaway/pkg/math"
)

func TestNewPlaneSetDefaults(t *testing.T) {
	s := NewPlaneSet(3)
	for axis := 0; axis < AxisCount; axis++ {
		p := s.Plane(axis)
		if p.Normal != DefaultNormals[axis] {
			t.Errorf("axis %d normal = %v, want %v", axis, p.Normal, DefaultNormals[axis])
		}
		if p.Constant != 3 {
			t.Errorf("axis %d constant = %v, want 3", axis, p.Constant)
		}
	}
}

func TestSetDistanceClamp(t *testing.T) {
	var negZero float32
	negZero = -negZero

	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"zero", 0, Epsilon},
		{"negative zero", negZero, Epsilon},
		{"tiny positive", 1e-9, Epsilon},
		{"tiny negative", -1e-9, -Epsilon},
		{"epsilon kept", Epsilon, Epsilon},
		{"regular", 2.5, 2.5},
		{"regular negative", -0.25, -0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPlaneSet(1)
			s.SetDistance(AxisY, tt.in)
			if got := s.Plane(AxisY).Constant; got != tt.want {
				t.Errorf("SetDistance(%v) stored %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlaneDistance(t *testing.T) {
	p := Plane{Normal: math.Vec3{X: -1}, Constant: 2}
	if d := p.Distance(math.Vec3{X: 1}); d != 1 {
		t.Errorf("Distance = %v, want 1", d)
	}
	if p.Clips(math.Vec3{X: 1}) {
		t.Error("x=1 should be kept")
	}
	if !p.Clips(math.Vec3{X: 3}) {
		t.Error("x=3 should be clipped")
	}
}

func TestOthers(t *testing.T) {
	s := NewPlaneSet(1)
	tests := []struct {
		axis int
		want [2]int
	}{
		{AxisX, [2]int{AxisY, AxisZ}},
		{AxisY, [2]int{AxisX, AxisZ}},
		{AxisZ, [2]int{AxisX, AxisY}},
	}
	for _, tt := range tests {
		got := s.Others(tt.axis)
		if len(got) != 2 || got[0] != tt.want[0] || got[1] != tt.want[1] {
			t.Errorf("Others(%d) = %v, want %v", tt.axis, got, tt.want)
		}
	}
}

func TestAxesAndClips(t *testing.T) {
	s := NewPlaneSet(1)
	planes := s.Axes(AxisZ, AxisX)
	if len(planes) != 2 || planes[0].Normal != DefaultNormals[AxisZ] || planes[1].Normal != DefaultNormals[AxisX] {
		t.Errorf("Axes returned %v", planes)
	}
	if !s.Clips(math.Vec3{X: 2}, []int{AxisX}) {
		t.Error("x=2 should be clipped by the X plane at 1")
	}
	if s.Clips(math.Vec3{X: 2}, []int{AxisY, AxisZ}) {
		t.Error("x=2 should pass the Y and Z planes")
	}
}

func TestInvalidAxisPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for axis 3")
		}
	}()
	NewPlaneSet(1).Plane(3)
}
