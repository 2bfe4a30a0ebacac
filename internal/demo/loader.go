package demo

import (
	"errors"
	"fmt"
	gomath "math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/cutaway/pkg/assembly"
	"github.com/Faultbox/cutaway/pkg/math"
)

// File is the YAML form of an assembly.
type File struct {
	Name  string     `yaml:"name"`
	Parts []PartSpec `yaml:"parts"`
}

// PartSpec is a group (Children set) or a leaf (Shape set).
type PartSpec struct {
	Name        string        `yaml:"name"`
	Translation *[3]float32   `yaml:"translation,omitempty"`
	Rotation    *RotationSpec `yaml:"rotation,omitempty"`
	Children    []PartSpec    `yaml:"children,omitempty"`
	Shape       *ShapeSpec    `yaml:"shape,omitempty"`
}

// RotationSpec is an axis-angle rotation in degrees.
type RotationSpec struct {
	Axis    [3]float32 `yaml:"axis"`
	Degrees float32    `yaml:"degrees"`
}

// ShapeSpec selects one primitive or carries inline geometry.
type ShapeSpec struct {
	Color [3]float32 `yaml:"color"`

	Box        *[3]float32   `yaml:"box,omitempty"`
	RoundedBox *RoundedSpec  `yaml:"rounded_box,omitempty"`
	Cylinder   *CylinderSpec `yaml:"cylinder,omitempty"`
	Sphere     *float64      `yaml:"sphere,omitempty"`
	Shell      *ShellSpec    `yaml:"shell,omitempty"`
	Mesh       *MeshSpec     `yaml:"mesh,omitempty"`
}

// RoundedSpec describes a rounded box.
type RoundedSpec struct {
	Size  [3]float64 `yaml:"size"`
	Round float64    `yaml:"round"`
}

// CylinderSpec describes a Z-aligned cylinder.
type CylinderSpec struct {
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
}

// ShellSpec describes a hollow box.
type ShellSpec struct {
	Size [3]float64 `yaml:"size"`
	Wall float64    `yaml:"wall"`
}

// MeshSpec is inline geometry. It is passed through unchecked; leaves
// with malformed meshes are skipped when the cutaway is built.
type MeshSpec struct {
	Vertices  [][3]float32 `yaml:"vertices"`
	Normals   [][3]float32 `yaml:"normals"`
	Triangles [][3]uint32  `yaml:"triangles"`
}

// ErrInvalidAssembly reports a structurally invalid assembly file.
var ErrInvalidAssembly = errors.New("invalid assembly")

// Load resolves name as a YAML assembly file when it has a .yaml or .yml
// extension, and as a built-in assembly otherwise.
func Load(name string, cells int) ([]assembly.Part, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return LoadFile(name, cells)
	}
	return Build(name, cells)
}

// LoadFile reads a YAML assembly file.
func LoadFile(path string, cells int) ([]assembly.Part, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading assembly: %w", err)
	}
	parts, err := Parse(data, cells)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parts, nil
}

// Parse decodes a YAML assembly.
func Parse(data []byte, cells int) ([]assembly.Part, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding assembly: %w", err)
	}
	if len(f.Parts) == 0 {
		return nil, fmt.Errorf("%w: no parts", ErrInvalidAssembly)
	}

	parts := make([]assembly.Part, 0, len(f.Parts))
	for i, spec := range f.Parts {
		p, err := spec.build(cells, fmt.Sprintf("parts[%d]", i))
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

func (s PartSpec) build(cells int, where string) (assembly.Part, error) {
	isGroup := s.Children != nil
	isLeaf := s.Shape != nil
	switch {
	case isGroup && isLeaf:
		return nil, fmt.Errorf("%w: %s has both children and a shape", ErrInvalidAssembly, where)
	case !isGroup && !isLeaf:
		return nil, fmt.Errorf("%w: %s has neither children nor a shape", ErrInvalidAssembly, where)
	}

	t := s.transform()
	if isLeaf {
		shape, err := s.Shape.build(s.Name, cells)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}
		return &assembly.Leaf{Name: s.Name, Shape: shape, Transform: t}, nil
	}

	g := &assembly.Group{Name: s.Name, Transform: t}
	for i, child := range s.Children {
		p, err := child.build(cells, fmt.Sprintf("%s.children[%d]", where, i))
		if err != nil {
			return nil, err
		}
		g.Children = append(g.Children, p)
	}
	return g, nil
}

// transform returns nil when neither translation nor rotation is given,
// so leaves inherit their group placement.
func (s PartSpec) transform() *assembly.Transform {
	if s.Translation == nil && s.Rotation == nil {
		return nil
	}
	t := assembly.Identity()
	if s.Translation != nil {
		t.Translation = math.Vec3From(*s.Translation)
	}
	if s.Rotation != nil {
		axis := math.Vec3From(s.Rotation.Axis).Normalize()
		t.Rotation = math.QuatFromAxisAngle(axis, s.Rotation.Degrees*gomath.Pi/180)
	}
	return &t
}

func (s *ShapeSpec) build(name string, cells int) (*assembly.Shape, error) {
	set := 0
	for _, ok := range []bool{s.Box != nil, s.RoundedBox != nil, s.Cylinder != nil, s.Sphere != nil, s.Shell != nil, s.Mesh != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: shape %q must name exactly one primitive, got %d", ErrInvalidAssembly, name, set)
	}

	switch {
	case s.Box != nil:
		return assembly.Box(name, math.Vec3From(*s.Box), s.Color), nil
	case s.RoundedBox != nil:
		return RoundedBox(name, s.RoundedBox.Size, s.RoundedBox.Round, cells, s.Color)
	case s.Cylinder != nil:
		return Cylinder(name, s.Cylinder.Height, s.Cylinder.Radius, cells, s.Color)
	case s.Sphere != nil:
		return Sphere(name, *s.Sphere, cells, s.Color)
	case s.Shell != nil:
		return Shell(name, s.Shell.Size, s.Shell.Wall, cells, s.Color)
	default:
		return &assembly.Shape{
			Name:      name,
			Vertices:  assembly.Vec3Data{Nested: s.Mesh.Vertices},
			Normals:   assembly.Vec3Data{Nested: s.Mesh.Normals},
			Triangles: assembly.IndexData{Nested: s.Mesh.Triangles},
			Color:     s.Color,
		}, nil
	}
}
