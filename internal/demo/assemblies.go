package demo

import (
	"errors"
	"fmt"
	gomath "math"
	"sort"

	"github.com/Faultbox/cutaway/pkg/assembly"
	"github.com/Faultbox/cutaway/pkg/math"
)

// ErrUnknownAssembly is returned for names with no built-in assembly.
var ErrUnknownAssembly = errors.New("unknown assembly")

var (
	steel  = [3]float32{0.62, 0.64, 0.68}
	brass  = [3]float32{0.85, 0.65, 0.25}
	red    = [3]float32{0.85, 0.2, 0.2}
	blue   = [3]float32{0.2, 0.35, 0.85}
	green  = [3]float32{0.25, 0.7, 0.35}
	yellow = [3]float32{0.9, 0.8, 0.2}
)

type builder func(cells int) ([]assembly.Part, error)

var builtins = map[string]builder{
	"cube":    cube,
	"stack":   stack,
	"gearbox": gearbox,
}

// Names lists the built-in assemblies.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build returns the named built-in assembly. cells sets the
// marching-cubes resolution of procedural solids.
func Build(name string, cells int) ([]assembly.Part, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAssembly, name)
	}
	return b(cells)
}

func at(x, y, z float32) *assembly.Transform {
	return &assembly.Transform{Translation: math.Vec3{X: x, Y: y, Z: z}, Rotation: math.QuatIdentity()}
}

func turned(t *assembly.Transform, axis math.Vec3, degrees float32) *assembly.Transform {
	t.Rotation = math.QuatFromAxisAngle(axis.Normalize(), degrees*gomath.Pi/180)
	return t
}

// cube is a single unit box.
func cube(int) ([]assembly.Part, error) {
	return []assembly.Part{
		&assembly.Leaf{Name: "cube", Shape: assembly.Box("cube", math.Vec3{X: 1, Y: 1, Z: 1}, red)},
	}, nil
}

// stack places boxes that overlap and coincide, so caps from separate
// leaves merge on shared cross-sections.
func stack(int) ([]assembly.Part, error) {
	unit := math.Vec3{X: 1, Y: 1, Z: 1}
	return []assembly.Part{
		&assembly.Group{
			Name: "stack",
			Children: []assembly.Part{
				&assembly.Leaf{Name: "base", Shape: assembly.Box("base", math.Vec3{X: 2, Y: 0.5, Z: 2}, blue), Transform: at(0, -0.75, 0)},
				&assembly.Leaf{Name: "left", Shape: assembly.Box("left", unit, red), Transform: at(-0.25, 0, 0)},
				&assembly.Leaf{Name: "right", Shape: assembly.Box("right", unit, green), Transform: at(0.25, 0, 0)},
				&assembly.Leaf{Name: "twin", Shape: assembly.Box("twin", unit, yellow), Transform: at(0.25, 0, 0)},
			},
		},
	}, nil
}

// gearbox is a hollow housing with a shaft, bearings and a cover plate,
// built from nested groups.
func gearbox(cells int) ([]assembly.Part, error) {
	housing, err := Shell("housing", [3]float64{3, 2, 2}, 0.25, cells, steel)
	if err != nil {
		return nil, err
	}
	shaft, err := Cylinder("shaft", 3.6, 0.18, cells, brass)
	if err != nil {
		return nil, err
	}
	bearing, err := Sphere("bearing", 0.35, cells, yellow)
	if err != nil {
		return nil, err
	}
	cover, err := RoundedBox("cover", [3]float64{1.2, 0.2, 1.2}, 0.04, cells, blue)
	if err != nil {
		return nil, err
	}

	// The shaft is Z-aligned; the drive group turns it onto X.
	drive := &assembly.Group{
		Name:      "drive",
		Transform: turned(at(0, 0, 0), math.Vec3{Y: 1}, 90),
		Children: []assembly.Part{
			&assembly.Leaf{Name: "shaft", Shape: shaft},
			&assembly.Leaf{Name: "bearing-front", Shape: bearing, Transform: at(1.2, 0, 0)},
			&assembly.Leaf{Name: "bearing-back", Shape: bearing, Transform: at(-1.2, 0, 0)},
		},
	}

	return []assembly.Part{
		&assembly.Group{
			Name: "gearbox",
			Children: []assembly.Part{
				&assembly.Leaf{Name: "housing", Shape: housing},
				drive,
				&assembly.Group{
					Name:      "lid",
					Transform: at(0, 1.1, 0),
					Children:  []assembly.Part{&assembly.Leaf{Name: "cover", Shape: cover}},
				},
			},
		},
	}, nil
}
