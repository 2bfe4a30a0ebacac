package clipping

// Side selects which triangle faces a draw rasterizes.
type Side uint8

const (
	SideFront Side = iota
	SideBack
	SideDouble
)

func (s Side) String() string {
	switch s {
	case SideFront:
		return "front"
	case SideBack:
		return "back"
	default:
		return "double"
	}
}

// StencilFunc is the stencil comparison applied against the reference.
type StencilFunc uint8

const (
	StencilAlways StencilFunc = iota
	StencilNever
	StencilEqual
	StencilNotEqual
)

// Test reports whether a stored stencil value passes against ref.
func (f StencilFunc) Test(ref, stored uint8) bool {
	switch f {
	case StencilNever:
		return false
	case StencilEqual:
		return ref == stored
	case StencilNotEqual:
		return ref != stored
	default:
		return true
	}
}

// StencilOp is the update applied to a stored stencil value.
type StencilOp uint8

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncrWrap
	StencilDecrWrap
)

// Apply returns the new stencil value.
func (op StencilOp) Apply(ref, stored uint8) uint8 {
	switch op {
	case StencilZero:
		return 0
	case StencilReplace:
		return ref
	case StencilIncrWrap:
		return stored + 1
	case StencilDecrWrap:
		return stored - 1
	default:
		return stored
	}
}

// Stencil is the stencil configuration of a draw.
type Stencil struct {
	Write bool
	Func  StencilFunc
	Ref   uint8
	Fail  StencilOp
	ZFail StencilOp
	ZPass StencilOp
}

// Material describes how a drawable is rasterized.
type Material struct {
	Color     [3]float32
	Metalness float32
	Roughness float32
	Lit       bool
	Wireframe bool

	Side       Side
	ColorWrite bool
	DepthWrite bool
	DepthTest  bool
	Stencil    Stencil

	// ClipAxes lists the plane slots this draw is clipped against.
	ClipAxes []int
}

func maskMaterial(axis int, side Side, op StencilOp) Material {
	return Material{
		Side: side,
		Stencil: Stencil{
			Write: true,
			Func:  StencilAlways,
			Fail:  op,
			ZFail: op,
			ZPass: op,
		},
		ClipAxes: []int{axis},
	}
}

func capMaterial(axis int, color [3]float32) Material {
	return Material{
		Color:      color,
		Metalness:  0.1,
		Roughness:  0.75,
		Lit:        true,
		Side:       SideFront,
		ColorWrite: true,
		DepthWrite: true,
		DepthTest:  true,
		Stencil: Stencil{
			Write: true,
			Func:  StencilNotEqual,
			Ref:   0,
			Fail:  StencilReplace,
			ZFail: StencilReplace,
			ZPass: StencilReplace,
		},
		ClipAxes: otherAxes(axis),
	}
}

func surfaceMaterial(color [3]float32) Material {
	return Material{
		Color:      color,
		Metalness:  0.1,
		Roughness:  0.75,
		Lit:        true,
		Side:       SideFront,
		ColorWrite: true,
		DepthWrite: true,
		DepthTest:  true,
		ClipAxes:   []int{AxisX, AxisY, AxisZ},
	}
}

func helperMaterial(color [3]float32) Material {
	return Material{
		Color:      color,
		Wireframe:  true,
		Side:       SideDouble,
		ColorWrite: true,
		DepthTest:  true,
	}
}
