package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/cutaway/internal/engine/clipping"
)

func stencilFunc(f clipping.StencilFunc) uint32 {
	switch f {
	case clipping.StencilNever:
		return gl.NEVER
	case clipping.StencilEqual:
		return gl.EQUAL
	case clipping.StencilNotEqual:
		return gl.NOTEQUAL
	default:
		return gl.ALWAYS
	}
}

func stencilOp(op clipping.StencilOp) uint32 {
	switch op {
	case clipping.StencilZero:
		return gl.ZERO
	case clipping.StencilReplace:
		return gl.REPLACE
	case clipping.StencilIncrWrap:
		return gl.INCR_WRAP
	case clipping.StencilDecrWrap:
		return gl.DECR_WRAP
	default:
		return gl.KEEP
	}
}

// cullMode returns whether culling is on and which face is culled.
func cullMode(side clipping.Side) (bool, uint32) {
	switch side {
	case clipping.SideFront:
		return true, gl.BACK
	case clipping.SideBack:
		return true, gl.FRONT
	default:
		return false, 0
	}
}

// clipUniforms packs planes as (normal, constant) vec4s. A point is kept
// when dot(normal, p) + constant >= 0, which is the sign convention of
// gl_ClipDistance.
func clipUniforms(planes []clipping.Plane) [][4]float32 {
	out := make([][4]float32, 0, clipping.AxisCount)
	for i, p := range planes {
		if i == clipping.AxisCount {
			break
		}
		out = append(out, [4]float32{p.Normal.X, p.Normal.Y, p.Normal.Z, p.Constant})
	}
	return out
}
