package clipping

import "testing"

func TestStencilOpApply(t *testing.T) {
	tests := []struct {
		op     StencilOp
		ref    uint8
		stored uint8
		want   uint8
	}{
		{StencilKeep, 7, 3, 3},
		{StencilZero, 7, 3, 0},
		{StencilReplace, 7, 3, 7},
		{StencilIncrWrap, 0, 3, 4},
		{StencilIncrWrap, 0, 255, 0},
		{StencilDecrWrap, 0, 3, 2},
		{StencilDecrWrap, 0, 0, 255},
	}
	for _, tt := range tests {
		if got := tt.op.Apply(tt.ref, tt.stored); got != tt.want {
			t.Errorf("op %d Apply(%d, %d) = %d, want %d", tt.op, tt.ref, tt.stored, got, tt.want)
		}
	}
}

func TestStencilFuncTest(t *testing.T) {
	tests := []struct {
		fn     StencilFunc
		ref    uint8
		stored uint8
		want   bool
	}{
		{StencilAlways, 0, 5, true},
		{StencilNever, 0, 0, false},
		{StencilEqual, 2, 2, true},
		{StencilEqual, 2, 3, false},
		{StencilNotEqual, 0, 0, false},
		{StencilNotEqual, 0, 1, true},
		{StencilNotEqual, 0, 255, true},
	}
	for _, tt := range tests {
		if got := tt.fn.Test(tt.ref, tt.stored); got != tt.want {
			t.Errorf("func %d Test(%d, %d) = %v, want %v", tt.fn, tt.ref, tt.stored, got, tt.want)
		}
	}
}

func TestIncrementThenDecrementCancels(t *testing.T) {
	var v uint8
	for i := 0; i < 300; i++ {
		v = StencilIncrWrap.Apply(0, v)
	}
	for i := 0; i < 300; i++ {
		v = StencilDecrWrap.Apply(0, v)
	}
	if v != 0 {
		t.Errorf("wrapped counter = %d, want 0", v)
	}
}
