package framebuffer

import "testing"

func TestFlipRows(t *testing.T) {
	// 1x2 image: bottom row red, top row blue, as GL returns it.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img := FlipRows(pixels, 1, 2)

	if top := img.RGBAAt(0, 0); top.B != 255 || top.R != 0 {
		t.Errorf("top pixel = %v, want blue", top)
	}
	if bottom := img.RGBAAt(0, 1); bottom.R != 255 || bottom.B != 0 {
		t.Errorf("bottom pixel = %v, want red", bottom)
	}
}
