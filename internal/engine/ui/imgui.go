// Package ui provides ImGui-based user interface components.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
}

// NewBackend creates a new ImGui backend with an SDL window and a GL
// context.
func NewBackend(title string, width, height int32, bg [3]float32) (*Backend, error) {
	b := &Backend{
		width:  width,
		height: height,
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(bg[0], bg[1], bg[2], 1.0))
	b.backend.CreateWindow(title, int(width), int(height))

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

// Run starts the main render loop.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// GetViewport returns the main viewport work area.
func (b *Backend) GetViewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// Image shows a GL texture rendered bottom-up, such as a framebuffer
// color attachment.
func Image(texID uint32, width, height float32) {
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(texID))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(width, height),
		imgui.NewVec2(0, 1), // UV flipped
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
