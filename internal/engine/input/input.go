// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies processed events.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int
	DeltaY int
	Wheel  float32
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events []Event

	dragging    bool
	dragButton  uint8
	dragX       float32
	dragY       float32
	clickStartX int
	clickStartY int
}

// ClickSlop is how far, in pixels, the mouse may move between press and
// release for the pair to still count as a click.
const ClickSlop = 4

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.dragX, i.dragY = 0, 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{
					Type: EventKeyUp,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseMotionEvent:
			i.push(Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				DeltaX: int(e.XRel),
				DeltaY: int(e.YRel),
			})

		case *sdl.MouseWheelEvent:
			i.push(Event{Type: EventMouseWheel, Wheel: float32(e.Y)})

		case *sdl.MouseButtonEvent:
			t := EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				t = EventMouseUp
			}
			i.push(Event{
				Type:   t,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})
		}
	}

	return false
}

// push records an event and tracks drag state for mouse events.
func (i *Input) push(e Event) {
	switch e.Type {
	case EventMouseDown:
		i.dragging = true
		i.dragButton = e.Button
		i.clickStartX, i.clickStartY = e.MouseX, e.MouseY
	case EventMouseUp:
		i.dragging = false
	case EventMouseMove:
		if i.dragging {
			i.dragX += float32(e.DeltaX)
			i.dragY += float32(e.DeltaY)
		}
	}
	i.events = append(i.events, e)
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Drag returns the mouse movement accumulated this frame while a button
// was held, and the button.
func (i *Input) Drag() (dx, dy float32, button uint8) {
	return i.dragX, i.dragY, i.dragButton
}

// Wheel returns the total wheel movement this frame.
func (i *Input) Wheel() float32 {
	var total float32
	for _, e := range i.events {
		if e.Type == EventMouseWheel {
			total += e.Wheel
		}
	}
	return total
}

// Click returns the position of a button release this frame that ended
// a click rather than a drag.
func (i *Input) Click() (x, y int, ok bool) {
	for _, e := range i.events {
		if e.Type != EventMouseUp {
			continue
		}
		dx, dy := e.MouseX-i.clickStartX, e.MouseY-i.clickStartY
		if dx*dx+dy*dy <= ClickSlop*ClickSlop {
			return e.MouseX, e.MouseY, true
		}
	}
	return 0, 0, false
}
