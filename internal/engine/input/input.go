// Package input polls SDL2 events and reduces them to the handful of
// actions the visualization responds to.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is a high-level input event.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResize
	// ActionAdvance fires the idle-step trigger (space or enter).
	ActionAdvance
	// ActionToggleAuto toggles the automatic idle-step timer.
	ActionToggleAuto
)

// Event is one processed input event.
type Event struct {
	Action Action
	Width  int
	Height int
}

// Input polls SDL and tracks mouse drag state between frames.
type Input struct {
	events []Event

	dragging     bool
	lastX, lastY int32
	dragX, dragY float32
	wheel        float32
}

// New creates the input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 8)}
}

// Poll drains the SDL event queue. Returns false once a quit event
// arrives.
func (i *Input) Poll() bool {
	i.events = i.events[:0]
	i.dragX, i.dragY = 0, 0
	i.wheel = 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Action: ActionQuit})
			return false

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Action: ActionResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				break
			}
			switch e.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
				i.events = append(i.events, Event{Action: ActionQuit})
				return false
			case sdl.SCANCODE_SPACE, sdl.SCANCODE_RETURN:
				i.events = append(i.events, Event{Action: ActionAdvance})
			case sdl.SCANCODE_A:
				i.events = append(i.events, Event{Action: ActionToggleAuto})
			}

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				break
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.dragging = true
				i.lastX, i.lastY = e.X, e.Y
			} else {
				i.dragging = false
			}

		case *sdl.MouseMotionEvent:
			if i.dragging {
				i.dragX += float32(e.X - i.lastX)
				i.dragY += float32(e.Y - i.lastY)
				i.lastX, i.lastY = e.X, e.Y
			}

		case *sdl.MouseWheelEvent:
			i.wheel += float32(e.Y)
		}
	}

	return true
}

// Events returns the events collected by the last Poll.
func (i *Input) Events() []Event {
	return i.events
}

// DragDelta returns the accumulated left-button drag for the frame.
func (i *Input) DragDelta() (dx, dy float32) {
	return i.dragX, i.dragY
}

// Wheel returns the accumulated scroll delta for the frame.
func (i *Input) Wheel() float32 {
	return i.wheel
}
