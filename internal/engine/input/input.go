// Package input turns SDL2 events into key-name and text events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType is the kind of a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventText
)

// Event represents a processed input event.
type Event struct {
	Type EventType
	// Key is the SDL scancode name, e.g. "F4", "Keypad +", "E".
	Key    string
	Repeat bool
	Text   string
	Width  int
	Height int
}

// Input collects the events of one frame.
type Input struct {
	events []Event
}

// New creates a new input handler with text input enabled.
func New() *Input {
	sdl.StartTextInput()
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Close stops text input.
func (i *Input) Close() {
	sdl.StopTextInput()
}

// Update polls SDL events and converts them.
// Returns true if the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			ev := Event{
				Key:    sdl.GetScancodeName(e.Keysym.Scancode),
				Repeat: e.Repeat != 0,
			}
			if e.Type == sdl.KEYDOWN {
				ev.Type = EventKeyDown
			} else {
				ev.Type = EventKeyUp
			}
			i.events = append(i.events, ev)

		case *sdl.TextInputEvent:
			i.events = append(i.events, Event{
				Type: EventText,
				Text: e.GetText(),
			})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
