package common

import "fmt"

// EventKind identifies the type of a polled window event.
type EventKind int

const (
	// EventOther is any platform event the render loop does not act on.
	EventOther EventKind = iota

	// EventClose is a window close request.
	EventClose

	// EventKeyPress is a key press carrying a virtual key code.
	EventKeyPress

	// EventResize is a framebuffer resize carrying the new size in pixels.
	EventResize
)

// Event is a single window event drained from the platform queue once per loop iteration.
// Key is set for EventKeyPress; Width and Height are set for EventResize.
type Event struct {
	Kind   EventKind
	Key    uint32
	Width  int
	Height int
}

// CloseEvent returns a close request event.
func CloseEvent() Event {
	return Event{Kind: EventClose}
}

// KeyPressEvent returns a key press event for the given virtual key code.
//
// Parameters:
//   - key: the virtual key code (see key_codes.go)
//
// Returns:
//   - Event: the key press event
func KeyPressEvent(key uint32) Event {
	return Event{Kind: EventKeyPress, Key: key}
}

// ResizeEvent returns a resize event with the new framebuffer size.
//
// Parameters:
//   - width: new width in pixels
//   - height: new height in pixels
//
// Returns:
//   - Event: the resize event
func ResizeEvent(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

// IsStop reports whether the event asks the render loop to stop (close request or Escape).
func (e Event) IsStop() bool {
	return e.Kind == EventClose || (e.Kind == EventKeyPress && e.Key == KeyEsc)
}

func (e Event) String() string {
	switch e.Kind {
	case EventClose:
		return "close"
	case EventKeyPress:
		return fmt.Sprintf("key(%d)", e.Key)
	case EventResize:
		return fmt.Sprintf("resize(%dx%d)", e.Width, e.Height)
	default:
		return "other"
	}
}
