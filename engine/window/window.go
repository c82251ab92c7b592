package window

import (
	"github.com/Carmen-Shannon/graphplay/common"
	"github.com/Carmen-Shannon/graphplay/engine/log"
	"github.com/cogentcore/webgpu/wgpu"
)

var logger = log.New("window")

// Window provides the platform window, its presentation surface and a buffered event queue.
// Platform callbacks only enqueue events; the render loop drains them once per iteration with PollEvents.
type Window interface {
	// PollEvents pumps the platform event loop without blocking and returns every event queued since
	// the previous call, oldest first.
	//
	// Returns:
	//   - []common.Event: the drained events, or nil if none arrived
	PollEvents() []common.Event

	// SetResizeCallback sets the function called synchronously when the framebuffer is resized,
	// before the matching Resize event is queued. Use it to reconfigure the presentation surface.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state and the pending event queue.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth and maxHeight bound the window size during resize; 0 means unbounded.
	maxWidth  int
	maxHeight int

	// minWidth and minHeight bound the window size during resize; 0 means unbounded.
	minWidth  int
	minHeight int

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)

	// pending holds events queued by platform callbacks until the next PollEvents.
	pending []common.Event
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
// Must be called from the main goroutine; the calling OS thread is locked for GLFW.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:  "graphplay",
		width:  800,
		height: 600,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	logger.Infof("created window %q with a %dx%d framebuffer", w.title, w.width, w.height)
	return w, nil
}

func (w *engineWindow) PollEvents() []common.Event {
	platformProcessMessages(w)
	return w.drain()
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// push queues an event for the next PollEvents call.
func (w *engineWindow) push(ev common.Event) {
	w.pending = append(w.pending, ev)
}

// resize records the new framebuffer size, notifies the resize callback and then queues the event.
func (w *engineWindow) resize(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
	w.push(common.ResizeEvent(width, height))
}

// drain hands the queued events to the caller and resets the queue.
func (w *engineWindow) drain() []common.Event {
	if len(w.pending) == 0 {
		return nil
	}
	events := w.pending
	w.pending = nil
	return events
}
