package window

import (
	"testing"

	"github.com/Carmen-Shannon/graphplay/common"
)

func TestDrainReturnsEventsInOrder(t *testing.T) {
	w := &engineWindow{}

	if events := w.drain(); events != nil {
		t.Fatalf("expected no events on an empty queue; got %v", events)
	}

	w.push(common.KeyPressEvent(65))
	w.push(common.CloseEvent())

	events := w.drain()
	if len(events) != 2 || events[0].Kind != common.EventKeyPress || events[1].Kind != common.EventClose {
		t.Fatalf("expected key press then close; got %v", events)
	}
	if again := w.drain(); again != nil {
		t.Fatalf("expected the queue to be empty after a drain; got %v", again)
	}
}

func TestResizeNotifiesBeforeQueueing(t *testing.T) {
	w := &engineWindow{}

	var queuedAtCallback int
	w.SetResizeCallback(func(width, height int) {
		queuedAtCallback = len(w.pending)
		if width != 1600 || height != 900 {
			t.Fatalf("expected 1600x900; got %dx%d", width, height)
		}
	})

	w.resize(1600, 900)

	if queuedAtCallback != 0 {
		t.Fatal("expected the resize callback to run before the event is queued")
	}
	if w.Width() != 1600 || w.Height() != 900 {
		t.Fatalf("expected stored size 1600x900; got %dx%d", w.Width(), w.Height())
	}
	events := w.drain()
	if len(events) != 1 || events[0] != common.ResizeEvent(1600, 900) {
		t.Fatalf("expected one resize event; got %v", events)
	}
}

func TestPollEventsWithoutPlatformWindow(t *testing.T) {
	w := &engineWindow{}
	w.push(common.CloseEvent())

	events := w.PollEvents()
	if len(events) != 1 || !events[0].IsStop() {
		t.Fatalf("expected the queued close event; got %v", events)
	}
	if w.IsRunning() {
		t.Fatal("expected a window without a platform handle to report not running")
	}
}
