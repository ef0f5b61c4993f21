// Package drag holds the pointer-driven state machines of the editor: moving
// and resizing words on the timeline, scrubbing the playhead, and placing
// words on the video frame.
//
// Each controller takes its pointer events from an injected Source and writes
// its results to an injected Document, so it runs the same against a
// terminal mouse, a test script or any other pointer device. A controller
// subscribes to the source only for the life of a gesture, the equivalent of
// attaching global move/up listeners on pointer-down, and always unsubscribes
// on release and on cancel.
package drag

import (
	"sync"

	"github.com/user/caption-timeline-cli/transcript"
)

// PointerKind is the phase of a pointer event.
type PointerKind int

const (
	// PointerDown starts a gesture.
	PointerDown PointerKind = iota
	// PointerMove reports motion, pressed or not.
	PointerMove
	// PointerUp ends a gesture normally.
	PointerUp
	// PointerCancel aborts a gesture (focus loss, window change).
	PointerCancel
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is a device-independent pointer sample.
type PointerEvent struct {
	Kind     PointerKind
	X        float64
	Y        float64
	Modifier bool
}

// Source delivers pointer events to subscribers.
type Source interface {
	Subscribe(fn func(PointerEvent)) (unsubscribe func())
}

// Document is the editable state a controller mutates.
type Document interface {
	Transcript() transcript.Transcript
	Replace(next transcript.Transcript)
	Selected() int
	Select(idx int)
}

// Committer persists a transcript at the end of a gesture.
type Committer interface {
	SaveTranscript(t transcript.Transcript)
}

// Bus is a Source fed by Publish. It is the "window" that global listeners
// attach to.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]func(PointerEvent)
	nextID int
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(PointerEvent))}
}

// Subscribe registers fn until the returned function is called.
func (b *Bus) Subscribe(fn func(PointerEvent)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers ev to every current subscriber. Subscribers may
// unsubscribe while handling the event.
func (b *Bus) Publish(ev PointerEvent) {
	b.mu.Lock()
	fns := make([]func(PointerEvent), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
