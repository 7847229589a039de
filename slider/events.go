package slider

import "fmt"

type (
	// PointerEvent is a host-agnostic pointer or touch event, delivered to
	// the slider by an EventSource. Positions are in the same coordinate
	// space as Geometry.Start.
	PointerEvent struct {
		Kind     EventKind
		Device   Device
		Position Point
		// Touches is the number of active touch points, including this one.
		// Ignored for mouse events.
		Touches int
		// Handle is the index of the handle the press landed on, or NoHandle
		// if it landed on the track. Only meaningful for Press events.
		Handle int
	}

	Point struct {
		X, Y float64
	}

	EventKind int
	Device    int

	// Listener receives pointer events.
	Listener func(PointerEvent)

	// EventSource is the capability of delivering pointer events, injected by
	// the host. Subscribe registers the listener and returns a function that
	// unregisters it.
	EventSource interface {
		Subscribe(l Listener) (unsubscribe func())
	}
)

const (
	Press EventKind = iota
	Move
	Release
	Cancel
)

const (
	Mouse Device = iota
	Touch
)

// NoHandle is the Handle of a press that landed on the track.
const NoHandle = -1

func (k EventKind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	case Cancel:
		return "cancel"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

func (d Device) String() string {
	if d == Touch {
		return "touch"
	}
	return "mouse"
}

// EventBus is a minimal EventSource: hosts that already have the events at
// hand can Publish them to all subscribers.
type EventBus struct {
	listeners map[int]Listener
	next      int
}

func (b *EventBus) Subscribe(l Listener) func() {
	if b.listeners == nil {
		b.listeners = map[int]Listener{}
	}
	id := b.next
	b.next++
	b.listeners[id] = l
	return func() { delete(b.listeners, id) }
}

// Publish delivers the event to every subscriber, in subscription order.
func (b *EventBus) Publish(e PointerEvent) {
	for id := 0; id < b.next; id++ {
		if l, ok := b.listeners[id]; ok {
			l(e)
		}
	}
}

// Subscribers returns the number of active subscribers.
func (b *EventBus) Subscribers() int { return len(b.listeners) }
