package render

import "fmt"

type EventKind string

const (
	EventClick      EventKind = "click"
	EventTouchStart EventKind = "touchstart"
	EventTouchEnd   EventKind = "touchend"
)

// Event is a user gesture delivered to an element.
// X is the horizontal touch coordinate for touch events.
type Event struct {
	Kind EventKind
	X    float64
}

type Listener func(Event)

// Listen registers a listener. Registering the same listener twice makes
// it fire twice, like addEventListener with distinct closures.
func (d *Document) Listen(id string, kind EventKind, fn Listener) {
	byKind, ok := d.listeners[id]
	if !ok {
		byKind = make(map[EventKind][]Listener)
		d.listeners[id] = byKind
	}
	byKind[kind] = append(byKind[kind], fn)
}

// ListenerCount returns the number of listeners on id, all kinds.
func (d *Document) ListenerCount(id string) int {
	total := 0
	for _, fns := range d.listeners[id] {
		total += len(fns)
	}
	return total
}

// Dispatch delivers ev to the element's listeners in registration order.
func (d *Document) Dispatch(id string, ev Event) error {
	if !d.Exists(id) {
		return fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	// copy: listeners may register more listeners
	fns := append([]Listener(nil), d.listeners[id][ev.Kind]...)
	for _, fn := range fns {
		fn(ev)
	}
	return nil
}
