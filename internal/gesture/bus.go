package gesture

import (
	"sync"
	"time"
)

// EventType names an input event, matching the DOM event it came from.
type EventType string

const (
	WheelEvent      EventType = "wheel"
	TouchStartEvent EventType = "touchstart"
	TouchMoveEvent  EventType = "touchmove"
	TouchEndEvent   EventType = "touchend"
	KeyDownEvent    EventType = "keydown"
)

// Event is a raw input sample forwarded from the page.
type Event struct {
	Type   EventType
	DeltaY float64
	Y      float64
	Key    string
	At     time.Time
}

// Handler reacts to an event and reports the navigation action it took.
type Handler func(Event) Action

type listener struct {
	id int
	h  Handler
}

// Bus is a listener registry for input events. Every Listen returns a
// release func that removes exactly that listener.
type Bus struct {
	mu        sync.Mutex
	seq       int
	listeners map[EventType][]listener
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[EventType][]listener)}
}

func (b *Bus) Listen(t EventType, h Handler) (release func()) {
	b.mu.Lock()
	b.seq++
	id := b.seq
	b.listeners[t] = append(b.listeners[t], listener{id: id, h: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(t, id) })
	}
}

func (b *Bus) remove(t EventType, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ls := b.listeners[t]
	for i, l := range ls {
		if l.id == id {
			b.listeners[t] = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	if len(b.listeners[t]) == 0 {
		delete(b.listeners, t)
	}
}

// Dispatch delivers e to its listeners in registration order and returns
// the first action any of them took.
func (b *Bus) Dispatch(e Event) Action {
	b.mu.Lock()
	ls := append([]listener(nil), b.listeners[e.Type]...)
	b.mu.Unlock()

	result := None
	for _, l := range ls {
		if a := l.h(e); a != None && result == None {
			result = a
		}
	}
	return result
}

// Listeners counts registered listeners across all event types.
func (b *Bus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, ls := range b.listeners {
		n += len(ls)
	}
	return n
}

// Attach registers the debouncer's wheel, touch and key handlers on b.
// The returned func detaches all of them.
func (d *Debouncer) Attach(b *Bus) (detach func()) {
	releases := []func(){
		b.Listen(WheelEvent, func(e Event) Action {
			return d.Wheel(Sample{DeltaY: e.DeltaY, At: e.At})
		}),
		b.Listen(TouchStartEvent, func(e Event) Action {
			d.TouchStart(e.Y)
			return None
		}),
		b.Listen(TouchMoveEvent, func(e Event) Action {
			return d.TouchMove(e.Y, e.At)
		}),
		b.Listen(TouchEndEvent, func(Event) Action {
			d.TouchEnd()
			return None
		}),
		b.Listen(KeyDownEvent, func(e Event) Action {
			return d.Key(e.Key)
		}),
	}
	return func() {
		for _, r := range releases {
			r()
		}
	}
}
