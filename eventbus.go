package lazymesh

import "reflect"

// MaxEventTypes defines the maximum number of unique event types that can be
// registered in an EventBus. This value is fixed at 256.
const MaxEventTypes = 256

// EventBus is a synchronous, type-keyed publish/subscribe hub. Each Mesh
// owns one and publishes Compacted, Appended, Grown and ComponentToggled
// events on it; applications may publish their own event types too.
type EventBus struct {
	eventTypeMap    map[reflect.Type]uint8
	handlers        [MaxEventTypes][]any
	nextEventTypeID uint16
}

// Subscribe registers a handler called for every published event of type T,
// in subscription order.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	id := bus.getEventTypeID(reflect.TypeFor[T]())
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]any, 0, 4)
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish calls every handler subscribed to T with event. It does not
// allocate.
func Publish[T any](bus *EventBus, event T) {
	if id, ok := bus.eventTypeMap[reflect.TypeFor[T]()]; ok {
		for _, h := range bus.handlers[id] {
			h.(func(T))(event)
		}
	}
}

// HasSubscribers reports whether any handler listens to T.
func HasSubscribers[T any](bus *EventBus) bool {
	id, ok := bus.eventTypeMap[reflect.TypeFor[T]()]
	return ok && len(bus.handlers[id]) > 0
}

// getEventTypeID retrieves or assigns an ID for the event type.
func (bus *EventBus) getEventTypeID(t reflect.Type) uint8 {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	if bus.nextEventTypeID >= MaxEventTypes {
		panic("lazymesh: too many event types")
	}
	id := uint8(bus.nextEventTypeID)
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}

// Compacted is published after a container was compacted and every
// reference to its kind was rebased.
type Compacted struct {
	Map  IndexMap
	Kind Kind
}

// Appended is published after Mesh.Append copied Count elements of Kind
// starting at First and translated their references.
type Appended struct {
	Kind  Kind
	First int
	Count int
}

// Grown is published when the storage of a container was reallocated.
// References are indices and need no update.
type Grown struct {
	Kind   Kind
	OldCap int
	NewCap int
}

// ComponentToggled is published when an optional component is enabled or
// disabled.
type ComponentToggled struct {
	Component string
	Kind      Kind
	Enabled   bool
}
